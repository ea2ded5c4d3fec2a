// SPDX-License-Identifier: MIT

package ssn_test

import (
	"fmt"

	"github.com/katalvlaran/ssnstat/ssn"
)

// ExampleEnumerate lists the structures built from two shapes.
func ExampleEnumerate() {
	for _, c := range ssn.Enumerate([]ssn.Shape{ssn.None, ssn.Exponential}, false) {
		fmt.Println(c.Label(), c.NumCovParams())
	}
	// Output:
	// none.tailup+none.taildown+exponential.euclid 2
	// none.tailup+exponential.taildown+none.euclid 2
	// none.tailup+exponential.taildown+exponential.euclid 4
	// exponential.tailup+none.taildown+none.euclid 2
	// exponential.tailup+none.taildown+exponential.euclid 4
	// exponential.tailup+exponential.taildown+none.euclid 4
	// exponential.tailup+exponential.taildown+exponential.euclid 6
}

// ExampleParseFormula shows the coefficient names of a parsed formula.
func ExampleParseFormula() {
	f, err := ssn.ParseFormula("VSCI ~ ELEV + SLOPE")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(f)
	fmt.Println(f.Coefficients())
	// Output:
	// VSCI ~ ELEV + SLOPE
	// [(Intercept) ELEV SLOPE]
}
