// SPDX-License-Identifier: MIT

package ssn

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/ssnstat/observation"
)

// InterceptName labels the intercept coefficient.
const InterceptName = "(Intercept)"

// Formula is a main-effects model "response ~ term + term". Interactions
// and transformations are not supported; add derived covariates with
// observation.Set.Join instead.
type Formula struct {
	Response  string
	Terms     []string
	Intercept bool
}

// ParseFormula parses "y ~ a + b". "-1" or "0" drops the intercept and "1"
// keeps it; "y ~ 1" is the intercept-only model.
func ParseFormula(s string) (Formula, error) {
	lhs, rhs, ok := strings.Cut(s, "~")
	if !ok {
		return Formula{}, fmt.Errorf("%w: missing '~' in %q", ErrBadFormula, s)
	}
	f := Formula{Response: strings.TrimSpace(lhs), Intercept: true}
	if f.Response == "" || strings.ContainsAny(f.Response, "+-~ ") {
		return Formula{}, fmt.Errorf("%w: bad response in %q", ErrBadFormula, s)
	}
	rhs = strings.ReplaceAll(rhs, "-", "+-")
	seen := make(map[string]struct{})
	terms := 0
	for _, tok := range strings.Split(rhs, "+") {
		tok = strings.Join(strings.Fields(tok), "")
		switch tok {
		case "":
			continue
		case "1":
			terms++
			continue
		case "-1", "0":
			f.Intercept = false
			terms++
			continue
		}
		if strings.HasPrefix(tok, "-") || strings.ContainsAny(tok, "~*:()^") {
			return Formula{}, fmt.Errorf("%w: unsupported term %q in %q", ErrBadFormula, tok, s)
		}
		terms++
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		f.Terms = append(f.Terms, tok)
	}
	if terms == 0 {
		return Formula{}, fmt.Errorf("%w: empty right-hand side in %q", ErrBadFormula, s)
	}
	if !f.Intercept && len(f.Terms) == 0 {
		return Formula{}, fmt.Errorf("%w: no fixed effects in %q", ErrBadFormula, s)
	}

	return f, nil
}

// MustParseFormula is ParseFormula that panics; for fixed literals only.
func MustParseFormula(s string) Formula {
	f, err := ParseFormula(s)
	if err != nil {
		panic(err)
	}

	return f
}

// String renders the formula back in "y ~ a + b" form.
func (f Formula) String() string {
	switch {
	case !f.Intercept:
		return f.Response + " ~ " + strings.Join(f.Terms, " + ") + " - 1"
	case len(f.Terms) == 0:
		return f.Response + " ~ 1"
	}

	return f.Response + " ~ " + strings.Join(f.Terms, " + ")
}

// Coefficients returns coefficient names in design-column order.
func (f Formula) Coefficients() []string {
	names := make([]string, 0, len(f.Terms)+1)
	if f.Intercept {
		names = append(names, InterceptName)
	}

	return append(names, f.Terms...)
}

// Design is a bound response vector and design matrix.
type Design struct {
	Y     *mat.VecDense
	X     *mat.Dense
	Names []string
}

// Bind resolves the formula against set. The response may be the schema
// response or any covariate.
//
// Errors: ErrUnknownColumn naming the column, ErrTooFewObservations.
func (f Formula) Bind(set *observation.Set) (*Design, error) {
	if set == nil {
		return nil, ErrNilInput
	}
	column := func(name string) ([]float64, error) {
		if name == set.Schema().Response {
			return set.Responses(), nil
		}
		v, err := set.Covariate(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
		}

		return v, nil
	}

	y, err := column(f.Response)
	if err != nil {
		return nil, err
	}
	names := f.Coefficients()
	n, p := set.Len(), len(names)
	if n <= p {
		return nil, fmt.Errorf("%w: n=%d p=%d", ErrTooFewObservations, n, p)
	}
	x := mat.NewDense(n, p, nil)
	col := 0
	if f.Intercept {
		for i := 0; i < n; i++ {
			x.Set(i, 0, 1)
		}
		col++
	}
	for _, term := range f.Terms {
		v, err := column(term)
		if err != nil {
			return nil, err
		}
		x.SetCol(col, v)
		col++
	}

	return &Design{Y: mat.NewVecDense(n, y), X: x, Names: names}, nil
}
