// SPDX-License-Identifier: MIT

package observation

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadCSV reads a header-first delimited table. Columns are matched by exact
// header name; extra columns are ignored.
//
// Errors: ErrInvalidSchema, ErrMissingColumn (naming the column), ErrNonFinite
// (naming the 1-based data row and column), plus New's errors.
func ReadCSV(r io.Reader, schema Schema) (*Set, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	// 1) Header
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("observation: read header: %w", err)
	}
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, c := range schema.Columns() {
		if _, ok := pos[c]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, c)
		}
	}

	// 2) Rows
	var sites []Site
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("observation: read row %d: %w", row, err)
		}
		num := func(col string) (float64, error) {
			raw := strings.TrimSpace(rec[pos[col]])
			v, perr := strconv.ParseFloat(raw, 64)
			if perr != nil {
				return 0, fmt.Errorf("%w: row %d column %q = %q", ErrNonFinite, row, col, raw)
			}

			return v, nil
		}
		var s Site
		if schema.ID != "" {
			s.ID = strings.TrimSpace(rec[pos[schema.ID]])
		}
		if s.X, err = num(schema.X); err != nil {
			return nil, err
		}
		if s.Y, err = num(schema.Y); err != nil {
			return nil, err
		}
		if s.Response, err = num(schema.Response); err != nil {
			return nil, err
		}
		if len(schema.Covariates) > 0 {
			s.Covariates = make(map[string]float64, len(schema.Covariates))
			for _, c := range schema.Covariates {
				if s.Covariates[c], err = num(c); err != nil {
					return nil, err
				}
			}
		}
		sites = append(sites, s)
	}

	return New(schema, sites)
}
