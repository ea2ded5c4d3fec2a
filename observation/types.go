// SPDX-License-Identifier: MIT

package observation

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Schema names the input columns. ID is optional; when empty, sites are
// numbered from 1 in input order.
type Schema struct {
	ID         string   `json:"id" yaml:"id" mapstructure:"id"`
	X          string   `json:"x" yaml:"x" mapstructure:"x" validate:"required"`
	Y          string   `json:"y" yaml:"y" mapstructure:"y" validate:"required"`
	Response   string   `json:"response" yaml:"response" mapstructure:"response" validate:"required"`
	Covariates []string `json:"covariates" yaml:"covariates" mapstructure:"covariates" validate:"dive,required"`
}

// Validate checks required columns and rejects duplicated names.
func (s Schema) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	seen := make(map[string]struct{}, 4+len(s.Covariates))
	for _, c := range s.Columns() {
		if _, dup := seen[c]; dup {
			return fmt.Errorf("%w: column %q used twice", ErrInvalidSchema, c)
		}
		seen[c] = struct{}{}
	}

	return nil
}

// Columns lists every named column, ID first when set.
func (s Schema) Columns() []string {
	cols := make([]string, 0, 4+len(s.Covariates))
	if s.ID != "" {
		cols = append(cols, s.ID)
	}
	cols = append(cols, s.X, s.Y, s.Response)

	return append(cols, s.Covariates...)
}

// HasCovariate reports whether name is a declared covariate.
func (s Schema) HasCovariate(name string) bool {
	for _, c := range s.Covariates {
		if c == name {
			return true
		}
	}

	return false
}

func (s Schema) clone() Schema {
	s.Covariates = append([]string(nil), s.Covariates...)

	return s
}

// Site is one observation.
type Site struct {
	ID         string
	X, Y       float64
	Response   float64
	Covariates map[string]float64
}

func (s Site) clone() Site {
	if s.Covariates != nil {
		cov := make(map[string]float64, len(s.Covariates))
		for k, v := range s.Covariates {
			cov[k] = v
		}
		s.Covariates = cov
	}

	return s
}

// Box is an axis-aligned bounding box.
type Box struct {
	MinX, MinY, MaxX, MaxY float64
}
