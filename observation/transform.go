// SPDX-License-Identifier: MIT

package observation

import (
	"fmt"
)

// WithResponses returns a copy of the set whose responses are replaced by
// values, in site order.
func (s *Set) WithResponses(values []float64) (*Set, error) {
	if len(values) != len(s.sites) {
		return nil, fmt.Errorf("%w: %d values for %d sites", ErrLengthMismatch, len(values), len(s.sites))
	}
	sites := s.copySites()
	for i := range sites {
		if err := checkFinite(sites[i].ID, s.schema.Response, values[i]); err != nil {
			return nil, err
		}
		sites[i].Response = values[i]
	}

	return &Set{schema: s.schema.clone(), sites: sites}, nil
}

// Subset returns the sites at idx, in that order.
func (s *Set) Subset(idx []int) (*Set, error) {
	sites := make([]Site, 0, len(idx))
	for _, i := range idx {
		if i < 0 || i >= len(s.sites) {
			return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
		}
		sites = append(sites, s.sites[i])
	}

	return New(s.schema, sites)
}

// Filter returns the sites for which keep returns true.
func (s *Set) Filter(keep func(Site) bool) (*Set, error) {
	idx := make([]int, 0, len(s.sites))
	for i := range s.sites {
		if keep(s.sites[i].clone()) {
			idx = append(idx, i)
		}
	}

	return s.Subset(idx)
}

// Join adds a covariate column from a site ID → value map. Every site must
// have a value.
func (s *Set) Join(column string, values map[string]float64) (*Set, error) {
	schema := s.schema.clone()
	schema.Covariates = append(schema.Covariates, column)
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	sites := s.copySites()
	for i := range sites {
		v, ok := values[sites[i].ID]
		if !ok {
			return nil, fmt.Errorf("%w: %q at site %q", ErrMissingColumn, column, sites[i].ID)
		}
		if sites[i].Covariates == nil {
			sites[i].Covariates = make(map[string]float64, 1)
		}
		sites[i].Covariates[column] = v
	}

	return New(schema, sites)
}

func (s *Set) copySites() []Site {
	out := make([]Site, len(s.sites))
	for i := range s.sites {
		out[i] = s.sites[i].clone()
	}

	return out
}
