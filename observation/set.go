// SPDX-License-Identifier: MIT

package observation

import (
	"fmt"
	"math"
	"strconv"
)

// Set is an immutable ordered collection of sites.
type Set struct {
	schema Schema
	sites  []Site
}

// New validates schema and sites and returns a Set that owns copies of them.
// Sites with an empty ID are numbered by position (1-based).
//
// Errors: ErrInvalidSchema, ErrTooFewSites, ErrNonFinite, ErrMissingColumn,
// ErrDuplicateSite.
func New(schema Schema, sites []Site) (*Set, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	if len(sites) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewSites, len(sites))
	}
	out := &Set{schema: schema.clone(), sites: make([]Site, len(sites))}
	seen := make(map[string]struct{}, len(sites))
	for i, s := range sites {
		s = s.clone()
		if s.ID == "" {
			s.ID = strconv.Itoa(i + 1)
		}
		if _, dup := seen[s.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSite, s.ID)
		}
		seen[s.ID] = struct{}{}
		if err := checkFinite(s.ID, schema.X, s.X); err != nil {
			return nil, err
		}
		if err := checkFinite(s.ID, schema.Y, s.Y); err != nil {
			return nil, err
		}
		if err := checkFinite(s.ID, schema.Response, s.Response); err != nil {
			return nil, err
		}
		for _, c := range schema.Covariates {
			v, ok := s.Covariates[c]
			if !ok {
				return nil, fmt.Errorf("%w: %q at site %q", ErrMissingColumn, c, s.ID)
			}
			if err := checkFinite(s.ID, c, v); err != nil {
				return nil, err
			}
		}
		out.sites[i] = s
	}

	return out, nil
}

func checkFinite(site, column string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: site %q column %q = %g", ErrNonFinite, site, column, v)
	}

	return nil
}

// Schema returns the column schema.
func (s *Set) Schema() Schema { return s.schema.clone() }

// Len returns the number of sites.
func (s *Set) Len() int { return len(s.sites) }

// Site returns a copy of site i.
func (s *Set) Site(i int) (Site, error) {
	if i < 0 || i >= len(s.sites) {
		return Site{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}

	return s.sites[i].clone(), nil
}

// IDs returns site IDs in order.
func (s *Set) IDs() []string {
	ids := make([]string, len(s.sites))
	for i := range s.sites {
		ids[i] = s.sites[i].ID
	}

	return ids
}

// Coords returns the X and Y columns.
func (s *Set) Coords() (xs, ys []float64) {
	xs = make([]float64, len(s.sites))
	ys = make([]float64, len(s.sites))
	for i := range s.sites {
		xs[i], ys[i] = s.sites[i].X, s.sites[i].Y
	}

	return xs, ys
}

// Responses returns the response column.
func (s *Set) Responses() []float64 {
	z := make([]float64, len(s.sites))
	for i := range s.sites {
		z[i] = s.sites[i].Response
	}

	return z
}

// Covariate returns a covariate column by name.
func (s *Set) Covariate(name string) ([]float64, error) {
	if !s.schema.HasCovariate(name) {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
	}
	col := make([]float64, len(s.sites))
	for i := range s.sites {
		col[i] = s.sites[i].Covariates[name]
	}

	return col, nil
}

// BoundingBox returns the coordinate extent.
func (s *Set) BoundingBox() Box {
	b := Box{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, st := range s.sites {
		b.MinX = math.Min(b.MinX, st.X)
		b.MaxX = math.Max(b.MaxX, st.X)
		b.MinY = math.Min(b.MinY, st.Y)
		b.MaxY = math.Max(b.MaxY, st.Y)
	}

	return b
}

// Diagonal returns hypot(maxX−minX, maxY−minY) of the bounding box.
func (s *Set) Diagonal() float64 {
	b := s.BoundingBox()

	return math.Hypot(b.MaxX-b.MinX, b.MaxY-b.MinY)
}
