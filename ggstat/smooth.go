// Copyright 2026 The plotforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ggstat

import (
	"fmt"

	"github.com/aclements/go-moremath/fit"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
	"github.com/plotforge/gg/table"
)

// A SmoothMethod selects the regression family used by Smooth.
type SmoothMethod int

const (
	// SmoothLeastSquares fits a least squares polynomial.
	SmoothLeastSquares SmoothMethod = iota

	// SmoothLOESS fits a locally-weighted polynomial.
	SmoothLOESS
)

// Smooth constructs a regression of Y on X and samples it over the
// data range.
//
// The result has column X with the sample points and column Y with
// the fitted values. A group with fewer than two distinct points
// cannot be fit; the caller should drop it.
type Smooth struct {
	// X and Y are the point columns. They default to "x" and "y".
	X, Y string

	// Method selects the regression family.
	Method SmoothMethod

	// N is the number of points to sample the fit at. If it is 0,
	// it is treated as 80.
	N int

	// Widen multiplies the sampled domain relative to the span of
	// the data. If it is 0, it is treated as 1 (no widening).
	Widen float64

	// Degree is the polynomial degree. If it is 0, it is treated
	// as 1 for least squares and 2 for LOESS.
	Degree int

	// Span is the LOESS smoothing fraction in (0, 1]. If it is 0,
	// it is treated as 0.75.
	Span float64
}

func (s Smooth) ComputedVars() []string { return nil }

// ErrTooFewPoints reports a group too small to regress.
var ErrTooFewPoints = fmt.Errorf("stat smooth: fewer than two distinct points")

func (s Smooth) F(t *table.Table) (*table.Table, error) {
	x, y := orDefault(s.X, "x"), orDefault(s.Y, "y")
	xs, err := floats(t, x)
	if err != nil {
		return nil, fmt.Errorf("stat smooth: %v", err)
	}
	ys, err := floats(t, y)
	if err != nil {
		return nil, fmt.Errorf("stat smooth: %v", err)
	}

	min, max := stats.Bounds(xs)
	if !(max > min) {
		return nil, ErrTooFewPoints
	}
	if s.N <= 0 {
		s.N = 80
	}
	if s.Widen > 0 && s.Widen != 1 {
		span := max - min
		mid := (min + max) / 2
		min = mid - span*s.Widen/2
		max = mid + span*s.Widen/2
	}
	eval := vec.Linspace(min, max, s.N)

	var f func(float64) float64
	switch s.Method {
	case SmoothLeastSquares:
		degree := s.Degree
		if degree <= 0 {
			degree = 1
		}
		r := fit.PolynomialRegression(xs, ys, nil, degree)
		f = r.F
	case SmoothLOESS:
		degree := s.Degree
		if degree <= 0 {
			degree = 2
		}
		span := s.Span
		if span <= 0 {
			span = 0.75
		}
		f = fit.LOESS(xs, ys, degree, span)
	default:
		return nil, fmt.Errorf("stat smooth: unknown method %d", s.Method)
	}

	return table.NewBuilder(nil).
		Add(x, eval).Add(y, vec.Map(f, eval)).
		Done(), nil
}
