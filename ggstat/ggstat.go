// Copyright 2026 The plotforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ggstat implements statistic transforms over tables.
//
// Each statistic is a struct whose fields are its options; zero
// values are reasonable defaults. A statistic consumes one group of
// rows at a time and produces derived rows; the caller is responsible
// for splitting rows into groups and re-attaching grouping columns to
// the result.
package ggstat

import (
	"fmt"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/plotforge/gg/table"
)

// A Stat transforms one group of rows into derived rows.
type Stat interface {
	// F computes the statistic. The input is a single group; the
	// output rows replace it.
	F(t *table.Table) (*table.Table, error)

	// ComputedVars names the output columns that mappings may
	// reference as statistic results.
	ComputedVars() []string
}

// Identity passes rows through unchanged.
type Identity struct{}

func (Identity) F(t *table.Table) (*table.Table, error) { return t, nil }

func (Identity) ComputedVars() []string { return nil }

// floats converts column col of t to []float64, or reports an error
// naming the column if its type is not numeric.
func floats(t *table.Table, col string) (xs []float64, err error) {
	c := t.Column(col)
	if c == nil {
		return nil, fmt.Errorf("unknown column %q", col)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("column %q is not numeric", col)
		}
	}()
	slice.Convert(&xs, c)
	return xs, nil
}

// weights returns the weight column as []float64, or nil for uniform
// weights when wcol is "".
func weights(t *table.Table, wcol string) ([]float64, error) {
	if wcol == "" {
		return nil, nil
	}
	return floats(t, wcol)
}

func orDefault(col, def string) string {
	if col == "" {
		return def
	}
	return col
}
