// Copyright 2026 The plotforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ggstat

import (
	"fmt"
	"reflect"

	"github.com/plotforge/gg/table"
)

// Count tallies rows per distinct value of X.
//
// The result has the X column with one row per distinct value, in
// first-observed order, plus:
//
// - Column "count" is the number of rows (or the summed weight) at
// each value.
//
// - Column "prop" is count divided by the group total.
type Count struct {
	// X is the column to tally by. It defaults to "x".
	X string

	// W is the optional weight column. It may be "" to count each
	// row as 1.
	W string
}

func (c Count) ComputedVars() []string { return []string{"count", "prop"} }

func (c Count) F(t *table.Table) (*table.Table, error) {
	x := orDefault(c.X, "x")
	col := t.Column(x)
	if col == nil {
		return nil, fmt.Errorf("stat count: no %q column", x)
	}
	ws, err := weights(t, c.W)
	if err != nil {
		return nil, err
	}

	rv := reflect.ValueOf(col)
	idx := make(map[interface{}]int)
	var order []interface{}
	counts := []float64{}
	for i := 0; i < rv.Len(); i++ {
		v := rv.Index(i).Interface()
		j, ok := idx[v]
		if !ok {
			j = len(order)
			idx[v] = j
			order = append(order, v)
			counts = append(counts, 0)
		}
		if ws == nil {
			counts[j]++
		} else {
			counts[j] += ws[i]
		}
	}

	var total float64
	for _, n := range counts {
		total += n
	}
	props := make([]float64, len(counts))
	for i, n := range counts {
		if total != 0 {
			props[i] = n / total
		}
	}

	// Rebuild the x column with its original element type.
	out := reflect.MakeSlice(rv.Type(), len(order), len(order))
	for i, v := range order {
		out.Index(i).Set(reflect.ValueOf(v))
	}

	return table.NewBuilder(nil).
		Add(x, out.Interface()).
		Add("count", counts).
		Add("prop", props).
		Done(), nil
}
