// Copyright 2026 The plotforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ggstat

import (
	"fmt"
	"math"
	"reflect"
	"sort"

	"github.com/plotforge/gg/table"
)

// A SummaryFn aggregates a set of y values.
type SummaryFn int

const (
	SummaryMean SummaryFn = iota
	SummaryMedian
	SummaryMin
	SummaryMax
	SummarySum
)

func (f SummaryFn) String() string {
	switch f {
	case SummaryMean:
		return "mean"
	case SummaryMedian:
		return "median"
	case SummaryMin:
		return "min"
	case SummaryMax:
		return "max"
	case SummarySum:
		return "sum"
	}
	return "unknown"
}

// Summary aggregates Y per distinct value of X.
//
// The result has the X column with one row per distinct value, in
// first-observed order, and the Y column holding the aggregate.
// Non-finite y values are ignored; an x whose y values are all
// non-finite aggregates to NaN.
type Summary struct {
	// X and Y are the point columns. They default to "x" and "y".
	X, Y string

	// Fn is the aggregate. The zero value is the mean.
	Fn SummaryFn
}

func (s Summary) ComputedVars() []string { return nil }

func (s Summary) F(t *table.Table) (*table.Table, error) {
	x, y := orDefault(s.X, "x"), orDefault(s.Y, "y")
	col := t.Column(x)
	if col == nil {
		return nil, fmt.Errorf("stat summary: no %q column", x)
	}
	ys, err := floats(t, y)
	if err != nil {
		return nil, fmt.Errorf("stat summary: %v", err)
	}

	rv := reflect.ValueOf(col)
	idx := make(map[interface{}]int)
	var order []interface{}
	groups := [][]float64{}
	for i := 0; i < rv.Len(); i++ {
		v := rv.Index(i).Interface()
		j, ok := idx[v]
		if !ok {
			j = len(order)
			idx[v] = j
			order = append(order, v)
			groups = append(groups, nil)
		}
		if !math.IsNaN(ys[i]) && !math.IsInf(ys[i], 0) {
			groups[j] = append(groups[j], ys[i])
		}
	}

	agg := make([]float64, len(groups))
	for i, g := range groups {
		agg[i] = s.aggregate(g)
	}

	out := reflect.MakeSlice(rv.Type(), len(order), len(order))
	for i, v := range order {
		out.Index(i).Set(reflect.ValueOf(v))
	}

	return table.NewBuilder(nil).
		Add(x, out.Interface()).
		Add(y, agg).
		Done(), nil
}

func (s Summary) aggregate(ys []float64) float64 {
	if len(ys) == 0 {
		return math.NaN()
	}
	switch s.Fn {
	case SummaryMean:
		sum := 0.0
		for _, v := range ys {
			sum += v
		}
		return sum / float64(len(ys))
	case SummaryMedian:
		sorted := append([]float64(nil), ys...)
		sort.Float64s(sorted)
		n := len(sorted)
		if n%2 == 1 {
			return sorted[n/2]
		}
		return (sorted[n/2-1] + sorted[n/2]) / 2
	case SummaryMin:
		min := ys[0]
		for _, v := range ys[1:] {
			if v < min {
				min = v
			}
		}
		return min
	case SummaryMax:
		max := ys[0]
		for _, v := range ys[1:] {
			if v > max {
				max = v
			}
		}
		return max
	case SummarySum:
		sum := 0.0
		for _, v := range ys {
			sum += v
		}
		return sum
	}
	panic(fmt.Sprintf("unknown summary function %d", s.Fn))
}
