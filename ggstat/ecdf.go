// Copyright 2026 The plotforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ggstat

import (
	"fmt"
	"math"
	"sort"

	"github.com/plotforge/gg/table"
)

// ECDF constructs the empirical cumulative distribution of samples.
//
// The result has column X with the points where the CDF steps (the
// sorted distinct samples), plus:
//
// - Column "cumdensity" is the cumulative fraction of weight at or
// below each point.
//
// - Column "cumcount" is the cumulative count or weight.
type ECDF struct {
	// X is the sample column. It defaults to "x".
	X string

	// W is the optional weight column.
	W string
}

func (e ECDF) ComputedVars() []string {
	return []string{"cumdensity", "cumcount"}
}

func (e ECDF) F(t *table.Table) (*table.Table, error) {
	x := orDefault(e.X, "x")
	xs, err := floats(t, x)
	if err != nil {
		return nil, fmt.Errorf("stat ecdf: %v", err)
	}
	ws, err := weights(t, e.W)
	if err != nil {
		return nil, fmt.Errorf("stat ecdf: %v", err)
	}

	type sample struct{ x, w float64 }
	samples := make([]sample, 0, len(xs))
	var total float64
	for i, v := range xs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		w := 1.0
		if ws != nil {
			w = ws[i]
		}
		samples = append(samples, sample{v, w})
		total += w
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i].x < samples[j].x })

	var xo, do, co []float64
	cum := 0.0
	for i := 0; i < len(samples); {
		j := i
		for j < len(samples) && samples[j].x == samples[i].x {
			cum += samples[j].w
			j++
		}
		xo = append(xo, samples[i].x)
		co = append(co, cum)
		if total > 0 {
			do = append(do, cum/total)
		} else {
			do = append(do, 0)
		}
		i = j
	}

	return table.NewBuilder(nil).
		Add(x, xo).Add("cumdensity", do).Add("cumcount", co).
		Done(), nil
}
