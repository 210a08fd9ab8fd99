// Copyright 2026 The plotforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ggstat

import (
	"fmt"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
	"github.com/plotforge/gg/table"
)

// Density constructs a kernel density estimate from samples.
//
// The result has columns:
//
// - Column X is the points the estimate is sampled at.
//
// - Column "density" is the density estimate.
//
// - Column "count" is density times the total sample weight, for
// comparison with histograms.
//
// - Column "scaled" is density scaled so its maximum is 1.
type Density struct {
	// X is the sample column. It defaults to "x".
	X string

	// W is the optional weight column.
	W string

	// N is the number of sample points. If it is 0, it is treated
	// as 200.
	N int

	// Widen expands the sampled domain beyond the data range by
	// this many bandwidths on each side. If it is 0, it is
	// treated as 3.
	Widen float64

	// Kernel is the smoothing kernel.
	Kernel stats.KDEKernel

	// Bandwidth is the kernel bandwidth. If it is 0, it is
	// estimated from the data with Scott's rule.
	Bandwidth float64
}

func (d Density) ComputedVars() []string {
	return []string{"density", "count", "scaled"}
}

func (d Density) F(t *table.Table) (*table.Table, error) {
	x := orDefault(d.X, "x")
	xs, err := floats(t, x)
	if err != nil {
		return nil, fmt.Errorf("stat density: %v", err)
	}
	ws, err := weights(t, d.W)
	if err != nil {
		return nil, fmt.Errorf("stat density: %v", err)
	}
	if d.N <= 0 {
		d.N = 200
	}
	if d.Widen <= 0 {
		d.Widen = 3
	}

	sample := stats.Sample{Xs: xs, Weights: ws}
	if sample.Weight() == 0 {
		return table.NewBuilder(nil).
			Add(x, []float64{}).Add("density", []float64{}).
			Add("count", []float64{}).Add("scaled", []float64{}).
			Done(), nil
	}

	kde := stats.KDE{
		Sample:    sample,
		Kernel:    d.Kernel,
		Bandwidth: d.Bandwidth,
	}
	if kde.Bandwidth == 0 {
		kde.Bandwidth = stats.BandwidthScott(sample)
	}

	min, max := sample.Bounds()
	min -= d.Widen * kde.Bandwidth
	max += d.Widen * kde.Bandwidth
	ss := vec.Linspace(min, max, d.N)
	dens := vec.Map(kde.PDF, ss)

	total := sample.Weight()
	maxDens := 0.0
	for _, v := range dens {
		if v > maxDens {
			maxDens = v
		}
	}
	count := make([]float64, len(dens))
	scaled := make([]float64, len(dens))
	for i, v := range dens {
		count[i] = v * total
		if maxDens > 0 {
			scaled[i] = v / maxDens
		}
	}

	return table.NewBuilder(nil).
		Add(x, ss).Add("density", dens).
		Add("count", count).Add("scaled", scaled).
		Done(), nil
}
