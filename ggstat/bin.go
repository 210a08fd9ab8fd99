// Copyright 2026 The plotforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ggstat

import (
	"fmt"
	"math"

	"github.com/plotforge/gg/table"
)

// Bin bins samples into right-closed intervals (lo, hi] of uniform
// width and tallies each bin.
//
// The result has one row per non-empty bin span (empty interior bins
// are kept so bar geometry shows gaps), with columns:
//
// - Column X is the bin center.
//
// - Columns "xmin" and "xmax" are the bin edges.
//
// - Column "count" is the number of samples (or summed weight) in the
// bin.
//
// - Column "density" is count normalized so the histogram integrates
// to 1.
//
// - Columns "ncount" and "ndensity" are count and density scaled so
// their maximum is 1.
type Bin struct {
	// X is the column to bin. It defaults to "x".
	X string

	// W is the optional weight column.
	W string

	// Width is the bin width. If it is 0, the width is derived
	// from Bins.
	Width float64

	// Bins is the bin count used when Width is 0. If both are 0,
	// the Sturges rule ceil(log2(n))+1 picks the count.
	Bins int

	// Center anchors the bin grid so one bin is centered on this
	// value. Boundary anchors an edge instead. At most one should
	// be set; with neither, edges fall on multiples of Width.
	Center, Boundary *float64
}

func (b Bin) ComputedVars() []string {
	return []string{"count", "density", "ncount", "ndensity"}
}

// binIndex places x in bin i covering (boundary+i·width,
// boundary+(i+1)·width].
func binIndex(x, width, boundary float64) int {
	return int(math.Ceil((x-boundary)/width) - 1)
}

func (b Bin) F(t *table.Table) (*table.Table, error) {
	x := orDefault(b.X, "x")
	xs, err := floats(t, x)
	if err != nil {
		return nil, fmt.Errorf("stat bin: %v", err)
	}
	ws, err := weights(t, b.W)
	if err != nil {
		return nil, fmt.Errorf("stat bin: %v", err)
	}

	min, max := math.NaN(), math.NaN()
	n := 0
	for _, v := range xs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		n++
		if math.IsNaN(min) || v < min {
			min = v
		}
		if math.IsNaN(max) || v > max {
			max = v
		}
	}
	if n == 0 {
		return table.NewBuilder(nil).
			Add(x, []float64{}).Add("xmin", []float64{}).Add("xmax", []float64{}).
			Add("count", []float64{}).Add("density", []float64{}).
			Add("ncount", []float64{}).Add("ndensity", []float64{}).
			Done(), nil
	}

	width := b.Width
	if width <= 0 {
		bins := b.Bins
		if bins <= 0 {
			// Sturges.
			bins = int(math.Ceil(math.Log2(float64(n)))) + 1
		}
		width = (max - min) / float64(bins)
		if width <= 0 {
			width = 1
		}
	}
	boundary := 0.0
	switch {
	case b.Boundary != nil:
		boundary = *b.Boundary
	case b.Center != nil:
		boundary = *b.Center - width/2
	}

	lo := binIndex(min, width, boundary)
	hi := binIndex(max, width, boundary)
	counts := make([]float64, hi-lo+1)
	var total float64
	for i, v := range xs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		w := 1.0
		if ws != nil {
			w = ws[i]
		}
		counts[binIndex(v, width, boundary)-lo] += w
		total += w
	}

	centers := make([]float64, len(counts))
	xmins := make([]float64, len(counts))
	xmaxs := make([]float64, len(counts))
	density := make([]float64, len(counts))
	maxCount := 0.0
	for i := range counts {
		edge := boundary + float64(lo+i)*width
		xmins[i] = edge
		xmaxs[i] = edge + width
		centers[i] = edge + width/2
		if total > 0 {
			density[i] = counts[i] / (total * width)
		}
		if counts[i] > maxCount {
			maxCount = counts[i]
		}
	}
	ncount := make([]float64, len(counts))
	ndensity := make([]float64, len(counts))
	maxDensity := 0.0
	for _, d := range density {
		if d > maxDensity {
			maxDensity = d
		}
	}
	for i := range counts {
		if maxCount > 0 {
			ncount[i] = counts[i] / maxCount
		}
		if maxDensity > 0 {
			ndensity[i] = density[i] / maxDensity
		}
	}

	return table.NewBuilder(nil).
		Add(x, centers).Add("xmin", xmins).Add("xmax", xmaxs).
		Add("count", counts).Add("density", density).
		Add("ncount", ncount).Add("ndensity", ndensity).
		Done(), nil
}
