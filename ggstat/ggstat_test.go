// Copyright 2026 The plotforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ggstat

import (
	"math"
	"testing"

	"github.com/plotforge/gg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tbl(cols ...interface{}) *table.Table {
	b := table.NewBuilder(nil)
	for i := 0; i < len(cols); i += 2 {
		b.Add(cols[i].(string), cols[i+1])
	}
	return b.Done()
}

func TestIdentity(t *testing.T) {
	in := tbl("x", []float64{1, 2, 3})
	out, err := Identity{}.F(in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.Nil(t, Identity{}.ComputedVars())
}

func TestCount(t *testing.T) {
	in := tbl("x", []string{"b", "a", "b", "b", "a"})
	out, err := Count{}.F(in)
	require.NoError(t, err)

	// First-observed order, not sorted.
	assert.Equal(t, []string{"b", "a"}, out.Column("x"))
	assert.Equal(t, []float64{3, 2}, out.Column("count"))
	assert.Equal(t, []float64{0.6, 0.4}, out.Column("prop"))
}

func TestCountWeighted(t *testing.T) {
	in := tbl("x", []string{"a", "b", "a"}, "w", []float64{2, 1, 3})
	out, err := Count{W: "w"}.F(in)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 1}, out.Column("count"))
}

func TestCountMissingColumn(t *testing.T) {
	_, err := Count{}.F(tbl("y", []float64{1}))
	assert.Error(t, err)
}

func TestBin(t *testing.T) {
	boundary := 0.5
	in := tbl("x", []float64{1, 2, 2, 3, 3, 3})
	out, err := Bin{Width: 1, Boundary: &boundary}.F(in)
	require.NoError(t, err)

	// Bins are right-closed: (0.5,1.5], (1.5,2.5], (2.5,3.5].
	assert.Equal(t, []float64{1, 2, 3}, out.Column("x"))
	assert.Equal(t, []float64{0.5, 1.5, 2.5}, out.Column("xmin"))
	assert.Equal(t, []float64{1.5, 2.5, 3.5}, out.Column("xmax"))
	assert.Equal(t, []float64{1, 2, 3}, out.Column("count"))

	// The histogram integrates to 1.
	sum := 0.0
	for _, d := range out.Column("density").([]float64) {
		sum += d * 1 // width
	}
	assert.InDelta(t, 1.0, sum, 1e-12)

	assert.Equal(t, []float64{1. / 3, 2. / 3, 1}, out.Column("ncount"))
}

func TestBinEdgeValues(t *testing.T) {
	// A sample exactly on an edge lands in the bin it closes.
	boundary := 0.0
	in := tbl("x", []float64{1, 2})
	out, err := Bin{Width: 1, Boundary: &boundary}.F(in)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, out.Column("xmin"))
	assert.Equal(t, []float64{1, 1}, out.Column("count"))
}

func TestBinKeepsEmptyInteriorBins(t *testing.T) {
	boundary := 0.0
	in := tbl("x", []float64{0.5, 3.5})
	out, err := Bin{Width: 1, Boundary: &boundary}.F(in)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 0, 1}, out.Column("count"))
}

func TestBinEmpty(t *testing.T) {
	out, err := Bin{Width: 1}.F(tbl("x", []float64{math.NaN()}))
	require.NoError(t, err)
	assert.Equal(t, 0, out.Len())
}

func TestBinSturgesDefault(t *testing.T) {
	xs := make([]float64, 100)
	for i := range xs {
		xs[i] = float64(i)
	}
	out, err := Bin{}.F(tbl("x", xs))
	require.NoError(t, err)
	// ceil(log2(100))+1 = 8 bins over the data span.
	assert.True(t, out.Len() >= 8, "got %d bins", out.Len())
	total := 0.0
	for _, c := range out.Column("count").([]float64) {
		total += c
	}
	assert.Equal(t, 100.0, total)
}

func TestECDF(t *testing.T) {
	in := tbl("x", []float64{3, 1, 2, 2})
	out, err := ECDF{}.F(in)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, out.Column("x"))
	assert.Equal(t, []float64{0.25, 0.75, 1}, out.Column("cumdensity"))
	assert.Equal(t, []float64{1, 3, 4}, out.Column("cumcount"))
}

func TestSummary(t *testing.T) {
	in := tbl(
		"x", []string{"a", "b", "a", "b"},
		"y", []float64{1, 10, 3, 20},
	)

	out, err := Summary{}.F(in)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, out.Column("x"))
	assert.Equal(t, []float64{2, 15}, out.Column("y"))

	out, err = Summary{Fn: SummaryMax}.F(in)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 20}, out.Column("y"))

	out, err = Summary{Fn: SummaryMedian}.F(in)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 15}, out.Column("y"))
}

func TestSummaryIgnoresNonFinite(t *testing.T) {
	in := tbl(
		"x", []string{"a", "a", "b"},
		"y", []float64{4, math.NaN(), math.NaN()},
	)
	out, err := Summary{}.F(in)
	require.NoError(t, err)
	ys := out.Column("y").([]float64)
	assert.Equal(t, 4.0, ys[0])
	assert.True(t, math.IsNaN(ys[1]))
}

func TestSmoothLeastSquares(t *testing.T) {
	// Points exactly on y = 2x + 1.
	xs := []float64{0, 1, 2, 3, 4}
	ys := []float64{1, 3, 5, 7, 9}
	out, err := Smooth{N: 5}.F(tbl("x", xs, "y", ys))
	require.NoError(t, err)

	ox := out.Column("x").([]float64)
	oy := out.Column("y").([]float64)
	require.Len(t, ox, 5)
	for i := range ox {
		assert.InDelta(t, 2*ox[i]+1, oy[i], 1e-9)
	}
}

func TestSmoothTooFewPoints(t *testing.T) {
	_, err := Smooth{}.F(tbl("x", []float64{1}, "y", []float64{2}))
	assert.ErrorIs(t, err, ErrTooFewPoints)

	// Distinctness, not count: identical x values cannot be fit.
	_, err = Smooth{}.F(tbl("x", []float64{1, 1}, "y", []float64{2, 3}))
	assert.ErrorIs(t, err, ErrTooFewPoints)
}

func TestDensity(t *testing.T) {
	in := tbl("x", []float64{1, 2, 2, 3, 3, 3, 4})
	out, err := Density{N: 50}.F(in)
	require.NoError(t, err)

	require.Equal(t, 50, out.Len())
	dens := out.Column("density").([]float64)
	scaled := out.Column("scaled").([]float64)
	maxScaled := 0.0
	for i := range dens {
		assert.True(t, dens[i] >= 0)
		if scaled[i] > maxScaled {
			maxScaled = scaled[i]
		}
	}
	assert.InDelta(t, 1.0, maxScaled, 1e-12)
}

func TestDensityEmpty(t *testing.T) {
	out, err := Density{}.F(tbl("x", []float64{}))
	require.NoError(t, err)
	assert.Equal(t, 0, out.Len())
}
