// Copyright 2026 The plotforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartesianFrame(t *testing.T) {
	c := &Coord{}
	f := c.newFrame(Rect{10, 20, 100, 50}, [2]float64{0, 1}, [2]float64{0, 1})

	// y is inverted: normalized (0,0) is the bottom-left pixel.
	px, py := f.toPixel(0, 0)
	assert.Equal(t, 10.0, px)
	assert.Equal(t, 70.0, py)

	px, py = f.toPixel(1, 1)
	assert.Equal(t, 110.0, px)
	assert.Equal(t, 20.0, py)

	px, py = f.toPixel(0.5, 0.5)
	assert.Equal(t, 60.0, px)
	assert.Equal(t, 45.0, py)
}

func TestFlipFrame(t *testing.T) {
	c := &Coord{Kind: CoordFlip}
	f := c.newFrame(Rect{0, 0, 100, 50}, [2]float64{0, 1}, [2]float64{0, 1})

	// The x channel drives the vertical extent, so the y position
	// moves px and the x position moves py.
	px, py := f.toPixel(0.25, 0.5)
	assert.Equal(t, 50.0, px)
	assert.Equal(t, 37.5, py)

	assert.True(t, c.flipped())
	assert.False(t, (&Coord{}).flipped())
}

func TestFixedConstrain(t *testing.T) {
	// One x unit must occupy the same pixel length as one y unit, so
	// a square domain in a wide panel shrinks to a centered square.
	c := &Coord{Kind: CoordFixed}
	r := c.constrain(Rect{0, 0, 200, 100}, [2]float64{0, 10}, [2]float64{0, 10})
	assert.Equal(t, Rect{50, 0, 100, 100}, r)

	// Ratio 2 doubles the pixel length of a y unit.
	c = &Coord{Kind: CoordFixed, Ratio: 2}
	r = c.constrain(Rect{0, 0, 300, 100}, [2]float64{0, 10}, [2]float64{0, 5})
	assert.Equal(t, Rect{100, 0, 100, 100}, r)

	// Cartesian never constrains.
	full := Rect{0, 0, 200, 100}
	assert.Equal(t, full, (&Coord{}).constrain(full, [2]float64{0, 1}, [2]float64{0, 1}))
}

func TestPolarFrame(t *testing.T) {
	c := &Coord{Kind: CoordPolar}
	f := c.newFrame(Rect{0, 0, 100, 100}, [2]float64{0, 1}, [2]float64{0, 1})

	// Angle 0 at full radius lands on the right edge of the circle.
	px, py := f.toPixel(0, 1)
	assert.InDelta(t, 100, px, 1e-9)
	assert.InDelta(t, 50, py, 1e-9)

	// A quarter turn counterclockwise points up (screen y decreases).
	px, py = f.toPixel(0.25, 1)
	assert.InDelta(t, 50, px, 1e-9)
	assert.InDelta(t, 0, py, 1e-9)

	// Zero radius is the center regardless of angle.
	px, py = f.toPixel(0.7, 0)
	assert.InDelta(t, 50, px, 1e-9)
	assert.InDelta(t, 50, py, 1e-9)

	// A full turn closes on the start.
	px0, py0 := f.toPixel(0, 0.5)
	px1, py1 := f.toPixel(1, 0.5)
	assert.InDelta(t, px0, px1, 1e-9)
	assert.InDelta(t, py0, py1, 1e-9)
}

func TestPolarDirectionAndStart(t *testing.T) {
	// Start π/2 with clockwise direction: angle 0 points up and a
	// quarter turn moves to the right, the pie-chart convention.
	c := &Coord{Kind: CoordPolar, Start: math.Pi / 2, Direction: -1}
	f := c.newFrame(Rect{0, 0, 100, 100}, [2]float64{0, 1}, [2]float64{0, 1})

	px, py := f.toPixel(0, 1)
	assert.InDelta(t, 50, px, 1e-9)
	assert.InDelta(t, 0, py, 1e-9)

	px, py = f.toPixel(0.25, 1)
	assert.InDelta(t, 100, px, 1e-9)
	assert.InDelta(t, 50, py, 1e-9)
}

func TestPolarThetaY(t *testing.T) {
	c := &Coord{Kind: CoordPolar, Theta: AesY}
	f := c.newFrame(Rect{0, 0, 100, 100}, [2]float64{0, 1}, [2]float64{0, 1})

	// With Theta = AesY the roles swap: x drives radius.
	px, py := f.toPixel(1, 0)
	assert.InDelta(t, 100, px, 1e-9)
	assert.InDelta(t, 50, py, 1e-9)
}

func TestPolarNonSquarePanel(t *testing.T) {
	// Radius uses the smaller panel dimension.
	c := &Coord{Kind: CoordPolar}
	f := c.newFrame(Rect{0, 0, 200, 100}, [2]float64{0, 1}, [2]float64{0, 1})
	px, py := f.toPixel(0, 1)
	assert.InDelta(t, 150, px, 1e-9)
	assert.InDelta(t, 50, py, 1e-9)
}

func TestTransFrame(t *testing.T) {
	c := &Coord{Kind: CoordTrans, XTrans: TransLog10, YTrans: TransIdentity}
	f := c.newFrame(Rect{0, 0, 100, 100}, [2]float64{1, 100}, [2]float64{0, 1})

	// Endpoints are fixed points of the re-normalization.
	px, _ := f.toPixel(0, 0)
	assert.InDelta(t, 0, px, 1e-9)
	px, _ = f.toPixel(1, 0)
	assert.InDelta(t, 100, px, 1e-9)

	// The linear midpoint of [1,100] is 50.5, which log10 places at
	// log10(50.5)/2 of the way across.
	px, _ = f.toPixel(0.5, 0)
	assert.InDelta(t, 100*math.Log10(50.5)/2, px, 1e-9)
}

func TestTransNorm(t *testing.T) {
	assert.Equal(t, 0.25, transNorm(0.25, [2]float64{0, 1}, TransIdentity))

	// A degenerate transformed domain falls back to the linear
	// position.
	assert.Equal(t, 0.5, transNorm(0.5, [2]float64{3, 3}, TransLog10))

	// Square-root pulls the midpoint outward.
	n := transNorm(0.5, [2]float64{0, 4}, TransSqrt)
	assert.InDelta(t, math.Sqrt2/2, n, 1e-9)
}

func TestCoordClip(t *testing.T) {
	assert.True(t, (&Coord{}).clips())
	assert.False(t, (&Coord{NoClip: true}).clips())
}
