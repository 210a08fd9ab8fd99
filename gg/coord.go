// Copyright 2026 The plotforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import "math"

// A CoordKind selects the coordinate system mapping scaled positions
// into panel pixels.
type CoordKind int

const (
	// CoordCartesian linearly maps normalized [0,1] positions to
	// the panel rectangle, y inverted (origin top-left).
	CoordCartesian CoordKind = iota

	// CoordFlip swaps the x and y channels before the Cartesian
	// map. The x scale drives the vertical extent and its axis is
	// drawn on the left.
	CoordFlip

	// CoordFixed is Cartesian with the panel shrunk so one x data
	// unit and Ratio y data units occupy equal pixel lengths.
	CoordFixed

	// CoordPolar maps one positional channel to angle and the
	// other to radius about the panel center.
	CoordPolar

	// CoordTrans applies forward numeric transforms to the data
	// positions after scale mapping, re-normalizing over the
	// transformed domain. This is distinct from a scale-level
	// Trans, which applies before training.
	CoordTrans
)

func (k CoordKind) String() string {
	switch k {
	case CoordCartesian:
		return "cartesian"
	case CoordFlip:
		return "flip"
	case CoordFixed:
		return "fixed"
	case CoordPolar:
		return "polar"
	case CoordTrans:
		return "trans"
	}
	return "unknown"
}

// A Coord is a coordinate system. The zero value is Cartesian.
type Coord struct {
	Kind CoordKind

	// Ratio is the CoordFixed aspect: the number of y data units
	// that occupy the same pixel length as one x data unit. Zero
	// means 1.
	Ratio float64

	// Theta selects which channel drives the angle under
	// CoordPolar, AesX or AesY. The other channel drives radius.
	Theta Aes

	// Start is the polar start angle in radians.
	Start float64

	// Direction is the polar angle direction sign. Zero means +1.
	// With +1 and Start 0, a point at angle 0 maps to
	// (cx+r, cy) and a point at angle π/2 maps to (cx, cy-r).
	Direction int

	// NoClip disables clipping geometry to the panel rectangle.
	// Polar panels often want this since their geometry is round.
	NoClip bool

	// XTrans and YTrans are the CoordTrans transforms.
	XTrans, YTrans Trans
}

// flipped reports whether the x channel drives the vertical panel
// extent, which also moves its axis guides.
func (c *Coord) flipped() bool {
	return c.Kind == CoordFlip
}

// clips reports whether panel geometry is clipped to the panel
// rectangle.
func (c *Coord) clips() bool {
	return !c.NoClip
}

// A Rect is a pixel rectangle with origin at the top-left.
type Rect struct {
	X, Y, W, H float64
}

// constrain returns the sub-rectangle of panel a CoordFixed system
// actually draws in, centered, with height/width = Ratio·yspan/xspan.
// Other kinds return panel unchanged.
func (c *Coord) constrain(panel Rect, xDom, yDom [2]float64) Rect {
	if c.Kind != CoordFixed {
		return panel
	}
	ratio := c.Ratio
	if ratio == 0 {
		ratio = 1
	}
	xspan, yspan := xDom[1]-xDom[0], yDom[1]-yDom[0]
	if xspan <= 0 || yspan <= 0 {
		return panel
	}
	aspect := ratio * yspan / xspan
	w, h := panel.W, panel.W*aspect
	if h > panel.H {
		h = panel.H
		w = panel.H / aspect
	}
	return Rect{panel.X + (panel.W-w)/2, panel.Y + (panel.H-h)/2, w, h}
}

// A frame binds a coordinate system to one panel's pixel rectangle
// and the untransformed x/y domains of that panel's scales.
type frame struct {
	coord      *Coord
	rect       Rect
	xDom, yDom [2]float64
}

func (c *Coord) newFrame(panel Rect, xDom, yDom [2]float64) frame {
	return frame{c, c.constrain(panel, xDom, yDom), xDom, yDom}
}

// toPixel maps normalized [0,1] scale output to panel pixels.
func (f frame) toPixel(nx, ny float64) (px, py float64) {
	c := f.coord
	switch c.Kind {
	case CoordFlip:
		nx, ny = ny, nx
	case CoordTrans:
		nx = transNorm(nx, f.xDom, c.XTrans)
		ny = transNorm(ny, f.yDom, c.YTrans)
	case CoordPolar:
		return f.polar(nx, ny)
	}
	return f.rect.X + nx*f.rect.W, f.rect.Y + (1-ny)*f.rect.H
}

func (f frame) polar(nx, ny float64) (px, py float64) {
	c := f.coord
	tn, rn := nx, ny
	if c.Theta == AesY {
		tn, rn = ny, nx
	}
	dir := float64(c.Direction)
	if dir == 0 {
		dir = 1
	}
	theta := math.Mod(2*math.Pi*tn, 2*math.Pi)
	a := c.Start + dir*theta
	r := rn * math.Min(f.rect.W, f.rect.H) / 2
	cx, cy := f.rect.X+f.rect.W/2, f.rect.Y+f.rect.H/2
	return cx + r*math.Cos(a), cy - r*math.Sin(a)
}

// transNorm re-normalizes a normalized position over the transformed
// domain: the position's data value v is recovered from the linear
// domain, transformed, and rescaled between the transformed endpoints.
func transNorm(n float64, dom [2]float64, t Trans) float64 {
	if t == TransIdentity {
		return n
	}
	v := dom[0] + n*(dom[1]-dom[0])
	lo, hi := t.Forward(dom[0]), t.Forward(dom[1])
	if !isFinite(lo) || !isFinite(hi) || lo == hi {
		return n
	}
	return (t.Forward(v) - lo) / (hi - lo)
}
