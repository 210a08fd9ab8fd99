// Copyright 2026 The plotforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package document models a rendered chart as a tree of vector nodes.
//
// The plot composition pipeline emits a Document; exporters turn it
// into bytes. The only serializer included here is SVG (WriteSVG);
// rasterization and file handling belong to callers.
package document

import (
	"fmt"
	"image/color"
	"strings"
)

// A Document is one rendered chart: a fixed-size canvas and a root
// group of nodes.
type Document struct {
	Width, Height float64
	Root          *Group
}

// New returns an empty document of the given pixel size.
func New(width, height float64) *Document {
	return &Document{width, height, &Group{}}
}

// A Node is an element of a document. It is one of Group, Rect, Line,
// Path, Circle, Polygon, or Text.
type Node interface {
	node()
}

// A Group is a container of nodes with optional identity attributes
// and an optional transform.
type Group struct {
	// ID and Class identify the group in the serialized output,
	// e.g. "gg-panel-0-1" or "gg-legend". Either may be empty.
	ID, Class string

	// Transform is a raw transform expression, e.g.
	// "rotate(-90 10 20)". Empty means no transform.
	Transform string

	// Clip, if non-zero, clips the group's children to the given
	// rectangle.
	Clip ClipRect

	Kids []Node
}

// A ClipRect is an axis-aligned clip region. The zero value means no
// clipping.
type ClipRect struct {
	X, Y, W, H float64
	Set        bool
}

// Append adds nodes to g and returns g.
func (g *Group) Append(kids ...Node) *Group {
	g.Kids = append(g.Kids, kids...)
	return g
}

// NewGroup appends a new child group with the given id and class and
// returns the child.
func (g *Group) NewGroup(id, class string) *Group {
	ng := &Group{ID: id, Class: class}
	g.Kids = append(g.Kids, ng)
	return ng
}

// Style carries the visual properties shared by shape and text nodes.
// Zero values mean "unset": an unset stroke or fill is omitted from
// the output, inheriting the SVG defaults.
type Style struct {
	Stroke      color.Color
	StrokeWidth float64
	Fill        color.Color
	Opacity     float64 // 0 means unset (fully opaque)
	Dash        string  // SVG dasharray, e.g. "4,2"

	// Text-only properties.
	FontSize float64
	Anchor   string // "start", "middle", or "end"
	DY       string // baseline adjustment, e.g. ".3em"
}

type Rect struct {
	X, Y, W, H float64
	Class      string
	Style      Style
}

type Line struct {
	X1, Y1, X2, Y2 float64
	Class          string
	Style          Style
}

// A Path is a raw SVG path expression in pixel coordinates.
type Path struct {
	D     string
	Class string
	Style Style
}

type Circle struct {
	X, Y, R float64
	Class   string
	Style   Style
}

type Polygon struct {
	Xs, Ys []float64
	Class  string
	Style  Style
}

type Text struct {
	X, Y  float64
	S     string
	Class string
	Style Style
}

func (*Group) node()   {}
func (*Rect) node()    {}
func (*Line) node()    {}
func (*Path) node()    {}
func (*Circle) node()  {}
func (*Polygon) node() {}
func (*Text) node()    {}

// CSS renders s as an SVG style attribute value. An unset Fill
// renders as "fill:none" so unfilled shapes do not inherit black.
func (s Style) CSS() string {
	return s.css(false)
}

func (s Style) css(textNode bool) string {
	var parts []string
	if s.Stroke != nil {
		parts = append(parts, "stroke:"+cssColor(s.Stroke))
	}
	if s.StrokeWidth != 0 {
		parts = append(parts, fmt.Sprintf("stroke-width:%.6g", s.StrokeWidth))
	}
	if s.Fill != nil {
		parts = append(parts, "fill:"+cssColor(s.Fill))
	} else if !textNode {
		parts = append(parts, "fill:none")
	}
	if s.Opacity != 0 && s.Opacity != 1 {
		parts = append(parts, fmt.Sprintf("opacity:%.6g", s.Opacity))
	}
	if s.Dash != "" {
		parts = append(parts, "stroke-dasharray:"+s.Dash)
	}
	if s.FontSize != 0 {
		parts = append(parts, fmt.Sprintf("font-size:%.6gpx", s.FontSize))
	}
	return strings.Join(parts, ";")
}

func cssColor(c color.Color) string {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return "none"
	}
	// Un-premultiply to 8-bit channels.
	r, g, b = r*0xffff/a, g*0xffff/a, b*0xffff/a
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

// Walk calls f for every node in the tree rooted at n in depth-first
// order, including n itself.
func Walk(n Node, f func(Node)) {
	f(n)
	if g, ok := n.(*Group); ok {
		for _, k := range g.Kids {
			Walk(k, f)
		}
	}
}
