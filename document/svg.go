// Copyright 2026 The plotforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package document

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo/float"
)

// fontFamily is the font stack named in the SVG output. Text metrics
// used during layout are computed from the bundled Go font, which is
// metrically close enough for margin purposes.
const fontFamily = `Roboto,&quot;Helvetica Neue&quot;,Helvetica,Arial,sans-serif`

// WriteSVG serializes d as an SVG image.
func (d *Document) WriteSVG(w io.Writer, fontSize float64) error {
	cw := &countingWriter{w: w}
	canvas := svg.New(cw)
	canvas.Start(d.Width, d.Height,
		fmt.Sprintf(`font-size="%.6gpx" font-family="%s"`, fontSize, fontFamily))
	sw := &svgWriter{canvas: canvas}
	if d.Root != nil {
		sw.group(d.Root)
	}
	canvas.End()
	return cw.err
}

type svgWriter struct {
	canvas *svg.SVG
	nonce  int
}

// genid returns a unique element ID and a url() reference to it.
func (sw *svgWriter) genid(prefix string) (id, ref string) {
	id = fmt.Sprintf("%s%d", prefix, sw.nonce)
	sw.nonce++
	return id, "url(#" + id + ")"
}

func (sw *svgWriter) group(g *Group) {
	attrs := ""
	if g.ID != "" {
		attrs += fmt.Sprintf(`id="%s" `, g.ID)
	}
	if g.Class != "" {
		attrs += fmt.Sprintf(`class="%s" `, g.Class)
	}
	if g.Transform != "" {
		attrs += fmt.Sprintf(`transform="%s" `, g.Transform)
	}
	if g.Clip.Set {
		clipID, clipRef := sw.genid("clip")
		sw.canvas.ClipPath(`id="` + clipID + `"`)
		sw.canvas.Rect(g.Clip.X, g.Clip.Y, g.Clip.W, g.Clip.H)
		sw.canvas.ClipEnd()
		attrs += fmt.Sprintf(`clip-path="%s" `, clipRef)
	}
	if attrs == "" {
		sw.canvas.Group()
	} else {
		sw.canvas.Group(attrs[:len(attrs)-1])
	}
	for _, k := range g.Kids {
		sw.node(k)
	}
	sw.canvas.Gend()
}

func (sw *svgWriter) node(n Node) {
	switch n := n.(type) {
	case *Group:
		sw.group(n)
	case *Rect:
		sw.canvas.Rect(n.X, n.Y, n.W, n.H, attrs(n.Class, n.Style))
	case *Line:
		sw.canvas.Line(n.X1, n.Y1, n.X2, n.Y2, attrs(n.Class, n.Style))
	case *Path:
		sw.canvas.Path(n.D, attrs(n.Class, n.Style))
	case *Circle:
		sw.canvas.Circle(n.X, n.Y, n.R, attrs(n.Class, n.Style))
	case *Polygon:
		sw.canvas.Polygon(n.Xs, n.Ys, attrs(n.Class, n.Style))
	case *Text:
		sw.canvas.Text(n.X, n.Y, n.S, textAttrs(n.Class, n.Style))
	default:
		panic(fmt.Sprintf("unknown document node %T", n))
	}
}

func attrs(class string, s Style) string {
	a := `style="` + s.CSS() + `"`
	if class != "" {
		a = fmt.Sprintf(`class="%s" `, class) + a
	}
	return a
}

func textAttrs(class string, s Style) string {
	a := `style="` + s.css(true) + `"`
	if class != "" {
		a = fmt.Sprintf(`class="%s" `, class) + a
	}
	if s.Anchor != "" {
		a += fmt.Sprintf(` text-anchor="%s"`, s.Anchor)
	}
	if s.DY != "" {
		a += fmt.Sprintf(` dy="%s"`, s.DY)
	}
	return a
}

// countingWriter remembers the first write error, since svgo does not
// surface them.
type countingWriter struct {
	w   io.Writer
	err error
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	if cw.err == nil && err != nil {
		cw.err = err
	}
	return n, err
}
