// Copyright 2026 The plotforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"fmt"

	"github.com/plotforge/gg/document"
)

// Style conversion from theme elements to document nodes.

func rectStyle(r RectStyle) document.Style {
	return document.Style{
		Fill:        parseColor(r.Fill),
		Stroke:      parseColor(r.Stroke),
		StrokeWidth: r.StrokeWidth,
	}
}

func lineStyle(l LineStyle) document.Style {
	return document.Style{
		Stroke:      parseColor(l.Color),
		StrokeWidth: l.Width,
		Dash:        l.Dash,
	}
}

func textStyle(ts TextStyle, size float64) document.Style {
	return document.Style{Fill: parseColor(ts.Color), FontSize: size}
}

// compose lays panels, axes, strips, guides, and the title out on the
// canvas and draws every layer.
func compose(p *Plot, theme *Theme, width, height float64, fl *facetLayout, reg *registry) *document.Document {
	doc := document.New(width, height)
	root := doc.Root
	if !theme.PlotBackground.Blank {
		root.Append(&document.Rect{
			W: width, H: height,
			Class: "gg-background", Style: rectStyle(theme.PlotBackground),
		})
	}

	horiz, vert := AesX, AesY
	if p.Coord.flipped() {
		horiz, vert = AesY, AesX
	}
	polar := p.Coord.Kind == CoordPolar

	axisTextSize := theme.size(theme.AxisText)
	axisTitleSize := theme.size(theme.AxisTitle)
	stripSize := theme.size(theme.StripText)

	titleH := 0.0
	if p.Title != "" {
		titleH = textHeight(theme.size(theme.PlotTitle)) + theme.Margin/2
	}

	hTitle, vTitle := p.label(horiz), p.label(vert)

	// Space for the axis annotation on each side.
	var bottomH, leftW, topH, rightW float64
	if !polar {
		bottomH = theme.TickLength + textHeight(axisTextSize) + 2
		if hTitle != "" {
			bottomH += textHeight(axisTitleSize) + 2
		}
		leftW = theme.TickLength + maxLabelWidth(reg, vert, axisTextSize) + 4
		if vTitle != "" {
			leftW += textHeight(axisTitleSize) + 2
		}
		if hs := reg.shared(horiz); hs != nil && reg.sec[hs] != nil {
			topH = theme.TickLength + textHeight(axisTextSize) + 2
			if reg.sec[hs].name != "" {
				topH += textHeight(axisTitleSize) + 2
			}
		}
		if vs := reg.shared(vert); vs != nil && reg.sec[vs] != nil {
			sec := reg.sec[vs]
			maxw := 0.0
			for _, l := range sec.labels {
				if w := textWidth(l, axisTextSize); w > maxw {
					maxw = w
				}
			}
			rightW = theme.TickLength + maxw + 4
			if sec.name != "" {
				rightW += textHeight(axisTitleSize) + 2
			}
		}
	}

	// Legends.
	legends := buildLegends(p, sharedScales(reg))
	const keySize = 14.0
	legendW := 0.0
	for _, lg := range legends {
		w := textWidth(lg.title, theme.size(theme.LegendTitle))
		for _, e := range lg.entries {
			if ew := keySize + 6 + textWidth(e.label, theme.size(theme.LegendText)); ew > w {
				w = ew
			}
		}
		if w > legendW {
			legendW = w
		}
	}
	if legendW > 0 {
		legendW += theme.Margin
	}

	// Facet strips.
	wrapStrips := p.Facet.Kind == FacetWrap
	gridColStrips := p.Facet.Kind == FacetGrid && len(p.Facet.Cols) > 0
	gridRowStrips := p.Facet.Kind == FacetGrid && len(p.Facet.Rows) > 0
	stripH := textHeight(stripSize) + 6
	var rowStripW, topStripPerRow, topStripOnce float64
	if wrapStrips {
		topStripPerRow = stripH
	} else if gridColStrips {
		topStripOnce = stripH
	}
	if gridRowStrips {
		rowStripW = stripH
	}

	plotL := theme.Margin + leftW
	plotT := theme.Margin + titleH + topH
	plotR := width - theme.Margin - legendW - rightW - rowStripW
	plotB := height - theme.Margin - bottomH
	if plotR < plotL+10 {
		plotR = plotL + 10
	}
	if plotB < plotT+10 {
		plotB = plotT + 10
	}

	nrow, ncol := float64(fl.nrow), float64(fl.ncol)
	panelW := (plotR - plotL - theme.PanelSpacing*(ncol-1)) / ncol
	panelH := (plotB - plotT - topStripOnce - theme.PanelSpacing*(nrow-1) - topStripPerRow*nrow) / nrow

	panelRect := func(pan *Panel) Rect {
		x := plotL + float64(pan.Col)*(panelW+theme.PanelSpacing)
		y := plotT + topStripOnce +
			float64(pan.Row)*(panelH+topStripPerRow+theme.PanelSpacing) + topStripPerRow
		return Rect{x, y, panelW, panelH}
	}

	// Title.
	if p.Title != "" && !theme.PlotTitle.Blank {
		root.Append(&document.Text{
			X: (plotL + plotR) / 2, Y: theme.Margin + textHeight(theme.size(theme.PlotTitle))*0.8,
			S: p.Title, Class: "gg-title",
			Style: styleAnchored(textStyle(theme.PlotTitle, theme.size(theme.PlotTitle)), "middle"),
		})
	}

	for _, pan := range fl.panels {
		rect := panelRect(pan)
		xs := reg.forPanel(pan, AesX)
		ys := reg.forPanel(pan, AesY)
		xd0, xd1 := xs.Domain()
		yd0, yd1 := ys.Domain()
		fr := p.Coord.newFrame(rect, [2]float64{xd0, xd1}, [2]float64{yd0, yd1})

		g := root.NewGroup(fmt.Sprintf("gg-panel-%d-%d", pan.Row, pan.Col), "gg-panel")
		if p.Coord.clips() {
			g.Clip = document.ClipRect{X: rect.X, Y: rect.Y, W: rect.W, H: rect.H, Set: true}
		}
		if !theme.PanelBackground.Blank {
			g.Append(&document.Rect{
				X: rect.X, Y: rect.Y, W: rect.W, H: rect.H,
				Class: "gg-panel-bg", Style: rectStyle(theme.PanelBackground),
			})
		}
		drawGrid(g, fr, xs, ys, theme, polar)

		for li, l := range p.Layers {
			t := pan.layers[li]
			if t == nil || t.Len() == 0 {
				continue
			}
			m := newMapper(t, fr, reg.panelScales(pan), theme)
			l.Geom.Draw(m, g)
		}

		// Strips.
		if wrapStrips {
			drawStrip(root, theme, Rect{rect.X, rect.Y - stripH, rect.W, stripH}, pan.RowLabel, false)
		}
		if gridColStrips && pan.Row == 0 {
			drawStrip(root, theme, Rect{rect.X, rect.Y - stripH, rect.W, stripH}, pan.ColLabel, false)
		}
		if gridRowStrips && pan.Col == fl.ncol-1 {
			drawStrip(root, theme, Rect{rect.X + rect.W, rect.Y, rowStripW, rect.H}, pan.RowLabel, true)
		}

		// Axes.
		if !polar {
			if pan.Row == fl.nrow-1 {
				drawBottomAxis(root, theme, rect, reg.forPanel(pan, horiz))
			}
			if pan.Col == 0 {
				drawLeftAxis(root, theme, rect, reg.forPanel(pan, vert))
			}
			if pan.Row == 0 {
				hs := reg.forPanel(pan, horiz)
				if sec := reg.sec[hs]; sec != nil {
					drawTopAxis(root, theme, rect, sec)
				}
			}
			if pan.Col == fl.ncol-1 {
				vs := reg.forPanel(pan, vert)
				if sec := reg.sec[vs]; sec != nil {
					drawRightAxis(root, theme, Rect{rect.X + rect.W + rowStripW, rect.Y, 0, rect.H}, sec)
				}
			}
		}
	}

	// Axis titles.
	if !polar {
		if hTitle != "" && !theme.AxisTitle.Blank {
			root.Append(&document.Text{
				X: (plotL + plotR) / 2, Y: plotB + bottomH - 2,
				S: hTitle, Class: "gg-axis-title",
				Style: styleAnchored(textStyle(theme.AxisTitle, axisTitleSize), "middle"),
			})
		}
		if vTitle != "" && !theme.AxisTitle.Blank {
			x := theme.Margin + textHeight(axisTitleSize)*0.8
			y := (plotT + plotB) / 2
			tg := root.NewGroup("", "gg-axis-title")
			tg.Transform = fmt.Sprintf("rotate(-90 %.6g %.6g)", x, y)
			tg.Append(&document.Text{
				X: x, Y: y, S: vTitle,
				Style: styleAnchored(textStyle(theme.AxisTitle, axisTitleSize), "middle"),
			})
		}
	}

	drawLegends(root, theme, legends, width-theme.Margin-legendW+theme.Margin/2, plotT, keySize)

	return doc
}

// sharedScales collects the cross-panel scales by aesthetic.
func sharedScales(reg *registry) map[Aes]*Scale {
	out := make(map[Aes]*Scale)
	for k, s := range reg.scales {
		if k.group == -1 {
			out[k.aes] = s
		}
	}
	return out
}

// maxLabelWidth measures the widest break label over every scale
// instance of an aesthetic.
func maxLabelWidth(reg *registry, a Aes, size float64) float64 {
	maxw := 0.0
	for k, s := range reg.scales {
		if k.aes != a {
			continue
		}
		for _, l := range s.BreakLabels() {
			if w := textWidth(l, size); w > maxw {
				maxw = w
			}
		}
	}
	return maxw
}

func styleAnchored(s document.Style, anchor string) document.Style {
	s.Anchor = anchor
	return s
}

// drawGrid draws minor and major grid lines for both positional
// scales, sampled through the coordinate frame so they bend under
// polar coordinates.
func drawGrid(g *document.Group, fr frame, xs, ys *Scale, theme *Theme, polar bool) {
	samples := 2
	if polar {
		samples = 65
	}
	line := func(pos float64, alongX bool, class string, ls LineStyle) {
		if pos < 0 || pos > 1 {
			return
		}
		var d []byte
		for j := 0; j < samples; j++ {
			t := float64(j) / float64(samples-1)
			nx, ny := pos, t
			if alongX {
				nx, ny = t, pos
			}
			px, py := fr.toPixel(nx, ny)
			if j == 0 {
				d = append(d, fmt.Sprintf("M%.6g %.6g", px, py)...)
			} else {
				d = append(d, fmt.Sprintf(" L%.6g %.6g", px, py)...)
			}
		}
		g.Append(&document.Path{D: string(d), Class: class, Style: lineStyle(ls)})
	}
	if !theme.GridMinor.Blank {
		for _, pos := range xs.MinorBreakPositions() {
			line(pos, false, "gg-grid-minor", theme.GridMinor)
		}
		for _, pos := range ys.MinorBreakPositions() {
			line(pos, true, "gg-grid-minor", theme.GridMinor)
		}
	}
	if !theme.GridMajor.Blank {
		for _, pos := range xs.BreakPositions() {
			line(pos, false, "gg-grid-major", theme.GridMajor)
		}
		for _, pos := range ys.BreakPositions() {
			line(pos, true, "gg-grid-major", theme.GridMajor)
		}
	}
}

func drawStrip(root *document.Group, theme *Theme, r Rect, label string, vertical bool) {
	if label == "" {
		return
	}
	g := root.NewGroup("", "gg-strip")
	if !theme.StripBackground.Blank {
		g.Append(&document.Rect{
			X: r.X, Y: r.Y, W: r.W, H: r.H,
			Style: rectStyle(theme.StripBackground),
		})
	}
	if theme.StripText.Blank {
		return
	}
	size := theme.size(theme.StripText)
	st := styleAnchored(textStyle(theme.StripText, size), "middle")
	st.DY = ".35em"
	txt := &document.Text{X: r.X + r.W/2, Y: r.Y + r.H/2, S: label, Style: st}
	if vertical {
		tg := g.NewGroup("", "")
		tg.Transform = fmt.Sprintf("rotate(-90 %.6g %.6g)", txt.X, txt.Y)
		tg.Append(txt)
	} else {
		g.Append(txt)
	}
}

func drawBottomAxis(root *document.Group, theme *Theme, rect Rect, s *Scale) {
	g := root.NewGroup("", "gg-axis gg-axis-x")
	y := rect.Y + rect.H
	if !theme.AxisLine.Blank {
		g.Append(&document.Line{
			X1: rect.X, Y1: y, X2: rect.X + rect.W, Y2: y,
			Class: "gg-axis-line", Style: lineStyle(theme.AxisLine),
		})
	}
	size := theme.size(theme.AxisText)
	labels := s.BreakLabels()
	for i, pos := range s.BreakPositions() {
		if pos < 0 || pos > 1 {
			continue
		}
		px := rect.X + pos*rect.W
		if !theme.AxisTick.Blank {
			g.Append(&document.Line{
				X1: px, Y1: y, X2: px, Y2: y + theme.TickLength,
				Class: "gg-axis-tick", Style: lineStyle(theme.AxisTick),
			})
		}
		if !theme.AxisText.Blank && i < len(labels) {
			st := styleAnchored(textStyle(theme.AxisText, size), "middle")
			st.DY = ".9em"
			g.Append(&document.Text{
				X: px, Y: y + theme.TickLength, S: labels[i],
				Class: "gg-axis-text", Style: st,
			})
		}
	}
}

func drawLeftAxis(root *document.Group, theme *Theme, rect Rect, s *Scale) {
	g := root.NewGroup("", "gg-axis gg-axis-y")
	if !theme.AxisLine.Blank {
		g.Append(&document.Line{
			X1: rect.X, Y1: rect.Y, X2: rect.X, Y2: rect.Y + rect.H,
			Class: "gg-axis-line", Style: lineStyle(theme.AxisLine),
		})
	}
	size := theme.size(theme.AxisText)
	labels := s.BreakLabels()
	for i, pos := range s.BreakPositions() {
		if pos < 0 || pos > 1 {
			continue
		}
		py := rect.Y + (1-pos)*rect.H
		if !theme.AxisTick.Blank {
			g.Append(&document.Line{
				X1: rect.X - theme.TickLength, Y1: py, X2: rect.X, Y2: py,
				Class: "gg-axis-tick", Style: lineStyle(theme.AxisTick),
			})
		}
		if !theme.AxisText.Blank && i < len(labels) {
			st := styleAnchored(textStyle(theme.AxisText, size), "end")
			st.DY = ".35em"
			g.Append(&document.Text{
				X: rect.X - theme.TickLength - 2, Y: py, S: labels[i],
				Class: "gg-axis-text", Style: st,
			})
		}
	}
}

func drawTopAxis(root *document.Group, theme *Theme, rect Rect, sec *secondaryAxis) {
	g := root.NewGroup("", "gg-axis gg-axis-x2")
	size := theme.size(theme.AxisText)
	for i, pos := range sec.positions {
		if pos < 0 || pos > 1 {
			continue
		}
		px := rect.X + pos*rect.W
		if !theme.AxisTick.Blank {
			g.Append(&document.Line{
				X1: px, Y1: rect.Y - theme.TickLength, X2: px, Y2: rect.Y,
				Class: "gg-axis-tick", Style: lineStyle(theme.AxisTick),
			})
		}
		if !theme.AxisText.Blank && i < len(sec.labels) {
			st := styleAnchored(textStyle(theme.AxisText, size), "middle")
			g.Append(&document.Text{
				X: px, Y: rect.Y - theme.TickLength - 2, S: sec.labels[i],
				Class: "gg-axis-text", Style: st,
			})
		}
	}
	if sec.name != "" && !theme.AxisTitle.Blank {
		ts := theme.size(theme.AxisTitle)
		st := styleAnchored(textStyle(theme.AxisTitle, ts), "middle")
		g.Append(&document.Text{
			X: rect.X + rect.W/2,
			Y: rect.Y - theme.TickLength - textHeight(theme.size(theme.AxisText)) - 4,
			S: sec.name, Class: "gg-axis-title", Style: st,
		})
	}
}

func drawRightAxis(root *document.Group, theme *Theme, edge Rect, sec *secondaryAxis) {
	g := root.NewGroup("", "gg-axis gg-axis-y2")
	size := theme.size(theme.AxisText)
	for i, pos := range sec.positions {
		if pos < 0 || pos > 1 {
			continue
		}
		py := edge.Y + (1-pos)*edge.H
		if !theme.AxisTick.Blank {
			g.Append(&document.Line{
				X1: edge.X, Y1: py, X2: edge.X + theme.TickLength, Y2: py,
				Class: "gg-axis-tick", Style: lineStyle(theme.AxisTick),
			})
		}
		if !theme.AxisText.Blank && i < len(sec.labels) {
			st := styleAnchored(textStyle(theme.AxisText, size), "start")
			st.DY = ".35em"
			g.Append(&document.Text{
				X: edge.X + theme.TickLength + 2, Y: py, S: sec.labels[i],
				Class: "gg-axis-text", Style: st,
			})
		}
	}
	if sec.name != "" && !theme.AxisTitle.Blank {
		ts := theme.size(theme.AxisTitle)
		x := edge.X + theme.TickLength + 4
		y := edge.Y + edge.H/2
		tg := g.NewGroup("", "gg-axis-title")
		tg.Transform = fmt.Sprintf("rotate(90 %.6g %.6g)", x, y)
		tg.Append(&document.Text{
			X: x, Y: y, S: sec.name,
			Style: styleAnchored(textStyle(theme.AxisTitle, ts), "middle"),
		})
	}
}

func drawLegends(root *document.Group, theme *Theme, legends []legend, x, y float64, keySize float64) {
	if len(legends) == 0 {
		return
	}
	g := root.NewGroup("", "gg-legend")
	titleSize := theme.size(theme.LegendTitle)
	textSize := theme.size(theme.LegendText)
	for _, lg := range legends {
		if lg.title != "" && !theme.LegendTitle.Blank {
			y += textHeight(titleSize)
			g.Append(&document.Text{
				X: x, Y: y, S: lg.title, Class: "gg-legend-title",
				Style: textStyle(theme.LegendTitle, titleSize),
			})
			y += 4
		}
		for _, e := range lg.entries {
			if !theme.LegendKey.Blank {
				g.Append(&document.Rect{
					X: x, Y: y, W: keySize, H: keySize,
					Class: "gg-legend-key", Style: rectStyle(theme.LegendKey),
				})
			}
			if e.line {
				g.Append(&document.Line{
					X1: x + 1, Y1: y + keySize/2, X2: x + keySize - 1, Y2: y + keySize/2,
					Style: document.Style{Stroke: e.swatch, StrokeWidth: 1.5, Dash: e.dash},
				})
			} else {
				g.Append(&document.Rect{
					X: x + 2, Y: y + 2, W: keySize - 4, H: keySize - 4,
					Style: document.Style{Fill: e.swatch},
				})
			}
			if !theme.LegendText.Blank {
				st := textStyle(theme.LegendText, textSize)
				st.DY = ".35em"
				g.Append(&document.Text{
					X: x + keySize + 6, Y: y + keySize/2, S: e.label,
					Class: "gg-legend-label", Style: st,
				})
			}
			y += keySize + 3
		}
		y += theme.Margin
	}
}
