// Copyright 2026 The plotforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"fmt"
	"image/color"
	"math"
	"reflect"
	"sort"

	"github.com/plotforge/gg/document"
	"github.com/plotforge/gg/table"
)

// A Geom renders one panel's rows as document nodes. It receives the
// rows through a Mapper that has already resolved scales and the
// coordinate frame; a geom never sees raw data or scale internals.
type Geom interface {
	Draw(m *Mapper, out *document.Group)
}

// dashPatterns assigns SVG dash arrays to linetype levels.
var dashPatterns = []string{"", "6,2", "2,2", "6,2,2,2", "1,3", "8,4"}

// A Mapper gives geoms pixel-space access to one panel's rows: scaled
// positions, the coordinate frame, and resolved style aesthetics.
type Mapper struct {
	t      *table.Table
	frame  frame
	scales map[Aes]*Scale
	theme  *Theme

	norm       map[Aes][]float64
	xadj, xwid []float64
	xres       float64
}

func newMapper(t *table.Table, f frame, scales map[Aes]*Scale, theme *Theme) *Mapper {
	m := &Mapper{t: t, frame: f, scales: scales, theme: theme, norm: make(map[Aes][]float64)}
	for _, a := range []Aes{AesX, AesXMin, AesXMax, AesY, AesYMin, AesYMax} {
		col := t.Column(a.String())
		if col == nil {
			continue
		}
		s := scales[a.positionalScale()]
		if s == nil {
			continue
		}
		m.norm[a] = s.MapAll(col)
	}
	if adj, ok := numericColumn(t, colXAdjust); ok {
		m.xadj = adj
	}
	if w, ok := numericColumn(t, colXWidth); ok {
		m.xwid = w
	}
	if xs := m.norm[AesX]; xs != nil {
		m.xres = resolution(xs)
	}
	return m
}

// Len returns the number of rows.
func (m *Mapper) Len() int { return m.t.Len() }

// PosNorm returns row i's normalized position on aesthetic a,
// including any slot adjustment on x. ok is false if the aesthetic is
// unmapped.
func (m *Mapper) PosNorm(a Aes, i int) (pos float64, ok bool) {
	ns := m.norm[a]
	if ns == nil {
		return 0, false
	}
	pos = ns[i]
	if a == AesX && m.xadj != nil {
		if s := m.scales[AesX]; s != nil {
			pos += m.xadj[i] * s.unitNorm()
		}
	}
	return pos, true
}

// Pixel maps a normalized position pair through the coordinate frame.
func (m *Mapper) Pixel(nx, ny float64) (px, py float64) {
	return m.frame.toPixel(nx, ny)
}

// XY returns row i's pixel position. ok is false if x or y is
// unmapped or missing.
func (m *Mapper) XY(i int) (px, py float64, ok bool) {
	nx, okx := m.PosNorm(AesX, i)
	ny, oky := m.PosNorm(AesY, i)
	if !okx || !oky || math.IsNaN(nx) || math.IsNaN(ny) {
		return 0, 0, false
	}
	px, py = m.Pixel(nx, ny)
	return px, py, true
}

// XWidthNorm returns row i's bar/tile width as a normalized length.
// frac is the fraction of a slot (or of the x resolution) to fill
// when no explicit width is available.
func (m *Mapper) XWidthNorm(i int, frac float64) float64 {
	s := m.scales[AesX]
	if s == nil {
		return 0
	}
	if m.xwid != nil && !math.IsNaN(m.xwid[i]) {
		return m.xwid[i] * s.unitNorm()
	}
	if xmin, ok := m.PosNorm(AesXMin, i); ok {
		if xmax, ok := m.PosNorm(AesXMax, i); ok {
			return xmax - xmin
		}
	}
	if s.Discrete() {
		return frac * s.unitNorm()
	}
	if m.xres > 0 {
		return frac * m.xres
	}
	return frac * s.unitNorm()
}

// styleValue returns row i's raw value in the aesthetic's column.
func (m *Mapper) styleValue(a Aes, i int) (interface{}, bool) {
	col := m.t.Column(a.String())
	if col == nil {
		return nil, false
	}
	return reflect.ValueOf(col).Index(i).Interface(), true
}

// aesColor maps row i's value on a color-like aesthetic, or returns
// def when the aesthetic is unmapped.
func (m *Mapper) aesColor(a Aes, i int, def color.Color) color.Color {
	v, ok := m.styleValue(a, i)
	if !ok {
		return def
	}
	s := m.scales[a]
	if s == nil {
		return def
	}
	if s.Discrete() {
		li, ok := s.levelIndex[fmt.Sprint(v)]
		if !ok {
			return color.RGBA{0x7f, 0x7f, 0x7f, 0xff}
		}
		return levelColor(li)
	}
	x, err := toFloat(v)
	if err != nil {
		return def
	}
	n := s.Map(x)
	if math.IsNaN(n) {
		return color.RGBA{0x7f, 0x7f, 0x7f, 0xff}
	}
	return continuousPalette.Map(math.Max(0, math.Min(1, n)))
}

// Color returns row i's stroke color.
func (m *Mapper) Color(i int, def color.Color) color.Color {
	return m.aesColor(AesColor, i, def)
}

// Fill returns row i's fill color.
func (m *Mapper) Fill(i int, def color.Color) color.Color {
	return m.aesColor(AesFill, i, def)
}

// Alpha returns row i's opacity in (0, 1], or 1 when unmapped.
func (m *Mapper) Alpha(i int) float64 {
	v, ok := m.styleValue(AesAlpha, i)
	s := m.scales[AesAlpha]
	if !ok || s == nil || s.Discrete() {
		return 1
	}
	x, err := toFloat(v)
	if err != nil {
		return 1
	}
	n := s.Map(x)
	if math.IsNaN(n) {
		return 1
	}
	return 0.1 + 0.9*n
}

// Size returns row i's size in pixels, scaled around def when the
// size aesthetic is mapped.
func (m *Mapper) Size(i int, def float64) float64 {
	v, ok := m.styleValue(AesSize, i)
	s := m.scales[AesSize]
	if !ok || s == nil || s.Discrete() {
		return def
	}
	x, err := toFloat(v)
	if err != nil {
		return def
	}
	n := s.Map(x)
	if math.IsNaN(n) {
		return def
	}
	return def * (0.5 + 2.5*n)
}

// Dash returns row i's dash pattern from the linetype aesthetic.
func (m *Mapper) Dash(i int) string {
	v, ok := m.styleValue(AesLinetype, i)
	s := m.scales[AesLinetype]
	if !ok || s == nil || !s.Discrete() {
		return ""
	}
	li, ok := s.levelIndex[fmt.Sprint(v)]
	if !ok {
		return ""
	}
	return dashPatterns[li%len(dashPatterns)]
}

// Label returns row i's label text.
func (m *Mapper) Label(i int) string {
	v, ok := m.styleValue(AesLabel, i)
	if !ok {
		return ""
	}
	return fmt.Sprint(v)
}

// Groups partitions the rows by the grouping aesthetics present,
// first-seen order, for geoms that draw connected geometry.
func (m *Mapper) Groups() [][]int {
	var cols []reflect.Value
	for _, a := range groupingAes {
		c := m.t.Column(a.String())
		if c == nil {
			continue
		}
		s := m.scales[a]
		if a != AesGroup && s != nil && !s.Discrete() {
			continue
		}
		cols = append(cols, reflect.ValueOf(c))
	}
	if len(cols) == 0 {
		all := make([]int, m.t.Len())
		for i := range all {
			all[i] = i
		}
		return [][]int{all}
	}
	idx := make(map[string]int)
	var groups [][]int
	for i := 0; i < m.t.Len(); i++ {
		key := ""
		for _, c := range cols {
			key += fmt.Sprint(c.Index(i).Interface()) + "\x00"
		}
		j, ok := idx[key]
		if !ok {
			j = len(groups)
			idx[key] = j
			groups = append(groups, nil)
		}
		groups[j] = append(groups[j], i)
	}
	return groups
}

var (
	defBlack = color.RGBA{0x00, 0x00, 0x00, 0xff}
	defGrey  = color.RGBA{0x59, 0x59, 0x59, 0xff}
)

// Point draws one marker per row.
type Point struct {
	// Color is the default marker color when the color aesthetic
	// is unmapped.
	Color color.Color

	// Size is the default marker radius in pixels. Zero means 2.
	Size float64
}

func (g Point) Draw(m *Mapper, out *document.Group) {
	def := g.Color
	if def == nil {
		def = defBlack
	}
	size := g.Size
	if size == 0 {
		size = 2
	}
	for i := 0; i < m.Len(); i++ {
		px, py, ok := m.XY(i)
		if !ok {
			continue
		}
		out.Append(&document.Circle{
			X: px, Y: py, R: m.Size(i, size),
			Class: "gg-point",
			Style: document.Style{Fill: m.Color(i, def), Opacity: m.Alpha(i)},
		})
	}
}

// Line draws one polyline per group, ordered by x. Path is the
// unsorted variant.
type Line struct {
	Color color.Color
	Width float64
	Dash  string
}

// Path draws one polyline per group in row order.
type Path struct {
	Color color.Color
	Width float64
	Dash  string
}

func (g Line) Draw(m *Mapper, out *document.Group) {
	drawLines(m, out, "gg-line", g.Color, g.Width, g.Dash, true)
}

func (g Path) Draw(m *Mapper, out *document.Group) {
	drawLines(m, out, "gg-path", g.Color, g.Width, g.Dash, false)
}

func drawLines(m *Mapper, out *document.Group, class string, defc color.Color, width float64, dash string, sortX bool) {
	if defc == nil {
		defc = defBlack
	}
	if width == 0 {
		width = 1
	}
	for _, rows := range m.Groups() {
		rows = append([]int(nil), rows...)
		if sortX {
			sort.SliceStable(rows, func(a, b int) bool {
				na, _ := m.PosNorm(AesX, rows[a])
				nb, _ := m.PosNorm(AesX, rows[b])
				return na < nb
			})
		}
		var d []byte
		started := false
		first := -1
		for _, i := range rows {
			px, py, ok := m.XY(i)
			if !ok {
				started = false
				continue
			}
			if first < 0 {
				first = i
			}
			if started {
				d = append(d, fmt.Sprintf(" L%.6g %.6g", px, py)...)
			} else {
				d = append(d, fmt.Sprintf("M%.6g %.6g", px, py)...)
				started = true
			}
		}
		if len(d) == 0 {
			continue
		}
		st := document.Style{
			Stroke:      defc,
			StrokeWidth: width,
			Dash:        dash,
		}
		if first >= 0 {
			st.Stroke = m.Color(first, defc)
			st.Opacity = m.Alpha(first)
			if dash == "" {
				st.Dash = m.Dash(first)
			}
		}
		out.Append(&document.Path{D: string(d), Class: class, Style: st})
	}
}

// Bar draws one vertical bar per row, from ymin/ymax when present
// (e.g. after stacking) or from 0 to y. It serves both counted and
// pre-summarized data; pair it with ggstat.Identity for the latter.
type Bar struct {
	// Fill is the default bar fill when the fill aesthetic is
	// unmapped.
	Fill color.Color

	// Width is the bar width as a fraction of a slot. Zero means
	// 0.9.
	Width float64
}

func (g Bar) Draw(m *Mapper, out *document.Group) {
	def := g.Fill
	if def == nil {
		def = defGrey
	}
	frac := g.Width
	if frac == 0 {
		frac = 0.9
	}
	for i := 0; i < m.Len(); i++ {
		nx, ok := m.PosNorm(AesX, i)
		if !ok || math.IsNaN(nx) {
			continue
		}
		y0, y1, ok := m.ySpan(i)
		if !ok {
			continue
		}
		half := m.XWidthNorm(i, frac) / 2
		quad(out, m, "gg-bar", nx-half, y0, nx+half, y1, document.Style{
			Fill: m.Fill(i, def), Opacity: m.Alpha(i),
		})
	}
}

// ySpan returns row i's normalized vertical extent: ymin/ymax when
// mapped, else baseline 0 to y.
func (m *Mapper) ySpan(i int) (y0, y1 float64, ok bool) {
	if a, oka := m.PosNorm(AesYMin, i); oka {
		if b, okb := m.PosNorm(AesYMax, i); okb {
			if math.IsNaN(a) || math.IsNaN(b) {
				return 0, 0, false
			}
			return a, b, true
		}
	}
	ny, oky := m.PosNorm(AesY, i)
	if !oky || math.IsNaN(ny) {
		return 0, 0, false
	}
	s := m.scales[AesY]
	base := 0.0
	if s != nil && !s.Discrete() {
		base = s.Map(s.Trans.Inverse(0))
		if math.IsNaN(base) {
			base = 0
		}
	}
	return base, ny, true
}

// quad draws the axis-aligned normalized rectangle through the
// coordinate frame, so it flips and bends with the frame.
func quad(out *document.Group, m *Mapper, class string, x0, y0, x1, y1 float64, st document.Style) {
	xs := make([]float64, 4)
	ys := make([]float64, 4)
	xs[0], ys[0] = m.Pixel(x0, y0)
	xs[1], ys[1] = m.Pixel(x1, y0)
	xs[2], ys[2] = m.Pixel(x1, y1)
	xs[3], ys[3] = m.Pixel(x0, y1)
	out.Append(&document.Polygon{Xs: xs, Ys: ys, Class: class, Style: st})
}

// Area fills the region between ymin/ymax (or 0 and y) along x, one
// polygon per group.
type Area struct {
	Fill color.Color
}

func (g Area) Draw(m *Mapper, out *document.Group) {
	def := g.Fill
	if def == nil {
		def = defGrey
	}
	for _, rows := range m.Groups() {
		rows = append([]int(nil), rows...)
		sort.SliceStable(rows, func(a, b int) bool {
			na, _ := m.PosNorm(AesX, rows[a])
			nb, _ := m.PosNorm(AesX, rows[b])
			return na < nb
		})
		var topX, topY, botX, botY []float64
		first := -1
		for _, i := range rows {
			nx, ok := m.PosNorm(AesX, i)
			if !ok || math.IsNaN(nx) {
				continue
			}
			y0, y1, ok := m.ySpan(i)
			if !ok {
				continue
			}
			if first < 0 {
				first = i
			}
			px, py := m.Pixel(nx, y1)
			topX, topY = append(topX, px), append(topY, py)
			px, py = m.Pixel(nx, y0)
			botX, botY = append(botX, px), append(botY, py)
		}
		if len(topX) < 2 {
			continue
		}
		// Close the ring: top left-to-right, bottom right-to-left.
		for i := len(botX) - 1; i >= 0; i-- {
			topX, topY = append(topX, botX[i]), append(topY, botY[i])
		}
		out.Append(&document.Polygon{
			Xs: topX, Ys: topY, Class: "gg-area",
			Style: document.Style{Fill: m.Fill(first, def), Opacity: m.Alpha(first)},
		})
	}
}

// Tile draws one rectangle per row, centered on (x, y) or spanning
// xmin/xmax and ymin/ymax when mapped.
type Tile struct {
	Fill color.Color

	// Width and Height are slot fractions used when no explicit
	// extent is mapped. Zero means 1 (tiles touch).
	Width, Height float64
}

func (g Tile) Draw(m *Mapper, out *document.Group) {
	def := g.Fill
	if def == nil {
		def = defGrey
	}
	wfrac, hfrac := g.Width, g.Height
	if wfrac == 0 {
		wfrac = 1
	}
	if hfrac == 0 {
		hfrac = 1
	}
	ys := m.scales[AesY]
	for i := 0; i < m.Len(); i++ {
		nx, ok := m.PosNorm(AesX, i)
		if !ok || math.IsNaN(nx) {
			continue
		}
		ny, ok := m.PosNorm(AesY, i)
		if !ok || math.IsNaN(ny) {
			continue
		}
		halfW := m.XWidthNorm(i, wfrac) / 2
		halfH := hfrac / 2
		if ys != nil {
			halfH = hfrac * ys.unitNorm() / 2
		}
		if ymin, oka := m.PosNorm(AesYMin, i); oka {
			if ymax, okb := m.PosNorm(AesYMax, i); okb {
				ny, halfH = (ymin+ymax)/2, (ymax-ymin)/2
			}
		}
		quad(out, m, "gg-tile", nx-halfW, ny-halfH, nx+halfW, ny+halfH, document.Style{
			Fill: m.Fill(i, def), Opacity: m.Alpha(i),
		})
	}
}

// TextGeom draws the label aesthetic at each row's position.
type TextGeom struct {
	Color color.Color

	// Size is the font size in pixels. Zero uses the theme base.
	Size float64
}

func (g TextGeom) Draw(m *Mapper, out *document.Group) {
	def := g.Color
	if def == nil {
		def = defBlack
	}
	size := g.Size
	if size == 0 && m.theme != nil {
		size = m.theme.BaseFontSize
	}
	for i := 0; i < m.Len(); i++ {
		px, py, ok := m.XY(i)
		if !ok {
			continue
		}
		s := m.Label(i)
		if s == "" {
			continue
		}
		out.Append(&document.Text{
			X: px, Y: py, S: s, Class: "gg-text",
			Style: document.Style{
				Fill: m.Color(i, def), Opacity: m.Alpha(i),
				FontSize: size, Anchor: "middle", DY: ".35em",
			},
		})
	}
}
