// Copyright 2026 The plotforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"fmt"
	"reflect"

	"github.com/plotforge/gg/document"
	"github.com/plotforge/gg/table"
)

// aesByName maps resolved column names back to their aesthetics.
var aesByName = func() map[string]Aes {
	m := make(map[string]Aes, numAes)
	for a := Aes(0); a < numAes; a++ {
		m[a.String()] = a
	}
	return m
}()

// Render composes the plot into a document of the given pixel size.
// It does not mutate p, its data, or its configured scales: every
// render owns a private scale registry and panel set, so independent
// goroutines may render concurrently.
func Render(p *Plot, theme *Theme, width, height float64) (*document.Document, error) {
	if theme == nil {
		theme = DefaultTheme()
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	if p.Facet.Kind != FacetNone {
		ref := p.Data
		if ref == nil {
			ref = p.Layers[0].data(p.Data)
		}
		if err := p.Facet.validate(ref); err != nil {
			return nil, err
		}
	}

	// Per-layer data pipeline: resolve, statistic per group, second
	// resolution pass, position adjustment.
	tables := make([]*table.Table, len(p.Layers))
	for i, l := range p.Layers {
		t, err := layerTable(p, l)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		tables[i] = t
	}

	// Partition into panels.
	fl := buildFacetLayout(&p.Facet, len(p.Layers), tables)
	for i, t := range tables {
		if t != nil {
			fl.assign(&p.Facet, i, t)
		}
	}

	// Train scales across all panels per the free-scale policy.
	reg := newRegistry(p, fl)
	for _, pan := range fl.panels {
		for li, t := range pan.layers {
			if t == nil || p.Layers[li].Decoration {
				continue
			}
			reg.train(pan, t)
		}
	}
	reg.finalize()

	return compose(p, theme, width, height, fl, reg), nil
}

// layerTable runs one layer's data through resolution, statistics,
// and position adjustment.
func layerTable(p *Plot, l *Layer) (*table.Table, error) {
	data := l.data(p.Data)
	mapping := l.mapping(p.Mapping)

	t, err := resolve(data, mapping, stagePreStat)
	if err != nil {
		return nil, err
	}

	// Carry the facet variables through the statistic.
	facetVars := []string{}
	nb := table.NewBuilder(t)
	for _, v := range p.Facet.vars() {
		if t.Column(v) != nil {
			facetVars = append(facetVars, v)
			continue
		}
		if c := data.Column(v); c != nil {
			nb.Add(v, c)
			facetVars = append(facetVars, v)
		}
	}
	t = nb.Done()

	t, err = applyStat(l, t, facetVars)
	if err != nil {
		return nil, err
	}
	if t.Len() == 0 {
		// Every group was dropped; nothing to draw.
		return t, nil
	}

	// Second resolution pass binds statistic outputs.
	extra, err := resolve(t, mapping, stagePostStat)
	if err != nil {
		return nil, err
	}
	if len(extra.Columns()) > 0 {
		nb = table.NewBuilder(t)
		for _, c := range extra.Columns() {
			nb.Add(c, extra.Column(c))
		}
		t = nb.Done()
	}

	return applyPosition(l, t, facetVars)
}

// groupColumns returns the columns a statistic partitions by: the
// facet variables plus every discrete grouping aesthetic present.
func groupColumns(t *table.Table, facetVars []string) []string {
	cols := append([]string(nil), facetVars...)
	for _, a := range groupingAes {
		c := t.Column(a.String())
		if c == nil {
			continue
		}
		if isCardinal(c) || isTimeSlice(c) {
			continue
		}
		cols = append(cols, a.String())
	}
	return cols
}

// applyStat runs the layer's statistic per group and reattaches each
// group's key columns to its output. A group the statistic cannot
// handle is dropped with a warning; its siblings are unaffected.
func applyStat(l *Layer, t *table.Table, facetVars []string) (*table.Table, error) {
	stat := l.stat()
	groupCols := groupColumns(t, facetVars)

	var groups []table.Group
	if len(groupCols) == 0 {
		groups = []table.Group{{Table: t}}
	} else {
		groups = table.GroupBy(t, groupCols...)
	}

	var outs []*table.Table
	for _, g := range groups {
		out, err := stat.F(g.Table)
		if err != nil {
			Warning.Printf("dropping group %v: %v", g.Key, err)
			continue
		}
		if out == nil || out.Len() == 0 {
			continue
		}
		nb := table.NewBuilder(out)
		for ki, kc := range g.Key.Cols {
			if out.Column(kc) != nil {
				continue
			}
			nb.Add(kc, constColumn(g.Key.Vals[ki], out.Len()))
		}
		outs = append(outs, nb.Done())
	}
	if len(outs) == 0 {
		return new(table.Builder).Done(), nil
	}
	return table.Concat(outs...), nil
}

// constColumn builds a column of n copies of v, keeping v's type.
func constColumn(v interface{}, n int) table.Slice {
	rv := reflect.ValueOf(v)
	out := reflect.MakeSlice(reflect.SliceOf(rv.Type()), n, n)
	for i := 0; i < n; i++ {
		out.Index(i).Set(rv)
	}
	return out.Interface()
}

// applyPosition adjusts the layer within each facet partition, so
// stacks and dodges never span panels.
func applyPosition(l *Layer, t *table.Table, facetVars []string) (*table.Table, error) {
	if l.Position.Kind == PositionIdentity || t.Len() == 0 {
		return t, nil
	}

	// Dodge offsets by the combined discrete grouping key.
	pos := l.Position
	if pos.Kind == PositionDodge {
		if t.Column("group") == nil {
			if cols := groupColumns(t, nil); len(cols) > 0 {
				keys := make([]string, t.Len())
				for _, c := range cols {
					rv := reflect.ValueOf(t.Column(c))
					for i := range keys {
						keys[i] += fmt.Sprint(rv.Index(i).Interface()) + "\x00"
					}
				}
				t = table.NewBuilder(t).Add("group", keys).Done()
			}
		}
		// Fix each group's slot across the whole layer so dodged
		// bars line up between facet panels.
		if gc := t.Column("group"); gc != nil {
			pos.order = groupOrder(gc)
		}
	}

	present := []string{}
	for _, v := range facetVars {
		if t.Column(v) != nil {
			present = append(present, v)
		}
	}
	if len(present) == 0 {
		return pos.apply(t)
	}

	var outs []*table.Table
	for _, g := range table.GroupBy(t, present...) {
		out, err := pos.apply(g.Table)
		if err != nil {
			return nil, err
		}
		outs = append(outs, out)
	}
	return table.Concat(outs...), nil
}

// registry holds one render's scale instances, keyed by canonical
// aesthetic and free-scale group.
type registry struct {
	p      *Plot
	fl     *facetLayout
	scales map[scaleKey]*Scale
	sec    map[*Scale]*secondaryAxis
}

type scaleKey struct {
	aes   Aes
	group int
}

func newRegistry(p *Plot, fl *facetLayout) *registry {
	reg := &registry{p: p, fl: fl, scales: make(map[scaleKey]*Scale)}
	// The positional scales always exist, even when nothing maps
	// to them, so every panel has a frame and axes.
	for _, pan := range fl.panels {
		reg.scale(AesX, fl.scaleGroup(pan, AesX))
		reg.scale(AesY, fl.scaleGroup(pan, AesY))
	}
	return reg
}

func (reg *registry) scale(a Aes, group int) *Scale {
	k := scaleKey{a, group}
	if s := reg.scales[k]; s != nil {
		return s
	}
	var s *Scale
	if proto := reg.p.Scales[a]; proto != nil {
		s = proto.Clone()
	} else {
		s = NewScale(a)
	}
	reg.scales[k] = s
	return s
}

// forPanel returns the panel's scale instance for an aesthetic.
func (reg *registry) forPanel(pan *Panel, a Aes) *Scale {
	return reg.scale(a, reg.fl.scaleGroup(pan, a))
}

// panelScales builds the aesthetic → scale view a Mapper needs for
// one panel.
func (reg *registry) panelScales(pan *Panel) map[Aes]*Scale {
	out := make(map[Aes]*Scale)
	for k, s := range reg.scales {
		if k.group == -1 || k.group == reg.fl.scaleGroup(pan, k.aes) {
			out[k.aes] = s
		}
	}
	return out
}

func (reg *registry) train(pan *Panel, t *table.Table) {
	for _, name := range t.Columns() {
		a, ok := aesByName[name]
		if !ok {
			continue
		}
		// Labels and grouping keys are not scaled.
		if a == AesLabel || a == AesGroup {
			continue
		}
		canonical := a
		if a.Positional() {
			canonical = a.positionalScale()
		}
		s := reg.scale(canonical, reg.fl.scaleGroup(pan, canonical))
		s.Train(t.Column(name))
	}
}

func (reg *registry) finalize() {
	reg.sec = make(map[*Scale]*secondaryAxis)
	for _, s := range reg.scales {
		s.Finalize()
		if s.Secondary != nil {
			reg.sec[s] = s.Secondary.materialize(s)
		}
	}
}

// shared returns the cross-panel scale for an aesthetic, if any.
func (reg *registry) shared(a Aes) *Scale {
	return reg.scales[scaleKey{a, -1}]
}
