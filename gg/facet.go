// Copyright 2026 The plotforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/plotforge/gg/table"
)

// A FacetKind selects the panel layout strategy.
type FacetKind int

const (
	// FacetNone renders a single panel.
	FacetNone FacetKind = iota

	// FacetGrid lays panels out as the Cartesian product of row
	// and column variables.
	FacetGrid

	// FacetWrap lays the combinations of the facet variables out
	// in reading order, reflowed into a grid.
	FacetWrap
)

// A FreeMode declares which positional scales are trained per panel
// instead of shared across all panels. It must be decided before scale
// training begins, since it changes which values feed which scale
// instance.
type FreeMode int

const (
	// FreeNone shares both x and y scales across every panel.
	FreeNone FreeMode = iota

	// FreeX trains x scales independently: per panel column in a
	// grid, per panel in a wrap.
	FreeX

	// FreeY trains y scales independently: per panel row in a
	// grid, per panel in a wrap.
	FreeY

	// FreeBoth trains both scales per panel.
	FreeBoth
)

// A Facet partitions the data into panels by discrete variables. The
// zero value renders a single panel.
type Facet struct {
	Kind FacetKind

	// Rows and Cols name the grid variables for FacetGrid. Either
	// may be empty.
	Rows, Cols []string

	// Vars names the wrap variables for FacetWrap.
	Vars []string

	// NCol and NRow request a wrap shape. If both are zero the
	// shape is chosen automatically; otherwise one should be zero.
	NCol, NRow int

	// Free declares per-panel scale training.
	Free FreeMode

	// Labeler renders a facet value as a strip label. Nil means
	// fmt.Sprint.
	Labeler func(interface{}) string
}

// vars returns every variable the facet partitions by.
func (f *Facet) vars() []string {
	switch f.Kind {
	case FacetGrid:
		return append(append([]string(nil), f.Rows...), f.Cols...)
	case FacetWrap:
		return f.Vars
	}
	return nil
}

// validate fails fast if a facet variable is absent from the table.
func (f *Facet) validate(t *table.Table) error {
	for _, v := range f.vars() {
		if t.Column(v) == nil {
			return fmt.Errorf("facet variable %q is not a column of the data", v)
		}
	}
	if f.Kind == FacetWrap && len(f.Vars) == 0 {
		return fmt.Errorf("facet wrap needs at least one variable")
	}
	if f.Kind == FacetGrid && len(f.Rows) == 0 && len(f.Cols) == 0 {
		return fmt.Errorf("facet grid needs row or column variables")
	}
	return nil
}

// A Panel is one facet cell: a grid position, the facet values that
// select its rows, and (under free scales) its own scale instances.
type Panel struct {
	Row, Col int

	// Key holds the facet variable values of this panel, by
	// variable name.
	Key map[string]interface{}

	// RowLabel and ColLabel are the strip labels. For FacetWrap
	// only RowLabel is set (the combined label).
	RowLabel, ColLabel string

	// layers[i] holds layer i's rows belonging to this panel,
	// post-statistic and post-position.
	layers []*table.Table
}

// facetLayout is the materialized panel grid for one render.
type facetLayout struct {
	kind       FacetKind
	nrow, ncol int
	panels     []*Panel
	index      map[string]*Panel
	free       FreeMode
}

// panelKey builds the canonical lookup key for a row's facet values.
func panelKey(vals []interface{}) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, "\x00")
}

// sortedDistinct returns the distinct values of a column across
// tables, sorted numerically when numeric and lexically otherwise.
func sortedDistinct(tables []*table.Table, col string) []interface{} {
	seen := make(map[interface{}]bool)
	var vals []interface{}
	for _, t := range tables {
		c := t.Column(col)
		if c == nil {
			continue
		}
		rv := reflect.ValueOf(c)
		for i := 0; i < rv.Len(); i++ {
			v := rv.Index(i).Interface()
			if !seen[v] {
				seen[v] = true
				vals = append(vals, v)
			}
		}
	}
	sort.SliceStable(vals, func(i, j int) bool {
		a, b := reflect.ValueOf(vals[i]), reflect.ValueOf(vals[j])
		if table.CanOrder(a.Type()) && a.Type() == b.Type() {
			return valueLess(a, b)
		}
		return fmt.Sprint(vals[i]) < fmt.Sprint(vals[j])
	})
	return vals
}

func valueLess(a, b reflect.Value) bool {
	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.Int() < b.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return a.Uint() < b.Uint()
	case reflect.Float32, reflect.Float64:
		return a.Float() < b.Float()
	case reflect.String:
		return a.String() < b.String()
	}
	return fmt.Sprint(a.Interface()) < fmt.Sprint(b.Interface())
}

// buildFacetLayout computes the panel grid from the observed facet
// values across all layers' tables. Grid layouts get the full
// Cartesian product of row and column levels; wrap layouts get only
// the observed combinations.
func buildFacetLayout(f *Facet, nLayers int, tables []*table.Table) *facetLayout {
	labeler := f.Labeler
	if labeler == nil {
		labeler = func(v interface{}) string { return fmt.Sprint(v) }
	}

	fl := &facetLayout{kind: f.Kind, free: f.Free, index: make(map[string]*Panel)}
	newPanel := func(row, col int, key map[string]interface{}, rowLabel, colLabel string) *Panel {
		p := &Panel{
			Row: row, Col: col, Key: key,
			RowLabel: rowLabel, ColLabel: colLabel,
			layers: make([]*table.Table, nLayers),
		}
		fl.panels = append(fl.panels, p)
		return p
	}

	switch f.Kind {
	case FacetNone:
		fl.nrow, fl.ncol = 1, 1
		p := newPanel(0, 0, nil, "", "")
		fl.index[""] = p

	case FacetGrid:
		rowCombos := combos(tables, f.Rows)
		colCombos := combos(tables, f.Cols)
		fl.nrow, fl.ncol = len(rowCombos), len(colCombos)
		for ri, rc := range rowCombos {
			for ci, cc := range colCombos {
				key := make(map[string]interface{}, len(f.Rows)+len(f.Cols))
				var vals []interface{}
				for i, v := range f.Rows {
					key[v] = rc[i]
					vals = append(vals, rc[i])
				}
				for i, v := range f.Cols {
					key[v] = cc[i]
					vals = append(vals, cc[i])
				}
				p := newPanel(ri, ci, key, comboLabel(rc, labeler), comboLabel(cc, labeler))
				fl.index[panelKey(vals)] = p
			}
		}

	case FacetWrap:
		cs := combos(tables, f.Vars)
		n := len(cs)
		nrow, ncol := f.NRow, f.NCol
		if ncol == 0 {
			if nrow == 0 {
				nrow = int(math.Ceil(math.Sqrt(float64(n))))
			}
			ncol = int(math.Ceil(float64(n) / float64(nrow)))
		} else {
			nrow = int(math.Ceil(float64(n) / float64(ncol)))
		}
		fl.nrow, fl.ncol = nrow, ncol
		for i, c := range cs {
			key := make(map[string]interface{}, len(f.Vars))
			for j, v := range f.Vars {
				key[v] = c[j]
			}
			p := newPanel(i/ncol, i%ncol, key, comboLabel(c, labeler), "")
			fl.index[panelKey(c)] = p
		}
	}
	return fl
}

// combos returns the Cartesian product of the sorted distinct levels
// of cols, in row-major order. With no columns it returns one empty
// combination.
func combos(tables []*table.Table, cols []string) [][]interface{} {
	out := [][]interface{}{nil}
	for _, col := range cols {
		levels := sortedDistinct(tables, col)
		var next [][]interface{}
		for _, prefix := range out {
			for _, l := range levels {
				combo := append(append([]interface{}(nil), prefix...), l)
				next = append(next, combo)
			}
		}
		out = next
	}
	return out
}

func comboLabel(vals []interface{}, labeler func(interface{}) string) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = labeler(v)
	}
	return strings.Join(parts, ", ")
}

// assign splits one layer's table into the layout's panels. Every row
// lands in exactly one panel; rows whose facet values match no panel
// (possible only when a layer's private data has unseen levels) are
// dropped with a warning.
func (fl *facetLayout) assign(f *Facet, layerIdx int, t *table.Table) {
	vars := f.vars()
	if len(vars) == 0 || f.Kind == FacetNone {
		p := fl.panels[0]
		p.layers[layerIdx] = appendTable(p.layers[layerIdx], t)
		return
	}

	colVals := make([]reflect.Value, len(vars))
	for i, v := range vars {
		c := t.Column(v)
		if c == nil {
			// A decoration layer with private data missing the
			// facet variable repeats in every panel.
			for _, p := range fl.panels {
				p.layers[layerIdx] = appendTable(p.layers[layerIdx], t)
			}
			return
		}
		colVals[i] = reflect.ValueOf(c)
	}

	rowsByPanel := make(map[*Panel][]int)
	dropped := 0
	for r := 0; r < t.Len(); r++ {
		vals := make([]interface{}, len(vars))
		for i := range vars {
			vals[i] = colVals[i].Index(r).Interface()
		}
		p := fl.index[panelKey(vals)]
		if p == nil {
			dropped++
			continue
		}
		rowsByPanel[p] = append(rowsByPanel[p], r)
	}
	if dropped > 0 {
		Warning.Printf("facet: dropped %d rows with unmatched facet values", dropped)
	}
	for p, rows := range rowsByPanel {
		p.layers[layerIdx] = appendTable(p.layers[layerIdx], t.Rows(rows))
	}
}

func appendTable(dst, src *table.Table) *table.Table {
	if dst == nil || dst.Len() == 0 {
		return src
	}
	return table.Concat(dst, src)
}

// scaleGroup returns the scale-instance key for a panel under the
// layout's free mode. Shared scales use one key (-1). In a grid
// layout a free x scale is shared down a panel column and a free y
// scale across a panel row; a wrap layout frees per panel.
func (fl *facetLayout) scaleGroup(p *Panel, aes Aes) int {
	freeX := fl.free == FreeX || fl.free == FreeBoth
	freeY := fl.free == FreeY || fl.free == FreeBoth
	switch {
	case aes == AesX && freeX:
		if fl.kind == FacetGrid {
			return p.Col
		}
		return p.Row*fl.ncol + p.Col
	case aes == AesY && freeY:
		if fl.kind == FacetGrid {
			return p.Row
		}
		return p.Row*fl.ncol + p.Col
	}
	return -1
}
