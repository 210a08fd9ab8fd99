// Copyright 2026 The plotforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"testing"

	"github.com/plotforge/gg/table"
)

func TestFacetGridLayout(t *testing.T) {
	// The grid is the Cartesian product of the observed row and
	// column levels, even for combinations with no rows.
	data := mkTable(
		"r", []string{"a", "a", "b"},
		"c", []int{1, 2, 1},
	)
	f := &Facet{Kind: FacetGrid, Rows: []string{"r"}, Cols: []string{"c"}}
	fl := buildFacetLayout(f, 1, []*table.Table{data})
	if fl.nrow != 2 || fl.ncol != 2 {
		t.Fatalf("grid is %dx%d; want 2x2", fl.nrow, fl.ncol)
	}
	if len(fl.panels) != 4 {
		t.Fatalf("got %d panels; want 4", len(fl.panels))
	}

	fl.assign(f, 0, data)
	counts := map[[2]int]int{}
	total := 0
	for _, p := range fl.panels {
		n := 0
		if p.layers[0] != nil {
			n = p.layers[0].Len()
		}
		counts[[2]int{p.Row, p.Col}] = n
		total += n
	}
	want := map[[2]int]int{{0, 0}: 1, {0, 1}: 1, {1, 0}: 1, {1, 1}: 0}
	if !de(counts, want) {
		t.Errorf("panel row counts = %v; want %v", counts, want)
	}
	if total != data.Len() {
		t.Errorf("assigned %d rows; want all %d", total, data.Len())
	}
}

func TestFacetGridLabels(t *testing.T) {
	data := mkTable("r", []string{"b", "a"}, "c", []int{2, 1})
	f := &Facet{Kind: FacetGrid, Rows: []string{"r"}, Cols: []string{"c"}}
	fl := buildFacetLayout(f, 1, []*table.Table{data})
	// Levels sort, so panel (0,0) is ("a", 1).
	p := fl.panels[0]
	if p.RowLabel != "a" || p.ColLabel != "1" {
		t.Errorf("panel (0,0) labels = %q, %q; want \"a\", \"1\"", p.RowLabel, p.ColLabel)
	}
}

func TestFacetWrapLayout(t *testing.T) {
	data := mkTable("g", []string{"e", "a", "c", "b", "d"})
	f := &Facet{Kind: FacetWrap, Vars: []string{"g"}}
	fl := buildFacetLayout(f, 1, []*table.Table{data})
	// 5 panels reflow to ceil(sqrt(5)) = 3 rows, 2 columns.
	if fl.nrow != 3 || fl.ncol != 2 {
		t.Fatalf("wrap is %dx%d; want 3x2", fl.nrow, fl.ncol)
	}
	// Reading order over the sorted levels.
	wantPos := [][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}, {2, 0}}
	wantLabel := []string{"a", "b", "c", "d", "e"}
	for i, p := range fl.panels {
		if p.Row != wantPos[i][0] || p.Col != wantPos[i][1] {
			t.Errorf("panel %d at (%d,%d); want (%d,%d)",
				i, p.Row, p.Col, wantPos[i][0], wantPos[i][1])
		}
		if p.RowLabel != wantLabel[i] {
			t.Errorf("panel %d label = %q; want %q", i, p.RowLabel, wantLabel[i])
		}
	}
}

func TestFacetWrapNCol(t *testing.T) {
	data := mkTable("g", []int{1, 2, 3, 4, 5})
	fl := buildFacetLayout(&Facet{Kind: FacetWrap, Vars: []string{"g"}, NCol: 4},
		1, []*table.Table{data})
	if fl.nrow != 2 || fl.ncol != 4 {
		t.Errorf("wrap is %dx%d; want 2x4", fl.nrow, fl.ncol)
	}
}

func TestFacetNumericOrder(t *testing.T) {
	// Numeric facet values sort numerically, not as strings.
	data := mkTable("g", []int{10, 2, 1})
	fl := buildFacetLayout(&Facet{Kind: FacetWrap, Vars: []string{"g"}},
		1, []*table.Table{data})
	var labels []string
	for _, p := range fl.panels {
		labels = append(labels, p.RowLabel)
	}
	if want := []string{"1", "2", "10"}; !de(labels, want) {
		t.Errorf("panel order %v; want %v", labels, want)
	}
}

func TestFacetValidate(t *testing.T) {
	data := mkTable("g", []string{"a"})
	f := &Facet{Kind: FacetWrap, Vars: []string{"nope"}}
	if err := f.validate(data); err == nil {
		t.Error("want error for unknown facet variable")
	}
	if err := (&Facet{Kind: FacetWrap}).validate(data); err == nil {
		t.Error("want error for wrap with no variables")
	}
	if err := (&Facet{Kind: FacetGrid}).validate(data); err == nil {
		t.Error("want error for grid with no variables")
	}
	if err := (&Facet{Kind: FacetWrap, Vars: []string{"g"}}).validate(data); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFacetAssignMissingVar(t *testing.T) {
	// A layer whose private data lacks the facet variable repeats in
	// every panel.
	data := mkTable("g", []string{"a", "b"}, "x", []float64{1, 2})
	ref := mkTable("x", []float64{0})
	f := &Facet{Kind: FacetWrap, Vars: []string{"g"}}
	fl := buildFacetLayout(f, 2, []*table.Table{data})
	fl.assign(f, 0, data)
	fl.assign(f, 1, ref)
	for _, p := range fl.panels {
		if p.layers[0] == nil || p.layers[0].Len() != 1 {
			t.Errorf("panel (%d,%d) layer 0 missing its row", p.Row, p.Col)
		}
		if p.layers[1] == nil || p.layers[1].Len() != 1 {
			t.Errorf("panel (%d,%d) layer 1 should repeat", p.Row, p.Col)
		}
	}
}

func TestScaleGroups(t *testing.T) {
	data := mkTable("r", []string{"a", "b"}, "c", []string{"u", "v"})
	grid := &Facet{Kind: FacetGrid, Rows: []string{"r"}, Cols: []string{"c"}, Free: FreeX}
	fl := buildFacetLayout(grid, 1, []*table.Table{data})

	byPos := func(fl *facetLayout, row, col int) *Panel {
		for _, p := range fl.panels {
			if p.Row == row && p.Col == col {
				return p
			}
		}
		t.Fatalf("no panel at (%d,%d)", row, col)
		return nil
	}

	// Free x in a grid is shared down each panel column.
	if g := fl.scaleGroup(byPos(fl, 0, 0), AesX); g != fl.scaleGroup(byPos(fl, 1, 0), AesX) {
		t.Error("free x should be shared within a grid column")
	}
	if fl.scaleGroup(byPos(fl, 0, 0), AesX) == fl.scaleGroup(byPos(fl, 0, 1), AesX) {
		t.Error("free x should differ across grid columns")
	}
	// y is not free here.
	if g := fl.scaleGroup(byPos(fl, 0, 0), AesY); g != -1 {
		t.Errorf("shared y group = %d; want -1", g)
	}
	// Non-positional aesthetics are always shared.
	if g := fl.scaleGroup(byPos(fl, 0, 0), AesColor); g != -1 {
		t.Errorf("color group = %d; want -1", g)
	}

	wrap := &Facet{Kind: FacetWrap, Vars: []string{"r"}, Free: FreeBoth}
	wl := buildFacetLayout(wrap, 1, []*table.Table{data})
	seen := map[int]bool{}
	for _, p := range wl.panels {
		g := wl.scaleGroup(p, AesX)
		if seen[g] {
			t.Errorf("wrap free x group %d reused", g)
		}
		seen[g] = true
		if wl.scaleGroup(p, AesY) != g {
			t.Error("free x and y of one wrap panel should share a group index")
		}
	}
}
