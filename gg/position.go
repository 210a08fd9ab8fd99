// Copyright 2026 The plotforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"fmt"
	"math"
	"math/rand"
	"reflect"
	"sort"

	"github.com/plotforge/gg/table"
)

// A PositionKind selects how overlapping geometry within one layer is
// rearranged after the statistic runs and before scales train.
type PositionKind int

const (
	// PositionIdentity leaves positions alone.
	PositionIdentity PositionKind = iota

	// PositionStack stacks y values of rows sharing an x.
	PositionStack

	// PositionFill stacks and then normalizes each stack to 1.
	PositionFill

	// PositionDodge places grouped rows side by side within an x
	// slot.
	PositionDodge

	// PositionJitter adds deterministic noise to positions.
	PositionJitter

	// PositionNudge shifts positions by a fixed offset.
	PositionNudge
)

func (k PositionKind) String() string {
	switch k {
	case PositionIdentity:
		return "identity"
	case PositionStack:
		return "stack"
	case PositionFill:
		return "fill"
	case PositionDodge:
		return "dodge"
	case PositionJitter:
		return "jitter"
	case PositionNudge:
		return "nudge"
	}
	return fmt.Sprintf("PositionKind(%d)", int(k))
}

// A Position is a position adjustment with its parameters. The zero
// value is the identity adjustment.
type Position struct {
	Kind PositionKind

	// Width and Height control dodge spread and jitter amplitude,
	// in data units for continuous positions and slot units for
	// discrete ones. Zero picks a default (the full dodge slot;
	// 40% of the position resolution for jitter).
	Width, Height float64

	// X and Y are the nudge offsets.
	X, Y float64

	// Seed perturbs the jitter stream. Jitter is deterministic for
	// a fixed Seed so repeated renders are identical.
	Seed int64

	// order fixes the dodge slot of each group label. The
	// orchestrator computes it across the whole layer so a group
	// keeps its slot in every facet panel, including panels where
	// some groups are absent.
	order map[string]int
}

// Adjusted positions on a discrete axis cannot move the level itself,
// so adjusters write slot-unit offsets to these auxiliary columns and
// the coordinate mapping stage applies them after scale mapping.
const (
	colXAdjust = "..xadjust.."
	colXWidth  = "..xwidth.."
)

// apply rearranges the resolved, post-statistic rows of one layer.
// t's positional columns are in data units; "group" (if present) holds
// the layer's discrete grouping label.
func (p Position) apply(t *table.Table) (*table.Table, error) {
	if t.Len() == 0 || p.Kind == PositionIdentity {
		return t, nil
	}
	switch p.Kind {
	case PositionStack, PositionFill:
		return p.stack(t)
	case PositionDodge:
		return p.dodge(t)
	case PositionJitter:
		return p.jitter(t)
	case PositionNudge:
		return p.nudge(t)
	}
	panic(fmt.Sprintf("unknown position kind %d", p.Kind))
}

// xKeys returns a string key per row identifying the row's x slot.
func xKeys(t *table.Table) ([]string, error) {
	xc := t.Column("x")
	if xc == nil {
		return nil, fmt.Errorf("position adjustment requires an x aesthetic")
	}
	rv := reflect.ValueOf(xc)
	keys := make([]string, rv.Len())
	for i := range keys {
		keys[i] = fmt.Sprint(rv.Index(i).Interface())
	}
	return keys, nil
}

func (p Position) stack(t *table.Table) (*table.Table, error) {
	keys, err := xKeys(t)
	if err != nil {
		return nil, err
	}
	var ys []float64
	if err := toFloats(&ys, t.MustColumn("y")); err != nil {
		return nil, fmt.Errorf("stack position requires numeric y: %w", err)
	}

	// Running totals per x slot, in row order.
	cum := make(map[string]float64)
	ymin := make([]float64, len(ys))
	ymax := make([]float64, len(ys))
	yout := make([]float64, len(ys))
	for i, y := range ys {
		if !isFinite(y) {
			ymin[i], ymax[i], yout[i] = math.NaN(), math.NaN(), math.NaN()
			continue
		}
		ymin[i] = cum[keys[i]]
		cum[keys[i]] += y
		ymax[i] = cum[keys[i]]
		yout[i] = cum[keys[i]]
	}

	if p.Kind == PositionFill {
		for i := range ys {
			total := cum[keys[i]]
			if total != 0 {
				ymin[i] /= total
				ymax[i] /= total
				yout[i] /= total
			}
		}
	}

	return table.NewBuilder(t).
		Add("y", yout).
		Add("ymin", ymin).
		Add("ymax", ymax).
		Done(), nil
}

func (p Position) dodge(t *table.Table) (*table.Table, error) {
	gc := t.Column("group")
	if gc == nil {
		// Nothing to dodge by.
		return t, nil
	}
	if t.Column("x") == nil {
		return nil, fmt.Errorf("position adjustment requires an x aesthetic")
	}

	// Stable group order: first seen across the layer.
	rv := reflect.ValueOf(gc)
	order := p.order
	if order == nil {
		order = groupOrder(gc)
	}
	n := len(order)
	if n <= 1 {
		return t, nil
	}

	width := p.Width
	if width == 0 {
		width = 0.9
	}

	adj := make([]float64, t.Len())
	w := make([]float64, t.Len())
	for i := range adj {
		gi := order[fmt.Sprint(rv.Index(i).Interface())]
		adj[i] = width * ((float64(gi)+0.5)/float64(n) - 0.5)
		w[i] = width / float64(n)
	}

	nb := table.NewBuilder(t)
	if xs, ok := numericColumn(t, "x"); ok {
		// Continuous x: shift the data values directly so scale
		// training sees the dodged extent.
		res := resolution(xs)
		out := make([]float64, len(xs))
		for i, x := range xs {
			out[i] = x + adj[i]*res
		}
		wd := make([]float64, len(w))
		for i := range w {
			wd[i] = w[i] * res
		}
		nb.Add("x", out).Add(colXWidth, wd)
	} else {
		// Discrete x: record slot-unit offsets for the mapping
		// stage.
		nb.Add(colXAdjust, adj).Add(colXWidth, w)
	}
	return nb.Done(), nil
}

// groupOrder assigns each distinct group label its first-seen index.
func groupOrder(gc table.Slice) map[string]int {
	rv := reflect.ValueOf(gc)
	order := make(map[string]int)
	for i := 0; i < rv.Len(); i++ {
		l := fmt.Sprint(rv.Index(i).Interface())
		if _, ok := order[l]; !ok {
			order[l] = len(order)
		}
	}
	return order
}

func (p Position) jitter(t *table.Table) (*table.Table, error) {
	rng := rand.New(rand.NewSource(p.Seed + 1))
	nb := table.NewBuilder(t)

	jitterCol := func(col string, amount float64, adjCol string) {
		if xs, ok := numericColumn(t, col); ok {
			res := resolution(xs)
			a := amount
			if a == 0 {
				a = 0.4 * res
			}
			out := make([]float64, len(xs))
			for i, x := range xs {
				out[i] = x + rng.Float64()*2*a - a
			}
			nb.Add(col, out)
		} else if t.Column(col) != nil && adjCol != "" {
			a := amount
			if a == 0 {
				a = 0.4
			}
			out := make([]float64, t.Len())
			for i := range out {
				out[i] = rng.Float64()*2*a - a
			}
			nb.Add(adjCol, out)
		}
	}

	jitterCol("x", p.Width, colXAdjust)
	jitterCol("y", p.Height, "")
	return nb.Done(), nil
}

func (p Position) nudge(t *table.Table) (*table.Table, error) {
	nb := table.NewBuilder(t)
	if xs, ok := numericColumn(t, "x"); ok && p.X != 0 {
		out := make([]float64, len(xs))
		for i, x := range xs {
			out[i] = x + p.X
		}
		nb.Add("x", out)
	}
	if ys, ok := numericColumn(t, "y"); ok && p.Y != 0 {
		out := make([]float64, len(ys))
		for i, y := range ys {
			out[i] = y + p.Y
		}
		nb.Add("y", out)
	}
	return nb.Done(), nil
}

// numericColumn returns the named column as []float64 if it exists and
// is numeric.
func numericColumn(t *table.Table, name string) ([]float64, bool) {
	c := t.Column(name)
	if c == nil || !(isCardinal(c) || isTimeSlice(c)) {
		return nil, false
	}
	var xs []float64
	if err := toFloats(&xs, c); err != nil {
		return nil, false
	}
	return xs, true
}

// resolution returns the smallest positive spacing between distinct
// finite values of xs, or 1 if there is none.
func resolution(xs []float64) float64 {
	u := make([]float64, 0, len(xs))
	for _, x := range xs {
		if isFinite(x) {
			u = append(u, x)
		}
	}
	sort.Float64s(u)
	res := math.Inf(1)
	for i := 1; i < len(u); i++ {
		if d := u[i] - u[i-1]; d > 0 && d < res {
			res = d
		}
	}
	if math.IsInf(res, 1) {
		return 1
	}
	return res
}
