// Copyright 2026 The plotforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"math"
	"testing"
)

func TestStack(t *testing.T) {
	in := mkTable(
		"x", []float64{1, 1, 1, 2, 2},
		"y", []float64{1, 2, 3, 4, 6},
	)
	out, err := Position{Kind: PositionStack}.apply(in)
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{1, 3, 6, 4, 10}; !de(out.Column("y"), want) {
		t.Errorf("y = %v; want %v", out.Column("y"), want)
	}
	if want := []float64{0, 1, 3, 0, 4}; !de(out.Column("ymin"), want) {
		t.Errorf("ymin = %v; want %v", out.Column("ymin"), want)
	}
	if want := []float64{1, 3, 6, 4, 10}; !de(out.Column("ymax"), want) {
		t.Errorf("ymax = %v; want %v", out.Column("ymax"), want)
	}
}

func TestStackMissing(t *testing.T) {
	in := mkTable(
		"x", []float64{1, 1, 1},
		"y", []float64{1, math.NaN(), 2},
	)
	out, err := Position{Kind: PositionStack}.apply(in)
	if err != nil {
		t.Fatal(err)
	}
	ymax := out.Column("ymax").([]float64)
	if !math.IsNaN(ymax[1]) {
		t.Errorf("missing y should stay missing; got ymax[1] = %v", ymax[1])
	}
	// The missing row must not disturb the running total.
	if ymax[2] != 3 {
		t.Errorf("ymax[2] = %v; want 3", ymax[2])
	}
}

func TestFill(t *testing.T) {
	in := mkTable(
		"x", []string{"a", "a", "b", "b"},
		"y", []float64{1, 3, 2, 2},
	)
	out, err := Position{Kind: PositionFill}.apply(in)
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{0.25, 1, 0.5, 1}; !de(out.Column("ymax"), want) {
		t.Errorf("ymax = %v; want %v", out.Column("ymax"), want)
	}
	if want := []float64{0, 0.25, 0, 0.5}; !de(out.Column("ymin"), want) {
		t.Errorf("ymin = %v; want %v", out.Column("ymin"), want)
	}
}

func TestStackRequiresX(t *testing.T) {
	in := mkTable("y", []float64{1, 2})
	if _, err := (Position{Kind: PositionStack}).apply(in); err == nil {
		t.Fatal("want error for stack without an x column")
	}
}

func TestDodgeDiscrete(t *testing.T) {
	in := mkTable(
		"x", []string{"a", "a", "b", "b"},
		"y", []float64{1, 2, 3, 4},
		"group", []string{"u", "v", "u", "v"},
	)
	out, err := Position{Kind: PositionDodge}.apply(in)
	if err != nil {
		t.Fatal(err)
	}
	// Discrete x stays put; offsets go to the auxiliary columns in
	// slot units. Two groups at width 0.9 sit at ∓0.225.
	if !de(out.Column("x"), in.Column("x")) {
		t.Errorf("discrete x changed: %v", out.Column("x"))
	}
	if want := []float64{-0.225, 0.225, -0.225, 0.225}; !de(out.Column(colXAdjust), want) {
		t.Errorf("%s = %v; want %v", colXAdjust, out.Column(colXAdjust), want)
	}
	if want := []float64{0.45, 0.45, 0.45, 0.45}; !de(out.Column(colXWidth), want) {
		t.Errorf("%s = %v; want %v", colXWidth, out.Column(colXWidth), want)
	}
}

func TestDodgeContinuous(t *testing.T) {
	in := mkTable(
		"x", []float64{10, 10, 20, 20},
		"y", []float64{1, 2, 3, 4},
		"group", []string{"u", "v", "u", "v"},
	)
	out, err := Position{Kind: PositionDodge}.apply(in)
	if err != nil {
		t.Fatal(err)
	}
	// Resolution is 10, so offsets scale to data units.
	if want := []float64{10 - 2.25, 10 + 2.25, 20 - 2.25, 20 + 2.25}; !de(out.Column("x"), want) {
		t.Errorf("x = %v; want %v", out.Column("x"), want)
	}
	if want := []float64{4.5, 4.5, 4.5, 4.5}; !de(out.Column(colXWidth), want) {
		t.Errorf("%s = %v; want %v", colXWidth, out.Column(colXWidth), want)
	}
}

func TestDodgeNoGroups(t *testing.T) {
	in := mkTable("x", []float64{1, 2})
	out, err := Position{Kind: PositionDodge}.apply(in)
	if err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Error("dodge without a group column should be the identity")
	}

	one := mkTable(
		"x", []float64{1, 2},
		"group", []string{"u", "u"},
	)
	out, err = Position{Kind: PositionDodge}.apply(one)
	if err != nil {
		t.Fatal(err)
	}
	if out != one {
		t.Error("dodge with a single group should be the identity")
	}
}

func TestJitterDeterministic(t *testing.T) {
	in := mkTable(
		"x", []float64{1, 2, 3, 4},
		"y", []float64{1, 1, 1, 1},
	)
	a, err := Position{Kind: PositionJitter, Seed: 7}.apply(in)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Position{Kind: PositionJitter, Seed: 7}.apply(in)
	if err != nil {
		t.Fatal(err)
	}
	if !de(a.Column("x"), b.Column("x")) || !de(a.Column("y"), b.Column("y")) {
		t.Error("same seed should jitter identically")
	}
	c, err := Position{Kind: PositionJitter, Seed: 8}.apply(in)
	if err != nil {
		t.Fatal(err)
	}
	if de(a.Column("x"), c.Column("x")) {
		t.Error("different seeds should produce different jitter")
	}

	// Default amplitude is 40% of the resolution.
	xs := a.Column("x").([]float64)
	for i, x := range xs {
		if math.Abs(x-float64(i+1)) > 0.4 {
			t.Errorf("x[%d] = %v jittered more than 0.4 from %d", i, x, i+1)
		}
	}
}

func TestJitterDiscreteX(t *testing.T) {
	in := mkTable(
		"x", []string{"a", "b", "a", "b"},
		"y", []float64{1, 2, 3, 4},
	)
	out, err := Position{Kind: PositionJitter, Width: 0.2}.apply(in)
	if err != nil {
		t.Fatal(err)
	}
	if !de(out.Column("x"), in.Column("x")) {
		t.Errorf("discrete x changed: %v", out.Column("x"))
	}
	adj, ok := out.Column(colXAdjust).([]float64)
	if !ok {
		t.Fatalf("no %s column", colXAdjust)
	}
	for i, a := range adj {
		if math.Abs(a) > 0.2 {
			t.Errorf("adjust[%d] = %v exceeds width 0.2", i, a)
		}
	}
}

func TestNudge(t *testing.T) {
	in := mkTable(
		"x", []float64{1, 2},
		"y", []float64{10, 20},
	)
	out, err := Position{Kind: PositionNudge, X: 0.5, Y: -1}.apply(in)
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{1.5, 2.5}; !de(out.Column("x"), want) {
		t.Errorf("x = %v; want %v", out.Column("x"), want)
	}
	if want := []float64{9, 19}; !de(out.Column("y"), want) {
		t.Errorf("y = %v; want %v", out.Column("y"), want)
	}
}

func TestIdentityPosition(t *testing.T) {
	in := mkTable("x", []float64{1, 2})
	out, err := Position{}.apply(in)
	if err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Error("identity position should return its input unchanged")
	}
}

func TestResolution(t *testing.T) {
	if r := resolution([]float64{1, 3, 4, 10}); r != 1 {
		t.Errorf("resolution = %v; want 1", r)
	}
	if r := resolution([]float64{5, 5, 5}); r != 1 {
		t.Errorf("resolution of constant data = %v; want 1", r)
	}
	if r := resolution([]float64{math.NaN(), 2, 6}); r != 4 {
		t.Errorf("resolution = %v; want 4", r)
	}
}
