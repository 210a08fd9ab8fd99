// Copyright 2026 The plotforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"math"
	"testing"
	"time"
)

func TestContinuousScale(t *testing.T) {
	s := NewScale(AesX)
	s.Train([]float64{0, 4, 10, math.NaN()})
	s.Train([]float64{2, 6})
	s.Finalize()

	// The domain is the data extent; the mapped range is expanded
	// by 5% per side.
	if min, max := s.Domain(); math.Abs(min) > 1e-9 || math.Abs(max-10) > 1e-9 {
		t.Errorf("Domain() = %v, %v; want 0, 10", min, max)
	}
	lo, hi := s.Map(0), s.Map(10)
	if !(lo > 0 && lo < 0.1) || !(hi > 0.9 && hi < 1) {
		t.Errorf("extremes should map just inside (0,1): %v, %v", lo, hi)
	}
	if !(s.Map(5) > lo && s.Map(5) < hi) {
		t.Error("mapping is not monotonic")
	}
	if !math.IsNaN(s.Map(math.NaN())) {
		t.Error("NaN should map to NaN")
	}

	// Breaks are inside the unexpanded domain and labeled 1:1.
	bs, labels := s.BreakValues(), s.BreakLabels()
	if len(bs) == 0 || len(bs) != len(labels) {
		t.Fatalf("bad breaks %v / labels %v", bs, labels)
	}
	for _, b := range bs {
		if b < 0 || b > 10 {
			t.Errorf("break %v outside domain", b)
		}
	}
}

func TestTrainAfterFinalizePanics(t *testing.T) {
	s := NewScale(AesX)
	s.Train([]float64{1})
	s.Finalize()
	shouldPanic(t, "finalized", func() { s.Train([]float64{2}) })
}

func TestFinalizeIdempotent(t *testing.T) {
	s := NewScale(AesY)
	s.Train([]float64{1, 5})
	s.Finalize()
	b1 := s.BreakValues()
	s.Finalize()
	if !de(b1, s.BreakValues()) {
		t.Error("second Finalize changed the breaks")
	}
}

func TestEmptyScaleDefaults(t *testing.T) {
	s := NewScale(AesY)
	s.Finalize()
	if min, max := s.Domain(); math.Abs(min) > 1e-9 || math.Abs(max-1) > 1e-9 {
		t.Errorf("empty scale should default to [0,1]; got [%v,%v]", min, max)
	}
}

func TestDegenerateDomain(t *testing.T) {
	s := NewScale(AesX)
	s.Train([]float64{7, 7, 7})
	s.Finalize()
	m := s.Map(7)
	if !(m > 0.4 && m < 0.6) {
		t.Errorf("single value should land mid-panel; got %v", m)
	}
	// The unexpanded domain stays degenerate even though the mapped
	// range was padded by half a unit.
	if min, max := s.Domain(); min != 7 || max != 7 {
		t.Errorf("Domain() = %v, %v; want 7, 7", min, max)
	}
}

func TestDiscreteScale(t *testing.T) {
	s := NewScale(AesX)
	s.Train([]string{"b", "a", "b", "c"})
	s.Finalize()

	if !s.Discrete() {
		t.Fatal("string data should train a discrete scale")
	}
	if !de(s.DiscreteLevels(), []string{"b", "a", "c"}) {
		t.Fatalf("levels should keep first-seen order: %v", s.DiscreteLevels())
	}
	// Slot centers with half-slot expansion: (i+0.5)/n.
	for i, l := range s.DiscreteLevels() {
		want := (float64(i) + 0.5) / 3
		if math.Abs(s.MapLevel(l)-want) > 1e-9 {
			t.Errorf("MapLevel(%q) = %v, want %v", l, s.MapLevel(l), want)
		}
	}
	if !math.IsNaN(s.MapLevel("zzz")) {
		t.Error("unknown level should map to NaN")
	}
}

func TestDiscreteExplicitLevels(t *testing.T) {
	s := NewScale(AesColor)
	s.Kind = DomainDiscrete
	s.Levels = []string{"small", "medium", "large"}
	s.Train([]string{"large", "small", "huge"})
	s.Finalize()

	// Explicit order wins and out-of-domain levels are dropped.
	if !de(s.DiscreteLevels(), []string{"small", "medium", "large"}) {
		t.Errorf("bad levels: %v", s.DiscreteLevels())
	}
	if !math.IsNaN(s.MapLevel("huge")) {
		t.Error("dropped level should map to NaN")
	}
}

func TestDiscreteMissingSkipped(t *testing.T) {
	s := NewScale(AesColor)
	s.Train([]string{"a", "", "b"})
	s.Finalize()
	if !de(s.DiscreteLevels(), []string{"a", "b"}) {
		t.Errorf("empty string should not become a level: %v", s.DiscreteLevels())
	}
}

func TestScaleLimits(t *testing.T) {
	s := NewScale(AesY)
	s.Limits = &[2]float64{0, 100}
	s.Train([]float64{40, 60})
	s.Finalize()
	if min, max := s.Domain(); math.Abs(min) > 1e-9 || math.Abs(max-100) > 1e-9 {
		t.Errorf("limits should pin the domain; got [%v,%v]", min, max)
	}
}

func TestLogScaleBreaks(t *testing.T) {
	s := NewScale(AesX)
	s.Trans = TransLog10
	s.Train([]float64{1, 1000})
	s.Finalize()

	// Major breaks at integer powers, labeled in data space.
	if !de(s.BreakLabels(), []string{"1", "10", "100", "1000"}) {
		t.Errorf("bad labels: %v", s.BreakLabels())
	}
	if s.Map(1) >= s.Map(10) || s.Map(10) >= s.Map(100) {
		t.Error("log mapping is not monotonic")
	}
	// Equal ratios map to equal normalized distances.
	d1 := s.Map(10) - s.Map(1)
	d2 := s.Map(1000) - s.Map(100)
	if math.Abs(d1-d2) > 1e-9 {
		t.Errorf("decades should be evenly spaced: %v vs %v", d1, d2)
	}
}

func TestReverseScale(t *testing.T) {
	s := NewScale(AesY)
	s.Trans = TransReverse
	s.Train([]float64{0, 10})
	s.Finalize()
	if !(s.Map(0) > s.Map(10)) {
		t.Error("reverse scale should invert the mapping order")
	}
}

func TestDateTimeScale(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewScale(AesX)
	s.Train([]time.Time{t0, t0.AddDate(0, 6, 0)})
	s.Finalize()
	if s.Kind != DomainDateTime {
		t.Fatalf("time data should train a datetime scale; got %v", s.Kind)
	}
	if len(s.BreakLabels()) == 0 {
		t.Error("datetime scale should produce breaks")
	}
	if s.Map(timeToFloat(t0)) >= s.Map(timeToFloat(t0.AddDate(0, 3, 0))) {
		t.Error("datetime mapping is not monotonic")
	}
}

func TestBinnedScaleSnaps(t *testing.T) {
	s := NewScale(AesX)
	s.Kind = DomainBinned
	s.Breaks = []float64{0, 10, 20, 30}
	s.Train([]float64{0, 30})
	s.Finalize()
	if s.Map(3) != s.Map(7) {
		t.Error("values in one bin should map to the same position")
	}
	if s.Map(3) == s.Map(13) {
		t.Error("values in different bins should map apart")
	}
}

func TestSecondaryAxis(t *testing.T) {
	s := NewScale(AesY)
	s.Secondary = &SecondaryAxisSpec{
		Name:   "km",
		Breaks: []float64{0, 50, 100},
		Trans:  func(v float64) float64 { return v / 1000 },
	}
	s.Train([]float64{0, 100})
	s.Finalize()

	sec := s.Secondary.materialize(s)
	if sec.name != "km" {
		t.Errorf("bad name %q", sec.name)
	}
	if !de(sec.labels, []string{"0", "0.05", "0.1"}) {
		t.Errorf("bad labels: %v", sec.labels)
	}
	// Positions line up with the primary mapping of the breaks.
	for i, b := range []float64{0, 50, 100} {
		if math.Abs(sec.positions[i]-s.Map(b)) > 1e-9 {
			t.Errorf("position %d: %v != %v", i, sec.positions[i], s.Map(b))
		}
	}
}

func TestSecondaryAxisDerivedBreaks(t *testing.T) {
	s := NewScale(AesY)
	s.Secondary = &SecondaryAxisSpec{Trans: func(v float64) float64 { return v * 2 }}
	s.Train([]float64{0, 10})
	s.Finalize()

	sec := s.Secondary.materialize(s)
	if !de(sec.positions, s.BreakPositions()) {
		t.Error("derived secondary should reuse the primary break positions")
	}
	if len(sec.labels) != len(s.BreakLabels()) {
		t.Fatal("derived secondary should relabel every primary break")
	}
}

func TestMapBeforeFinalizePanics(t *testing.T) {
	s := NewScale(AesX)
	s.Train([]float64{1, 2})
	shouldPanic(t, "Finalize", func() { s.Map(1) })
}
