// Copyright 2026 The plotforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"

	mscale "github.com/aclements/go-moremath/scale"

	"github.com/plotforge/gg/table"
)

// A DomainKind classifies how a scale treats its domain.
type DomainKind int

const (
	// DomainAuto picks Continuous, Discrete, or DateTime from the
	// first trained column's type.
	DomainAuto DomainKind = iota

	// DomainContinuous covers an interval of real values.
	DomainContinuous

	// DomainDiscrete covers an ordered set of distinct levels.
	DomainDiscrete

	// DomainBinned covers an interval but maps values to the
	// centers of fixed break intervals.
	DomainBinned

	// DomainDateTime covers an interval of time instants.
	DomainDateTime
)

func (k DomainKind) String() string {
	switch k {
	case DomainAuto:
		return "auto"
	case DomainContinuous:
		return "continuous"
	case DomainDiscrete:
		return "discrete"
	case DomainBinned:
		return "binned"
	case DomainDateTime:
		return "datetime"
	}
	return fmt.Sprintf("DomainKind(%d)", int(k))
}

// An Expansion pads a scale's domain so geometry does not sit on the
// panel edge. For continuous domains the padding is Mult times the
// domain span plus Add, applied to each side. For discrete domains the
// default padding is half a slot; Add extends it in slot units.
type Expansion struct {
	Mult, Add float64
	Set       bool
}

// defaultContinuousExpand matches the conventional 5% per-side pad.
var defaultContinuousExpand = Expansion{Mult: 0.05, Set: true}

// A Scale maps one aesthetic channel's data values to normalized [0,1]
// positions (continuous) or level slots (discrete). A scale must be
// trained on every contributing layer's post-statistic values, then
// finalized, before Map is meaningful.
//
// The zero value of every configuration field means "default". Scales
// are single-render objects: Render clones the plot's scale specs
// before training so a Plot may be rendered repeatedly.
type Scale struct {
	Aes  Aes
	Kind DomainKind

	// Trans transforms data values before training, so a log scale
	// trains on already-logged values.
	Trans Trans

	// Limits overrides the trained continuous domain, in data
	// (untransformed) units.
	Limits *[2]float64

	// Levels overrides the trained discrete domain order.
	Levels []string

	// Expand overrides the default domain expansion.
	Expand Expansion

	// Breaks and Labels override the computed breaks (in data
	// units) and their labels. If Labels is set its length must
	// match Breaks.
	Breaks []float64
	Labels []string

	// Formatter formats break values as labels. Nil means %.6g, or
	// a date layout for DomainDateTime.
	Formatter func(float64) string

	// Name is the axis or legend title. Empty means the mapped
	// column's name is used.
	Name string

	// Secondary derives a secondary axis from this scale after it
	// is finalized.
	Secondary *SecondaryAxisSpec

	// NoGuide suppresses the legend or axis guide for this scale.
	NoGuide bool

	// Trained state, in transformed space.
	min, max   float64
	trained    bool
	levels     []string
	levelIndex map[string]int

	// Finalized state.
	finalized    bool
	fmin, fmax   float64 // expanded domain, transformed space
	dmin, dmax   float64 // unexpanded domain, transformed space
	breaks       []float64
	breakLabels  []string
	minorBreaks  []float64
	defaultedDom bool
}

// NewScale returns a default scale for the given aesthetic.
func NewScale(aes Aes) *Scale {
	return &Scale{Aes: aes, min: math.NaN(), max: math.NaN()}
}

// Clone returns an untrained copy of s's configuration.
func (s *Scale) Clone() *Scale {
	ns := &Scale{
		Aes:       s.Aes,
		Kind:      s.Kind,
		Trans:     s.Trans,
		Limits:    s.Limits,
		Levels:    s.Levels,
		Expand:    s.Expand,
		Breaks:    s.Breaks,
		Labels:    s.Labels,
		Formatter: s.Formatter,
		Name:      s.Name,
		Secondary: s.Secondary,
		NoGuide:   s.NoGuide,
		min:       math.NaN(),
		max:       math.NaN(),
	}
	return ns
}

// Discrete reports whether s has a discrete domain.
func (s *Scale) Discrete() bool {
	return s.Kind == DomainDiscrete
}

// Train absorbs one column of post-statistic values into the scale's
// running domain. Non-finite values are skipped. Training after
// Finalize panics: the registry must observe every contributor first.
func (s *Scale) Train(values table.Slice) {
	if s.finalized {
		panic("cannot train a finalized scale")
	}
	if values == nil {
		return
	}
	if s.Kind == DomainAuto {
		s.Kind = detectKind(values)
	}

	if s.Kind == DomainDiscrete {
		s.trainDiscrete(values)
		return
	}

	var xs []float64
	if err := toFloats(&xs, values); err != nil {
		// A non-numeric column under a continuous scale is a
		// configuration problem, but one layer must not poison
		// its siblings; treat it as all-missing.
		Warning.Printf("cannot train %v scale: %v", s.Aes, err)
		return
	}
	for _, x := range xs {
		if s.Kind != DomainDateTime {
			x = s.Trans.Forward(x)
		}
		if !isFinite(x) {
			continue
		}
		if !(x >= s.min) { // also catches NaN min
			s.min = x
		}
		if !(x <= s.max) {
			s.max = x
		}
		s.trained = true
	}
}

func (s *Scale) trainDiscrete(values table.Slice) {
	if s.levelIndex == nil {
		s.levelIndex = make(map[string]int)
		// Explicit order wins over first-seen order.
		for _, l := range s.Levels {
			s.levelIndex[l] = len(s.levels)
			s.levels = append(s.levels, l)
		}
	}
	rv := reflect.ValueOf(values)
	for i := 0; i < rv.Len(); i++ {
		l := fmt.Sprint(rv.Index(i).Interface())
		if l == "" {
			continue // missing value
		}
		if _, ok := s.levelIndex[l]; !ok {
			if len(s.Levels) > 0 {
				// Out-of-domain level under an explicit
				// order: drop, as with limits.
				continue
			}
			s.levelIndex[l] = len(s.levels)
			s.levels = append(s.levels, l)
		}
	}
	s.trained = true
}

func detectKind(values table.Slice) DomainKind {
	if isTimeSlice(values) {
		return DomainDateTime
	}
	if isCardinal(values) {
		return DomainContinuous
	}
	return DomainDiscrete
}

// Finalize locks the domain and computes breaks and labels. It is safe
// to call more than once; later calls are no-ops.
func (s *Scale) Finalize() {
	if s.finalized {
		return
	}
	s.finalized = true
	if s.Kind == DomainAuto {
		s.Kind = DomainContinuous
	}

	if s.Kind == DomainDiscrete {
		s.finalizeDiscrete()
		return
	}

	min, max := s.min, s.max
	if s.Limits != nil {
		lo, hi := s.Limits[0], s.Limits[1]
		if s.Kind != DomainDateTime {
			lo, hi = s.Trans.Forward(lo), s.Trans.Forward(hi)
		}
		if lo > hi {
			lo, hi = hi, lo
		}
		min, max = lo, hi
	}
	if !isFinite(min) || !isFinite(max) {
		// No finite observations and no explicit limits. Keep a
		// default domain so axes still render.
		min, max = 0, 1
		s.defaultedDom = true
		Warning.Printf("%v scale has no data; using default domain [0,1]", s.Aes)
	}

	// Expand.
	exp := s.Expand
	if !exp.Set {
		exp = defaultContinuousExpand
	}
	span := max - min
	if span == 0 {
		// Degenerate single-value domain: pad by half a unit so
		// the value lands mid-panel.
		span = 1
	}
	pad := span*exp.Mult + exp.Add
	s.dmin, s.dmax = min, max
	s.fmin, s.fmax = min-pad, max+pad

	s.computeBreaks(min, max)
}

func (s *Scale) finalizeDiscrete() {
	if s.levelIndex == nil && len(s.Levels) > 0 {
		// Explicit levels but no training data.
		s.levelIndex = make(map[string]int)
		for _, l := range s.Levels {
			s.levelIndex[l] = len(s.levels)
			s.levels = append(s.levels, l)
		}
	}
	if len(s.levels) == 0 {
		Warning.Printf("%v scale has no levels; axis will be empty", s.Aes)
		s.defaultedDom = true
	}
	add := 0.5
	if s.Expand.Set {
		add += s.Expand.Add
	}
	// Slot i (0-based) sits at position i+1 on [1, n]; the domain
	// is padded by half a slot on each side.
	s.fmin, s.fmax = 1-add, float64(len(s.levels))+add
	s.breaks = make([]float64, len(s.levels))
	for i := range s.levels {
		s.breaks[i] = float64(i + 1)
	}
	s.breakLabels = append([]string(nil), s.levels...)
	if len(s.Labels) == len(s.levels) && len(s.Labels) > 0 {
		s.breakLabels = append([]string(nil), s.Labels...)
	}
}

// computeBreaks fills s.breaks (transformed space) and s.breakLabels
// for a continuous-like domain [min, max].
func (s *Scale) computeBreaks(min, max float64) {
	switch {
	case len(s.Breaks) > 0:
		for _, b := range s.Breaks {
			tb := b
			if s.Kind != DomainDateTime {
				tb = s.Trans.Forward(b)
			}
			if !isFinite(tb) {
				continue
			}
			s.breaks = append(s.breaks, tb)
			s.breakLabels = append(s.breakLabels, s.formatValue(b))
		}
		if len(s.Labels) == len(s.breaks) && len(s.Labels) > 0 {
			s.breakLabels = append([]string(nil), s.Labels...)
		}

	case s.Trans.logBase() != 0:
		base := s.Trans.logBase()
		lt := LogBreaks(base, s.Trans.Inverse(min), s.Trans.Inverse(max))
		for _, b := range lt.Major {
			s.breaks = append(s.breaks, s.Trans.Forward(b))
			s.breakLabels = append(s.breakLabels, s.formatValue(b))
		}
		for _, b := range append(lt.Mid, lt.Minor...) {
			s.minorBreaks = append(s.minorBreaks, s.Trans.Forward(b))
		}

	case s.Kind == DomainDateTime:
		bs, labels := dateBreaks(min, max)
		s.breaks, s.breakLabels = bs, labels
		if s.Formatter != nil {
			for i, b := range bs {
				s.breakLabels[i] = s.Formatter(b)
			}
		}

	case min == max:
		s.breaks = []float64{min}
		s.breakLabels = []string{s.formatValue(s.Trans.Inverse(min))}

	default:
		ls := mscale.Linear{Min: min, Max: max}
		major, minor := ls.Ticks(mscale.TickOptions{Max: 6})
		for _, b := range major {
			s.breaks = append(s.breaks, b)
			s.breakLabels = append(s.breakLabels, s.formatValue(s.Trans.Inverse(b)))
		}
		s.minorBreaks = minor
	}
}

func (s *Scale) formatValue(v float64) string {
	if s.Formatter != nil {
		return s.Formatter(v)
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// Map projects a data value into the expanded [0,1] range. It panics
// if the scale is not finalized. Non-finite inputs map to NaN.
func (s *Scale) Map(x float64) float64 {
	s.mustFinal()
	if s.Kind == DomainDiscrete {
		panic(fmt.Sprintf("Map on discrete %v scale; use MapLevel", s.Aes))
	}
	if s.Kind != DomainDateTime {
		x = s.Trans.Forward(x)
	}
	if !isFinite(x) {
		return math.NaN()
	}
	if s.Kind == DomainBinned {
		x = s.snapToBin(x)
	}
	return (x - s.fmin) / (s.fmax - s.fmin)
}

// snapToBin moves x to the center of the break interval containing it.
func (s *Scale) snapToBin(x float64) float64 {
	if len(s.breaks) < 2 {
		return x
	}
	for i := 0; i < len(s.breaks)-1; i++ {
		if x <= s.breaks[i+1] || i == len(s.breaks)-2 {
			return (s.breaks[i] + s.breaks[i+1]) / 2
		}
	}
	return x
}

// MapLevel projects a discrete level into the expanded [0,1] range.
// Unknown levels map to NaN.
func (s *Scale) MapLevel(level string) float64 {
	s.mustFinal()
	i, ok := s.levelIndex[level]
	if !ok {
		return math.NaN()
	}
	return (float64(i+1) - s.fmin) / (s.fmax - s.fmin)
}

// MapAll maps a resolved column through the scale, yielding one
// normalized position per row.
func (s *Scale) MapAll(values table.Slice) []float64 {
	s.mustFinal()
	if s.Kind == DomainDiscrete {
		rv := reflect.ValueOf(values)
		out := make([]float64, rv.Len())
		for i := range out {
			out[i] = s.MapLevel(fmt.Sprint(rv.Index(i).Interface()))
		}
		return out
	}
	var xs []float64
	if err := toFloats(&xs, values); err != nil {
		Warning.Printf("cannot map %v values: %v", s.Aes, err)
		rv := reflect.ValueOf(values)
		out := make([]float64, rv.Len())
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = s.Map(x)
	}
	return out
}

// BreakPositions returns the normalized positions of the major breaks.
func (s *Scale) BreakPositions() []float64 {
	s.mustFinal()
	out := make([]float64, len(s.breaks))
	for i, b := range s.breaks {
		out[i] = (b - s.fmin) / (s.fmax - s.fmin)
	}
	return out
}

// MinorBreakPositions returns the normalized positions of minor
// breaks, if any.
func (s *Scale) MinorBreakPositions() []float64 {
	s.mustFinal()
	out := make([]float64, 0, len(s.minorBreaks))
	for _, b := range s.minorBreaks {
		p := (b - s.fmin) / (s.fmax - s.fmin)
		if p >= 0 && p <= 1 {
			out = append(out, p)
		}
	}
	return out
}

// BreakLabels returns the labels of the major breaks, parallel to
// BreakPositions.
func (s *Scale) BreakLabels() []string {
	s.mustFinal()
	return s.breakLabels
}

// BreakValues returns the major breaks in transformed domain space.
func (s *Scale) BreakValues() []float64 {
	s.mustFinal()
	return s.breaks
}

// DiscreteLevels returns the trained level order for a discrete scale.
func (s *Scale) DiscreteLevels() []string {
	return s.levels
}

// Domain returns the finalized unexpanded domain in transformed space.
// For a discrete scale it is [1, number of levels].
func (s *Scale) Domain() (min, max float64) {
	s.mustFinal()
	if s.Kind == DomainDiscrete {
		return 1, float64(len(s.levels))
	}
	return s.dmin, s.dmax
}

// unitNorm returns the normalized length of one domain unit: one
// data unit for a continuous scale, one level slot for a discrete
// scale.
func (s *Scale) unitNorm() float64 {
	s.mustFinal()
	return 1 / (s.fmax - s.fmin)
}

func (s *Scale) mustFinal() {
	if !s.finalized {
		panic(fmt.Sprintf("%v scale used before Finalize", s.Aes))
	}
}

// dateBreaks picks break positions and labels for a time domain given
// as Unix-seconds floats.
func dateBreaks(min, max float64) ([]float64, []string) {
	lo, hi := floatToTime(min), floatToTime(max)
	span := hi.Sub(lo)

	type unit struct {
		step   time.Duration
		layout string
	}
	var u unit
	switch {
	case span > 2*365*24*time.Hour:
		// Year breaks handled separately below.
	case span > 60*24*time.Hour:
		u = unit{0, "Jan 2006"} // month breaks
	case span > 2*24*time.Hour:
		u = unit{24 * time.Hour, "Jan 02"}
	case span > 2*time.Hour:
		u = unit{time.Hour, "15:04"}
	case span > 2*time.Minute:
		u = unit{time.Minute, "15:04"}
	default:
		u = unit{time.Second, "15:04:05"}
	}

	var bs []float64
	var labels []string
	add := func(t time.Time, layout string) {
		f := timeToFloat(t)
		if f < min || f > max {
			return
		}
		bs = append(bs, f)
		labels = append(labels, t.Format(layout))
	}

	switch {
	case span > 2*365*24*time.Hour:
		step := int(span.Hours()/(24*365)/6) + 1
		for y := lo.Year(); y <= hi.Year()+1; y += step {
			add(time.Date(y, 1, 1, 0, 0, 0, 0, time.UTC), "2006")
		}
	case u.step == 0: // months
		step := int(span.Hours()/(24*30)/6) + 1
		t := time.Date(lo.Year(), lo.Month(), 1, 0, 0, 0, 0, time.UTC)
		for !t.After(hi.AddDate(0, 1, 0)) {
			add(t, u.layout)
			t = t.AddDate(0, step, 0)
		}
	default:
		step := time.Duration(float64(span)/6) / u.step * u.step
		if step < u.step {
			step = u.step
		}
		t := lo.Truncate(step)
		for !t.After(hi.Add(step)) {
			add(t, u.layout)
			t = t.Add(step)
		}
	}
	return bs, labels
}
