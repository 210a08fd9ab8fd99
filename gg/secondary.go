// Copyright 2026 The plotforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import "strconv"

// A SecondaryAxisSpec derives a second axis from a primary positional
// scale. It holds plain configuration: the secondary axis never trains
// a domain of its own, and it is materialized only after the primary
// scale's Finalize, from the primary's finalized breaks.
//
// If Breaks is nil, the secondary axis reuses the primary's break
// positions and labels them with Trans applied to the primary break
// values. If Breaks is set, the values are taken as already being in
// primary-scale units and are NOT inverse-transformed through Trans to
// find their positions; only their labels go through Trans. This
// mirrors the reference behavior and is surprising for non-trivial
// transforms: prefer derived breaks unless you need exact positions.
type SecondaryAxisSpec struct {
	// Trans converts a primary-axis value into the secondary
	// axis's units. It must be one-to-one over the primary domain.
	// Nil means identity.
	Trans func(float64) float64

	// Breaks optionally fixes the secondary tick values, in
	// primary-scale units (see above).
	Breaks []float64

	// Labels optionally overrides the tick labels; its length must
	// match the number of breaks.
	Labels []string

	// Name is the secondary axis title.
	Name string

	// Formatter formats transformed break values when Labels is
	// not set. Nil means trimmed %g formatting.
	Formatter func(float64) string
}

// A secondaryAxis is a materialized secondary axis: normalized tick
// positions on the primary scale plus display labels. It is plain
// data; it holds no reference back to the primary scale.
type secondaryAxis struct {
	name      string
	positions []float64
	labels    []string
}

// materialize builds the secondary axis from the primary's finalized
// state.
func (spec *SecondaryAxisSpec) materialize(primary *Scale) *secondaryAxis {
	trans := spec.Trans
	if trans == nil {
		trans = func(v float64) float64 { return v }
	}
	format := spec.Formatter
	if format == nil {
		format = func(v float64) string {
			return strconv.FormatFloat(v, 'g', -1, 64)
		}
	}

	ax := &secondaryAxis{name: spec.Name}
	if spec.Breaks == nil {
		// Inherit the primary's break positions; only the labels
		// differ.
		ax.positions = primary.BreakPositions()
		for _, b := range primary.BreakValues() {
			ax.labels = append(ax.labels, format(trans(primary.Trans.Inverse(b))))
		}
	} else {
		for _, b := range spec.Breaks {
			tb := b
			if primary.Kind != DomainDateTime {
				tb = primary.Trans.Forward(b)
			}
			if !isFinite(tb) {
				continue
			}
			ax.positions = append(ax.positions, (tb-primary.fmin)/(primary.fmax-primary.fmin))
			ax.labels = append(ax.labels, format(trans(b)))
		}
	}
	if len(spec.Labels) == len(ax.positions) && len(spec.Labels) > 0 {
		ax.labels = append([]string(nil), spec.Labels...)
	}
	return ax
}
