// Copyright 2026 The plotforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import "image/color"

// A legendEntry is one key in a legend: a swatch and its label.
type legendEntry struct {
	label  string
	swatch color.Color
	dash   string // line swatch when non-empty key style
	line   bool
}

// A legend is the guide for one non-positional scale.
type legend struct {
	aes     Aes
	title   string
	entries []legendEntry
}

// buildLegends collects a legend from every finalized non-positional
// scale that has something to show and does not opt out.
func buildLegends(p *Plot, scales map[Aes]*Scale) []legend {
	var out []legend
	for _, a := range []Aes{AesColor, AesFill, AesLinetype} {
		s := scales[a]
		if s == nil || s.NoGuide {
			continue
		}
		l := legend{aes: a, title: p.label(a)}
		if s.Discrete() {
			levels := s.DiscreteLevels()
			if len(levels) == 0 {
				continue
			}
			for i, lev := range levels {
				e := legendEntry{label: lev, swatch: levelColor(i)}
				if a == AesLinetype {
					e.line = true
					e.dash = dashPatterns[i%len(dashPatterns)]
					e.swatch = defBlack
				}
				l.entries = append(l.entries, e)
			}
		} else {
			if a == AesLinetype {
				continue
			}
			// Continuous color: one key per break, swatched
			// from the gradient.
			pos := s.BreakPositions()
			labels := s.BreakLabels()
			if len(pos) == 0 {
				continue
			}
			for i := range pos {
				if pos[i] < 0 || pos[i] > 1 {
					continue
				}
				l.entries = append(l.entries, legendEntry{
					label:  labels[i],
					swatch: continuousPalette.Map(pos[i]),
				})
			}
		}
		if len(l.entries) > 0 {
			out = append(out, l)
		}
	}
	return out
}
