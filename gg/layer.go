// Copyright 2026 The plotforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"github.com/plotforge/gg/ggstat"
	"github.com/plotforge/gg/table"
)

// A Layer is one geometry pass over one data source: data rows are
// resolved through a mapping, transformed by a statistic, adjusted by
// a position, and rendered by a geom.
type Layer struct {
	// Geom renders the layer's rows.
	Geom Geom

	// Data is the layer's private data. Nil uses the plot data.
	Data *table.Table

	// Mapping is the layer's aesthetic mapping. Unless NoInherit
	// is set it is merged over the plot mapping, layer entries
	// winning.
	Mapping Mapping

	// NoInherit uses only the layer's own mapping.
	NoInherit bool

	// Stat transforms the rows before drawing. Nil means identity.
	Stat ggstat.Stat

	// Position adjusts overlapping rows after the statistic.
	Position Position

	// Decoration marks a layer that contributes nothing to scale
	// training, e.g. a reference line over its own data.
	Decoration bool
}

func (l *Layer) stat() ggstat.Stat {
	if l.Stat == nil {
		return ggstat.Identity{}
	}
	return l.Stat
}

func (l *Layer) mapping(plot Mapping) Mapping {
	if l.NoInherit {
		return l.Mapping
	}
	return l.Mapping.Merge(plot)
}

func (l *Layer) data(plot *table.Table) *table.Table {
	if l.Data != nil {
		return l.Data
	}
	return plot
}
