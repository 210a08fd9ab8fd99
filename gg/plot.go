// Copyright 2026 The plotforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"fmt"

	"github.com/plotforge/gg/table"
)

// A Plot is a complete declarative chart specification: data, a
// default mapping, layers, and the scale, facet, and coordinate
// configuration. It is a plain value; Render turns it into a
// document without mutating it, so one Plot may be rendered
// concurrently by independent goroutines.
type Plot struct {
	// Data is the default data source for layers without private
	// data.
	Data *table.Table

	// Mapping is the default aesthetic mapping layers inherit.
	Mapping Mapping

	// Layers are drawn in order, later layers on top.
	Layers []*Layer

	// Scales overrides scale configuration per aesthetic. Unlisted
	// aesthetics get automatic scales. The configured scales are
	// cloned per render, never trained in place.
	Scales map[Aes]*Scale

	// Facet partitions the chart into panels.
	Facet Facet

	// Coord is the coordinate system, Cartesian by default.
	Coord Coord

	// Title is the chart title. Empty draws none.
	Title string

	// Labels overrides axis and legend titles per aesthetic. An
	// unlisted aesthetic is titled by its scale Name, or by the
	// column it is mapped from.
	Labels map[Aes]string
}

func (p *Plot) validate() error {
	if len(p.Layers) == 0 {
		return fmt.Errorf("plot has no layers")
	}
	for i, l := range p.Layers {
		if l.Geom == nil {
			return fmt.Errorf("layer %d has no geom", i)
		}
		if l.data(p.Data) == nil {
			return fmt.Errorf("layer %d has no data", i)
		}
		if len(l.mapping(p.Mapping)) == 0 {
			return fmt.Errorf("layer %d has no aesthetic mapping", i)
		}
	}
	for a, s := range p.Scales {
		if s == nil {
			return fmt.Errorf("nil scale for aesthetic %v", a)
		}
	}
	return nil
}

// label returns the title for an aesthetic: explicit label, scale
// name, then the mapped column name.
func (p *Plot) label(a Aes) string {
	if s, ok := p.Labels[a]; ok {
		return s
	}
	if s, ok := p.Scales[a]; ok && s.Name != "" {
		return s.Name
	}
	if v, ok := p.Mapping[a]; ok {
		switch v.Kind {
		case SourceColumn, SourceFactor, SourceCutWidth:
			return v.Col
		case SourceAfterStat:
			return v.Var
		}
	}
	return ""
}
