// Copyright 2026 The plotforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

// A LineStyle styles a theme line element. Blank suppresses the
// element entirely.
type LineStyle struct {
	Color string
	Width float64
	Dash  string
	Blank bool
}

// A TextStyle styles a theme text element.
type TextStyle struct {
	Color string
	Size  float64
	Blank bool
}

// A RectStyle styles a theme rectangle element.
type RectStyle struct {
	Fill        string
	Stroke      string
	StrokeWidth float64
	Blank       bool
}

// A Theme collects the non-data visual properties of a chart. Themes
// are plain values passed explicitly to Render; there is no global
// default state.
type Theme struct {
	PlotBackground  RectStyle
	PanelBackground RectStyle
	GridMajor       LineStyle
	GridMinor       LineStyle
	AxisLine        LineStyle
	AxisTick        LineStyle
	AxisText        TextStyle
	AxisTitle       TextStyle
	PlotTitle       TextStyle
	StripBackground RectStyle
	StripText       TextStyle
	LegendTitle     TextStyle
	LegendText      TextStyle
	LegendKey       RectStyle

	// BaseFontSize is the reference size in pixels that unset text
	// element sizes derive from.
	BaseFontSize float64

	// TickLength is the axis tick length in pixels.
	TickLength float64

	// Margin is the padding around the whole plot in pixels.
	Margin float64

	// PanelSpacing is the gap between facet panels in pixels.
	PanelSpacing float64
}

// DefaultTheme returns the grey theme: a light grey panel with white
// grid lines and dark grey annotation.
func DefaultTheme() *Theme {
	return &Theme{
		PlotBackground:  RectStyle{Fill: "#ffffff"},
		PanelBackground: RectStyle{Fill: "#ebebeb"},
		GridMajor:       LineStyle{Color: "#ffffff", Width: 1},
		GridMinor:       LineStyle{Color: "#ffffff", Width: 0.5},
		AxisLine:        LineStyle{Blank: true},
		AxisTick:        LineStyle{Color: "#333333", Width: 1},
		AxisText:        TextStyle{Color: "#4d4d4d", Size: 11},
		AxisTitle:       TextStyle{Color: "#000000", Size: 14},
		PlotTitle:       TextStyle{Color: "#000000", Size: 17},
		StripBackground: RectStyle{Fill: "#d9d9d9"},
		StripText:       TextStyle{Color: "#1a1a1a", Size: 12},
		LegendTitle:     TextStyle{Color: "#000000", Size: 13},
		LegendText:      TextStyle{Color: "#1a1a1a", Size: 11},
		LegendKey:       RectStyle{Fill: "#f2f2f2"},
		BaseFontSize:    14,
		TickLength:      4,
		Margin:          8,
		PanelSpacing:    8,
	}
}

// size returns the element's size, falling back to the theme base.
func (t *Theme) size(ts TextStyle) float64 {
	if ts.Size > 0 {
		return ts.Size
	}
	return t.BaseFontSize
}
