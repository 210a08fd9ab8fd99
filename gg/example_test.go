// Copyright 2026 The plotforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg_test

import (
	"log"
	"os"

	"github.com/plotforge/gg/gg"
	"github.com/plotforge/gg/ggstat"
	"github.com/plotforge/gg/table"
)

// Example renders a faceted scatter plot with a regression line per
// panel.
func Example() {
	data := table.NewBuilder(nil).
		Add("hp", []float64{110, 110, 93, 175, 105, 245, 62, 95}).
		Add("mpg", []float64{21, 21, 22.8, 19.2, 18.1, 14.3, 24.4, 22.8}).
		Add("cyl", []int{6, 6, 4, 8, 6, 8, 4, 4}).
		Done()

	p := &gg.Plot{
		Data:    data,
		Mapping: gg.Mapping{gg.AesX: gg.Col("hp"), gg.AesY: gg.Col("mpg")},
		Layers: []*gg.Layer{
			{Geom: gg.Point{}},
			{Geom: gg.Line{}, Stat: ggstat.Smooth{X: "x", Y: "y"}},
		},
		Facet: gg.Facet{Kind: gg.FacetWrap, Vars: []string{"cyl"}},
		Title: "Fuel efficiency by horsepower",
	}

	doc, err := gg.Render(p, gg.DefaultTheme(), 800, 400)
	if err != nil {
		log.Fatal(err)
	}
	doc.WriteSVG(os.Stdout, gg.DefaultTheme().BaseFontSize)
}

// ExampleRender_histogram bins a numeric column and draws bars of the
// bin counts.
func ExampleRender_histogram() {
	data := table.NewBuilder(nil).
		Add("wait", []float64{1.2, 1.4, 1.5, 2.1, 2.2, 2.3, 2.4, 3.9}).
		Done()

	p := &gg.Plot{
		Data:    data,
		Mapping: gg.Mapping{gg.AesX: gg.Col("wait"), gg.AesY: gg.AfterStat("count")},
		Layers: []*gg.Layer{
			{Geom: gg.Bar{}, Stat: ggstat.Bin{X: "x", Width: 1}},
		},
	}

	doc, err := gg.Render(p, gg.DefaultTheme(), 600, 400)
	if err != nil {
		log.Fatal(err)
	}
	doc.WriteSVG(os.Stdout, gg.DefaultTheme().BaseFontSize)
}
