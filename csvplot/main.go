// Copyright 2026 The plotforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command csvplot plots columns of a CSV file.
//
// csvplot reads a CSV file with a header row, maps columns to
// aesthetics via flags, and writes an SVG chart. Numeric and RFC 3339
// timestamp columns are detected automatically; everything else is
// treated as discrete.
//
// For example, to plot a colored scatter of y over x from data.csv:
//
//	csvplot -x x -y y -color kind -o out.svg data.csv
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/plotforge/gg/gg"
	"github.com/plotforge/gg/ggstat"
)

func main() {
	log.SetPrefix("csvplot: ")
	log.SetFlags(0)

	var (
		flagX      = flag.String("x", "", "map `column` to x (required)")
		flagY      = flag.String("y", "", "map `column` to y")
		flagColor  = flag.String("color", "", "map `column` to color")
		flagFill   = flag.String("fill", "", "map `column` to fill")
		flagGeom   = flag.String("geom", "point", "draw with `geom`: point, line, bar, area, tile")
		flagStat   = flag.String("stat", "", "transform with `stat`: count, bin, density, ecdf, smooth")
		flagFacet  = flag.String("facet", "", "facet by `columns` (comma-separated)")
		flagFlip   = flag.Bool("flip", false, "flip the x and y axes")
		flagTitle  = flag.String("title", "", "chart `title`")
		flagWidth  = flag.Float64("width", 800, "output width in `pixels`")
		flagHeight = flag.Float64("height", 500, "output height in `pixels`")
		flagOut    = flag.String("o", "", "write output to `file` (default: stdout)")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] input.csv\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 || *flagX == "" {
		flag.Usage()
		os.Exit(2)
	}

	tab, err := readCSV(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	mapping := gg.Mapping{gg.AesX: gg.Col(*flagX)}
	if *flagY != "" {
		mapping[gg.AesY] = gg.Col(*flagY)
	}
	if *flagColor != "" {
		mapping[gg.AesColor] = gg.Col(*flagColor)
	}
	if *flagFill != "" {
		mapping[gg.AesFill] = gg.Col(*flagFill)
	}

	layer := &gg.Layer{}
	switch *flagGeom {
	case "point":
		layer.Geom = gg.Point{}
	case "line":
		layer.Geom = gg.Line{}
	case "bar":
		layer.Geom = gg.Bar{}
	case "area":
		layer.Geom = gg.Area{}
	case "tile":
		layer.Geom = gg.Tile{}
	default:
		log.Fatalf("unknown geom %q", *flagGeom)
	}

	switch *flagStat {
	case "":
	case "count":
		layer.Stat = ggstat.Count{X: "x"}
		mapping[gg.AesY] = gg.AfterStat("count")
	case "bin":
		layer.Stat = ggstat.Bin{X: "x"}
		mapping[gg.AesY] = gg.AfterStat("count")
	case "density":
		layer.Stat = ggstat.Density{X: "x"}
		mapping[gg.AesY] = gg.AfterStat("density")
	case "ecdf":
		layer.Stat = ggstat.ECDF{X: "x"}
		mapping[gg.AesY] = gg.AfterStat("cumdensity")
	case "smooth":
		layer.Stat = ggstat.Smooth{X: "x", Y: "y"}
	default:
		log.Fatalf("unknown stat %q", *flagStat)
	}

	p := &gg.Plot{
		Data:    tab,
		Mapping: mapping,
		Layers:  []*gg.Layer{layer},
		Title:   *flagTitle,
	}
	if *flagFacet != "" {
		p.Facet = gg.Facet{
			Kind: gg.FacetWrap,
			Vars: strings.Split(*flagFacet, ","),
		}
	}
	if *flagFlip {
		p.Coord = gg.Coord{Kind: gg.CoordFlip}
	}

	doc, err := gg.Render(p, gg.DefaultTheme(), *flagWidth, *flagHeight)
	if err != nil {
		log.Fatal(err)
	}

	f := os.Stdout
	if *flagOut != "" {
		f, err = os.Create(*flagOut)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
	}
	if err := doc.WriteSVG(f, gg.DefaultTheme().BaseFontSize); err != nil {
		log.Fatal(err)
	}
}
