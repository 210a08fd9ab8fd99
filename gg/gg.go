// Copyright 2026 The plotforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gg composes declarative chart specifications into vector
// documents.
//
// A Plot pairs a tabular data source with aesthetic mappings, layers,
// scales, a coordinate system, and optional faceting. Render runs the
// composition pipeline: it resolves mappings to per-row values, runs
// each layer's statistic, adjusts overlapping positions, partitions
// rows into facet panels, trains and finalizes every scale across all
// contributing layers and panels, maps values through the coordinate
// system, and hands panel-space geometry to the geom renderers, which
// emit a document.Document.
//
// Rendering is a pure function of the plot specification: each Render
// call owns its scale instances and panels, so independent goroutines
// may render concurrently without synchronization.
package gg

import (
	"log"
	"os"
)

// Warning is a logger for reporting conditions that don't prevent the
// production of a plot, but may lead to unexpected results.
var Warning = log.New(os.Stderr, "[gg] ", log.Lshortfile)
