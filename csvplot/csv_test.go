// Copyright 2026 The plotforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"math"
	"reflect"
	"testing"
	"time"
)

func TestInferColumn(t *testing.T) {
	c := inferColumn([]string{"1", "2.5", ""})
	fs, ok := c.([]float64)
	if !ok {
		t.Fatalf("got %T; want []float64", c)
	}
	if fs[0] != 1 || fs[1] != 2.5 || !math.IsNaN(fs[2]) {
		t.Errorf("bad floats: %v", fs)
	}

	c = inferColumn([]string{"2026-01-02T00:00:00Z"})
	ts, ok := c.([]time.Time)
	if !ok {
		t.Fatalf("got %T; want []time.Time", c)
	}
	if ts[0].Year() != 2026 {
		t.Errorf("bad time: %v", ts[0])
	}

	c = inferColumn([]string{"a", "1"})
	if !reflect.DeepEqual(c, []string{"a", "1"}) {
		t.Errorf("mixed column should stay strings; got %v", c)
	}

	// All-empty columns are not numeric.
	if _, ok := inferColumn([]string{"", ""}).([]string); !ok {
		t.Errorf("empty column should stay strings")
	}
}
