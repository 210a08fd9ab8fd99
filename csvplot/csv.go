// Copyright 2026 The plotforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/plotforge/gg/table"
)

// readCSV reads path into a table, one column per CSV header field.
// A column whose every non-empty cell parses as a float becomes
// []float64 (empty cells become NaN); one whose cells parse as
// RFC 3339 timestamps becomes []time.Time; anything else stays
// []string.
func readCSV(path string) (*table.Table, error) {
	f := os.Stdin
	if path != "-" {
		var err error
		f, err = os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
	}

	r := csv.NewReader(f)
	r.ReuseRecord = true
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}
	names := append([]string(nil), header...)

	cols := make([][]string, len(names))
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %v", path, err)
		}
		for i := range names {
			v := ""
			if i < len(rec) {
				v = rec[i]
			}
			cols[i] = append(cols[i], v)
		}
	}

	b := new(table.Builder)
	for i, name := range names {
		b.Add(name, inferColumn(cols[i]))
	}
	return b.Done(), nil
}

func inferColumn(cells []string) table.Slice {
	if fs, ok := parseFloats(cells); ok {
		return fs
	}
	if ts, ok := parseTimes(cells); ok {
		return ts
	}
	return cells
}

func parseFloats(cells []string) ([]float64, bool) {
	out := make([]float64, len(cells))
	any := false
	for i, c := range cells {
		if c == "" {
			out[i] = math.NaN()
			continue
		}
		f, err := strconv.ParseFloat(c, 64)
		if err != nil {
			return nil, false
		}
		out[i] = f
		any = true
	}
	return out, any
}

func parseTimes(cells []string) ([]time.Time, bool) {
	out := make([]time.Time, len(cells))
	any := false
	for i, c := range cells {
		if c == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, c)
		if err != nil {
			return nil, false
		}
		out[i] = t
		any = true
	}
	return out, any
}
