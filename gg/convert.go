// Copyright 2026 The plotforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"fmt"
	"math"
	"reflect"
	"time"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/plotforge/gg/table"
)

var canCardinal = map[reflect.Kind]bool{
	reflect.Float32: true,
	reflect.Float64: true,
	reflect.Int:     true,
	reflect.Int8:    true,
	reflect.Int16:   true,
	reflect.Int32:   true,
	reflect.Int64:   true,
	reflect.Uint:    true,
	reflect.Uintptr: true,
	reflect.Uint8:   true,
	reflect.Uint16:  true,
	reflect.Uint32:  true,
	reflect.Uint64:  true,
}

var timeType = reflect.TypeOf(time.Time{})

// isCardinal reports whether s is a slice of a numeric type.
func isCardinal(s table.Slice) bool {
	rt := reflect.TypeOf(s)
	return rt != nil && rt.Kind() == reflect.Slice && canCardinal[rt.Elem().Kind()]
}

// isTimeSlice reports whether s is a []time.Time.
func isTimeSlice(s table.Slice) bool {
	rt := reflect.TypeOf(s)
	return rt != nil && rt.Kind() == reflect.Slice && rt.Elem() == timeType
}

// toFloats converts a numeric or time column to []float64. Times
// convert to Unix seconds with nanosecond fraction. It returns an
// error for non-numeric columns instead of panicking.
func toFloats(dst *[]float64, s table.Slice) error {
	if isTimeSlice(s) {
		ts := s.([]time.Time)
		out := make([]float64, len(ts))
		for i, t := range ts {
			out[i] = timeToFloat(t)
		}
		*dst = out
		return nil
	}
	if !isCardinal(s) {
		return fmt.Errorf("column type %T is not numeric", s)
	}
	slice.Convert(dst, s)
	return nil
}

// toFloat converts a single numeric or time value to float64.
func toFloat(v interface{}) (float64, error) {
	if t, ok := v.(time.Time); ok {
		return timeToFloat(t), nil
	}
	rv := reflect.ValueOf(v)
	switch {
	case canCardinal[rv.Kind()]:
		if rv.CanFloat() {
			return rv.Float(), nil
		}
		if rv.CanInt() {
			return float64(rv.Int()), nil
		}
		return float64(rv.Uint()), nil
	}
	return 0, fmt.Errorf("value type %T is not numeric", v)
}

func timeToFloat(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/1e9
}

func floatToTime(f float64) time.Time {
	sec, frac := math.Modf(f)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC()
}

func isFinite(x float64) bool {
	return !(math.IsNaN(x) || math.IsInf(x, 0))
}
