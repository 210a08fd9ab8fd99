// Copyright 2026 The plotforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"fmt"
	"math"
	"reflect"

	"github.com/plotforge/gg/table"
)

// An Aes identifies a visual aesthetic channel that data can be mapped
// onto.
type Aes int

const (
	AesX Aes = iota
	AesY
	AesXMin
	AesXMax
	AesYMin
	AesYMax
	AesColor
	AesFill
	AesSize
	AesShape
	AesLinetype
	AesAlpha
	AesLabel
	AesGroup
	AesWeight

	numAes
)

var aesNames = [numAes]string{
	"x", "y", "xmin", "xmax", "ymin", "ymax",
	"color", "fill", "size", "shape", "linetype", "alpha",
	"label", "group", "weight",
}

func (a Aes) String() string {
	if a < 0 || a >= numAes {
		return fmt.Sprintf("Aes(%d)", int(a))
	}
	return aesNames[a]
}

// Positional reports whether a is a positional aesthetic, which is
// mapped by the x or y scale rather than a channel scale of its own.
func (a Aes) Positional() bool {
	return a <= AesYMax
}

// positionalScale returns the scale channel (AesX or AesY) that maps
// values of a. It panics if a is not positional.
func (a Aes) positionalScale() Aes {
	switch a {
	case AesX, AesXMin, AesXMax:
		return AesX
	case AesY, AesYMin, AesYMax:
		return AesY
	}
	panic(fmt.Sprintf("aesthetic %v has no positional scale", a))
}

// groupingAes lists the non-positional aesthetics whose discrete
// values split a layer into statistic groups.
var groupingAes = []Aes{AesColor, AesFill, AesLinetype, AesShape, AesAlpha, AesGroup}

// A SourceKind discriminates the variants of a ValueSource.
type SourceKind int

const (
	// SourceColumn reads a named table column unchanged.
	SourceColumn SourceKind = iota

	// SourceConst broadcasts a constant to every row.
	SourceConst

	// SourceExpr evaluates a function per row.
	SourceExpr

	// SourceFactor reads a column and forces discrete treatment by
	// materializing a label per row.
	SourceFactor

	// SourceCutWidth buckets a continuous column into fixed-width
	// bins and yields the bin label per row.
	SourceCutWidth

	// SourceAfterStat reads a statistic's computed variable. It is
	// resolved in the second resolution pass, after the layer's
	// statistic has run.
	SourceAfterStat
)

// A Row is one row of a table, for use by expression sources.
type Row struct {
	t *table.Table
	i int
}

// Get returns the row's value for the named column, or nil if there is
// no such column.
func (r Row) Get(col string) interface{} {
	c := r.t.Column(col)
	if c == nil {
		return nil
	}
	return reflect.ValueOf(c).Index(r.i).Interface()
}

// A ValueSource describes where a mapped aesthetic's values come from.
// Exactly one variant is active, selected by Kind. The zero value is a
// column reference with an empty name, which is never valid; construct
// sources with Col, Const, Expr, Factor, CutWidth, or AfterStat.
type ValueSource struct {
	Kind SourceKind

	// Col names the source column for SourceColumn, SourceFactor,
	// and SourceCutWidth.
	Col string

	// Value is the broadcast value for SourceConst.
	Value interface{}

	// Fn is the per-row function for SourceExpr. A nil result is
	// treated as a missing value.
	Fn func(Row) interface{}

	// Width is the bin width for SourceCutWidth; it must be > 0.
	// Bins are right-closed: (lo, hi]. At most one of Center and
	// Boundary positions the bin edges; with neither, edges fall at
	// integer multiples of Width.
	Width            float64
	Center, Boundary *float64

	// Var names the computed variable for SourceAfterStat.
	Var string
}

// Col maps an aesthetic to the named table column.
func Col(name string) ValueSource { return ValueSource{Kind: SourceColumn, Col: name} }

// Const maps an aesthetic to a constant value broadcast to every row.
func Const(v interface{}) ValueSource { return ValueSource{Kind: SourceConst, Value: v} }

// Expr maps an aesthetic to the result of fn evaluated on each row.
// The column type is inferred from the first non-missing result.
func Expr(fn func(Row) interface{}) ValueSource { return ValueSource{Kind: SourceExpr, Fn: fn} }

// Factor maps an aesthetic to the named column, forcing discrete
// treatment regardless of the column's type.
func Factor(name string) ValueSource { return ValueSource{Kind: SourceFactor, Col: name} }

// CutWidth maps an aesthetic to fixed-width buckets of the named
// continuous column.
func CutWidth(name string, width float64) ValueSource {
	return ValueSource{Kind: SourceCutWidth, Col: name, Width: width}
}

// AfterStat maps an aesthetic to a variable computed by the layer's
// statistic, such as "count" or "density". It resolves in the second
// resolution pass.
func AfterStat(name string) ValueSource { return ValueSource{Kind: SourceAfterStat, Var: name} }

// WithCenter anchors a CutWidth source so that one bin is centered on
// center.
func (v ValueSource) WithCenter(center float64) ValueSource {
	v.Center = &center
	return v
}

// WithBoundary anchors a CutWidth source so that one bin edge falls on
// boundary.
func (v ValueSource) WithBoundary(boundary float64) ValueSource {
	v.Boundary = &boundary
	return v
}

// A Mapping associates aesthetic channels with value sources. A
// layer's mapping is merged over the chart's default mapping unless
// the layer opts out of inheritance.
type Mapping map[Aes]ValueSource

// Merge returns the mapping resulting from overlaying m on parent:
// every channel in m wins; channels only in parent are inherited.
// Neither input is modified.
func (m Mapping) Merge(parent Mapping) Mapping {
	if len(parent) == 0 {
		return m
	}
	out := make(Mapping, len(parent)+len(m))
	for a, v := range parent {
		out[a] = v
	}
	for a, v := range m {
		out[a] = v
	}
	return out
}

// resolveStage selects which sources a resolution pass evaluates.
type resolveStage int

const (
	// stagePreStat resolves everything except AfterStat sources.
	stagePreStat resolveStage = iota

	// stagePostStat resolves only AfterStat sources, against the
	// statistic's output table.
	stagePostStat
)

// resolve evaluates the sources in m against t and returns a table
// with one column per resolved channel, named by the channel, aligned
// 1:1 with t's rows. Missing values become NaN (numeric) or ""
// (string); they propagate rather than failing. A reference to a
// column that does not exist is a specification error.
func resolve(t *table.Table, m Mapping, stage resolveStage) (*table.Table, error) {
	nb := new(table.Builder)
	for a := Aes(0); a < numAes; a++ {
		v, ok := m[a]
		if !ok {
			continue
		}
		if (stage == stagePreStat) == (v.Kind == SourceAfterStat) {
			continue
		}
		col, err := v.eval(t)
		if err != nil {
			return nil, fmt.Errorf("aesthetic %v: %w", a, err)
		}
		nb.Add(a.String(), col)
	}
	return nb.Done(), nil
}

func (v ValueSource) eval(t *table.Table) (table.Slice, error) {
	switch v.Kind {
	case SourceColumn:
		c := t.Column(v.Col)
		if c == nil {
			return nil, fmt.Errorf("unknown column %q", v.Col)
		}
		return c, nil

	case SourceConst:
		rv := reflect.ValueOf(v.Value)
		out := reflect.MakeSlice(reflect.SliceOf(rv.Type()), t.Len(), t.Len())
		for i := 0; i < t.Len(); i++ {
			out.Index(i).Set(rv)
		}
		return out.Interface(), nil

	case SourceExpr:
		return evalExpr(t, v.Fn)

	case SourceFactor:
		c := t.Column(v.Col)
		if c == nil {
			return nil, fmt.Errorf("unknown column %q", v.Col)
		}
		cv := reflect.ValueOf(c)
		out := make([]string, cv.Len())
		for i := range out {
			out[i] = fmt.Sprint(cv.Index(i).Interface())
		}
		return out, nil

	case SourceCutWidth:
		c := t.Column(v.Col)
		if c == nil {
			return nil, fmt.Errorf("unknown column %q", v.Col)
		}
		if v.Width <= 0 {
			return nil, fmt.Errorf("cut width must be positive; got %g", v.Width)
		}
		return v.cut(c)

	case SourceAfterStat:
		c := t.Column(v.Var)
		if c == nil {
			return nil, fmt.Errorf("statistic computed no variable %q (have %v)", v.Var, t.Columns())
		}
		return c, nil
	}
	panic(fmt.Sprintf("unknown source kind %d", v.Kind))
}

// evalExpr evaluates fn for each row, inferring the column type from
// the first non-missing result.
func evalExpr(t *table.Table, fn func(Row) interface{}) (table.Slice, error) {
	if fn == nil {
		return nil, fmt.Errorf("expression source has nil function")
	}
	vals := make([]interface{}, t.Len())
	var elemType reflect.Type
	for i := 0; i < t.Len(); i++ {
		vals[i] = fn(Row{t, i})
		if vals[i] != nil && elemType == nil {
			elemType = reflect.TypeOf(vals[i])
		}
	}
	if elemType == nil {
		// All results missing. Keep the column numeric so
		// downstream stages see NaNs.
		elemType = reflect.TypeOf(float64(0))
	}
	out := reflect.MakeSlice(reflect.SliceOf(elemType), t.Len(), t.Len())
	for i, val := range vals {
		if val == nil {
			setMissing(out.Index(i))
			continue
		}
		rv := reflect.ValueOf(val)
		if !rv.Type().AssignableTo(elemType) {
			if !rv.Type().ConvertibleTo(elemType) {
				return nil, fmt.Errorf("expression returned %T; want %s", val, elemType)
			}
			rv = rv.Convert(elemType)
		}
		out.Index(i).Set(rv)
	}
	return out.Interface(), nil
}

// setMissing writes the missing-value sentinel for v's type: NaN for
// floats, "" for strings, zero otherwise.
func setMissing(v reflect.Value) {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		v.SetFloat(math.NaN())
	case reflect.String:
		v.SetString("")
	default:
		v.Set(reflect.Zero(v.Type()))
	}
}

// cut buckets the continuous column c into fixed-width, right-closed
// bins and returns an interval label per row.
func (v ValueSource) cut(c table.Slice) (table.Slice, error) {
	var xs []float64
	if err := toFloats(&xs, c); err != nil {
		return nil, err
	}

	boundary := 0.0
	switch {
	case v.Boundary != nil:
		boundary = *v.Boundary
	case v.Center != nil:
		boundary = *v.Center - v.Width/2
	}

	out := make([]string, len(xs))
	for i, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			out[i] = ""
			continue
		}
		k := binIndex(x, v.Width, boundary)
		lo := boundary + float64(k)*v.Width
		out[i] = fmt.Sprintf("(%.6g,%.6g]", lo, lo+v.Width)
	}
	return out, nil
}

// binIndex returns the index k of the right-closed bin
// (boundary+k*width, boundary+(k+1)*width] containing x. A value
// exactly on an edge belongs to the bin below it, so x == boundary
// falls in bin -1. This is the single boundary-inclusion rule shared
// with the binning statistics.
func binIndex(x, width, boundary float64) int {
	u := (x - boundary) / width
	k := math.Ceil(u) - 1
	return int(k)
}
