// Copyright 2026 The plotforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package table provides the immutable column-typed tables consumed and
// produced by the plot composition pipeline.
//
// A Table is a set of named columns of equal length. The pipeline only
// ever reads tables handed to it; derived tables (statistic output,
// position-adjusted rows) are built fresh with a Builder. This is
// deliberately not a dataframe engine: there is no type coercion, no
// persistence, and only the grouping and sorting operations the
// pipeline itself needs.
package table

import (
	"fmt"
	"reflect"
)

// A Slice is any Go slice value, such as []float64 or []string. It is
// checked by reflection at API boundaries.
type Slice interface{}

// A Table is an ordered set of named columns, where all columns have
// the same number of rows. The zero value of Table is the empty table:
// no columns and no rows.
//
// Tables are immutable once constructed. To derive a new Table, use a
// Builder.
type Table struct {
	cols     map[string]Slice
	colNames []string
	length   int
}

// A Builder constructs a Table. The zero value of Builder is an empty
// builder.
type Builder struct {
	t Table
}

// NewBuilder returns a new Builder seeded with the columns of base.
// base may be nil, which is equivalent to new(Builder).
func NewBuilder(base *Table) *Builder {
	b := new(Builder)
	if base != nil {
		for _, name := range base.colNames {
			b.Add(name, base.cols[name])
		}
	}
	return b
}

// Add adds a column named name to the table being built, or removes
// the column if data is nil. If the column already exists, Add
// replaces it in place, keeping its order. Add panics if data is not a
// slice or if its length differs from the table's other columns.
//
// Add returns b for chaining.
func (b *Builder) Add(name string, data Slice) *Builder {
	if data == nil {
		// Remove the column.
		if _, ok := b.t.cols[name]; !ok {
			return b
		}
		delete(b.t.cols, name)
		for i, n := range b.t.colNames {
			if n == name {
				b.t.colNames = append(b.t.colNames[:i:i], b.t.colNames[i+1:]...)
				break
			}
		}
		return b
	}

	rv := reflect.ValueOf(data)
	if rv.Kind() != reflect.Slice {
		panic(fmt.Sprintf("data for column %q is not a slice; got %T", name, data))
	}
	// Replacing the only column may change the row count; anything
	// else must match it.
	replacingOnly := len(b.t.cols) == 1 && b.Has(name)
	if len(b.t.cols) > 0 && !replacingOnly && rv.Len() != b.t.length {
		panic(fmt.Sprintf("cannot add column %q with %d rows to table with %d rows", name, rv.Len(), b.t.length))
	}

	if b.t.cols == nil {
		b.t.cols = make(map[string]Slice)
	}
	if _, ok := b.t.cols[name]; !ok {
		b.t.colNames = append(b.t.colNames, name)
	}
	b.t.cols[name] = data
	b.t.length = rv.Len()
	return b
}

// Has reports whether the table being built has a column named name.
func (b *Builder) Has(name string) bool {
	_, ok := b.t.cols[name]
	return ok
}

// Done returns the constructed Table. The Builder must not be used
// after Done.
func (b *Builder) Done() *Table {
	t := b.t
	b.t = Table{}
	return &t
}

// Len returns the number of rows in t.
func (t *Table) Len() int {
	return t.length
}

// Columns returns the names of t's columns in order. The caller must
// not modify the returned slice. An empty table returns nil.
func (t *Table) Columns() []string {
	return t.colNames
}

// Column returns the data of the named column, or nil if there is no
// such column.
func (t *Table) Column(name string) Slice {
	return t.cols[name]
}

// MustColumn is like Column, but panics if there is no such column.
func (t *Table) MustColumn(name string) Slice {
	if c, ok := t.cols[name]; ok {
		return c
	}
	panic(fmt.Sprintf("unknown column %q", name))
}

// Rows returns a new Table containing only the rows at the given
// indexes, in the given order. It panics if an index is out of range.
func (t *Table) Rows(idxs []int) *Table {
	nb := new(Builder)
	for _, name := range t.colNames {
		cv := reflect.ValueOf(t.cols[name])
		out := reflect.MakeSlice(cv.Type(), len(idxs), len(idxs))
		for i, r := range idxs {
			out.Index(i).Set(cv.Index(r))
		}
		nb.Add(name, out.Interface())
	}
	return nb.Done()
}

// Concat returns the row-wise concatenation of tables. All tables must
// have the same column set; columns keep the order of the first
// non-empty table. Concat of no tables is the empty table.
func Concat(tables ...*Table) *Table {
	var first *Table
	total := 0
	for _, t := range tables {
		if t == nil || len(t.colNames) == 0 {
			continue
		}
		if first == nil {
			first = t
		}
		total += t.length
	}
	if first == nil {
		return new(Table)
	}

	nb := new(Builder)
	for _, name := range first.colNames {
		ct := reflect.TypeOf(first.cols[name])
		out := reflect.MakeSlice(ct, 0, total)
		for _, t := range tables {
			if t == nil || len(t.colNames) == 0 {
				continue
			}
			c, ok := t.cols[name]
			if !ok {
				panic(fmt.Sprintf("cannot concat: table is missing column %q", name))
			}
			out = reflect.AppendSlice(out, reflect.ValueOf(c))
		}
		nb.Add(name, out.Interface())
	}
	return nb.Done()
}
