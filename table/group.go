// Copyright 2026 The plotforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"
)

// A Key identifies one group produced by GroupBy. Cols and Vals are
// parallel: Vals[i] is the group's value for column Cols[i].
type Key struct {
	Cols []string
	Vals []interface{}
}

// String returns a "col=val, col=val" rendering of k, or "" for the
// root key.
func (k Key) String() string {
	parts := make([]string, len(k.Cols))
	for i, c := range k.Cols {
		parts[i] = fmt.Sprintf("%s=%v", c, k.Vals[i])
	}
	return strings.Join(parts, ", ")
}

// Value returns the key's value for column col and whether col is part
// of the key.
func (k Key) Value(col string) (interface{}, bool) {
	for i, c := range k.Cols {
		if c == col {
			return k.Vals[i], true
		}
	}
	return nil, false
}

// A Group is one partition of a table: the rows whose values for the
// key columns all equal Key.
type Group struct {
	Key   Key
	Table *Table
}

// GroupBy partitions t into groups such that all rows in a group have
// equal values for every named column. Groups appear in first-seen row
// order; every row of t appears in exactly one group. GroupBy with no
// columns returns a single group holding t with an empty key. It
// panics if a named column does not exist.
func GroupBy(t *Table, cols ...string) []Group {
	if len(cols) == 0 {
		return []Group{{Key{}, t}}
	}

	colVals := make([]reflect.Value, len(cols))
	for i, c := range cols {
		colVals[i] = reflect.ValueOf(t.MustColumn(c))
	}

	type comparableKey [8]interface{}
	if len(cols) > 8 {
		panic(fmt.Sprintf("cannot group by %d columns; max 8", len(cols)))
	}

	index := make(map[comparableKey]int)
	var order []comparableKey
	rows := make(map[comparableKey][]int)
	for r := 0; r < t.Len(); r++ {
		var ck comparableKey
		for i := range cols {
			ck[i] = colVals[i].Index(r).Interface()
		}
		if _, ok := index[ck]; !ok {
			index[ck] = len(order)
			order = append(order, ck)
		}
		rows[ck] = append(rows[ck], r)
	}

	groups := make([]Group, 0, len(order))
	for _, ck := range order {
		key := Key{Cols: cols, Vals: make([]interface{}, len(cols))}
		for i := range cols {
			key.Vals[i] = ck[i]
		}
		groups = append(groups, Group{key, t.Rows(rows[ck])})
	}
	return groups
}

// SortBy returns a copy of t with rows sorted by the named columns in
// their natural order (numeric for numbers, chronological for
// time.Time, lexical for strings). The sort is stable, so ties keep
// their input order. It panics if a column does not exist or its type
// is not orderable.
func SortBy(t *Table, cols ...string) *Table {
	if len(cols) == 0 || t.Len() == 0 {
		return t
	}
	colVals := make([]reflect.Value, len(cols))
	for i, c := range cols {
		colVals[i] = reflect.ValueOf(t.MustColumn(c))
	}

	idxs := make([]int, t.Len())
	for i := range idxs {
		idxs[i] = i
	}
	sort.SliceStable(idxs, func(i, j int) bool {
		for _, cv := range colVals {
			a, b := cv.Index(idxs[i]), cv.Index(idxs[j])
			switch {
			case lessValue(a, b):
				return true
			case lessValue(b, a):
				return false
			}
		}
		return false
	})
	return t.Rows(idxs)
}

// CanOrder reports whether values of type t have a natural order
// understood by SortBy.
func CanOrder(t reflect.Type) bool {
	if t == timeType {
		return true
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return true
	}
	return false
}

var timeType = reflect.TypeOf(time.Time{})

func lessValue(a, b reflect.Value) bool {
	if a.Type() == timeType {
		return a.Interface().(time.Time).Before(b.Interface().(time.Time))
	}
	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.Int() < b.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return a.Uint() < b.Uint()
	case reflect.Float32, reflect.Float64:
		return a.Float() < b.Float()
	case reflect.String:
		return a.String() < b.String()
	}
	panic(fmt.Sprintf("cannot order values of type %s", a.Type()))
}
