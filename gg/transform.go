// Copyright 2026 The plotforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"fmt"
	"math"
)

// A Trans is a scale transform. It is applied to data values before
// scale training, so a log scale trains on already-logged values, and
// its inverse recovers data values for break labels.
type Trans int

const (
	TransIdentity Trans = iota
	TransLog10
	TransLog2
	TransLn
	TransSqrt
	TransReverse
)

func (t Trans) String() string {
	switch t {
	case TransIdentity:
		return "identity"
	case TransLog10:
		return "log10"
	case TransLog2:
		return "log2"
	case TransLn:
		return "ln"
	case TransSqrt:
		return "sqrt"
	case TransReverse:
		return "reverse"
	}
	return fmt.Sprintf("Trans(%d)", int(t))
}

// Forward maps a data value into transformed space. Values outside the
// transform's domain (for example non-positive values under log) map
// to NaN, which scale training then skips.
func (t Trans) Forward(x float64) float64 {
	switch t {
	case TransIdentity:
		return x
	case TransLog10:
		if x <= 0 {
			return math.NaN()
		}
		return math.Log10(x)
	case TransLog2:
		if x <= 0 {
			return math.NaN()
		}
		return math.Log2(x)
	case TransLn:
		if x <= 0 {
			return math.NaN()
		}
		return math.Log(x)
	case TransSqrt:
		if x < 0 {
			return math.NaN()
		}
		return math.Sqrt(x)
	case TransReverse:
		return -x
	}
	panic(fmt.Sprintf("unknown transform %v", t))
}

// Inverse maps a transformed value back to data space. For values in
// the transform's range, Inverse(Forward(x)) == x up to floating point
// error.
func (t Trans) Inverse(y float64) float64 {
	switch t {
	case TransIdentity:
		return y
	case TransLog10:
		return math.Pow(10, y)
	case TransLog2:
		return math.Exp2(y)
	case TransLn:
		return math.Exp(y)
	case TransSqrt:
		return y * y
	case TransReverse:
		return -y
	}
	panic(fmt.Sprintf("unknown transform %v", t))
}

// logBase returns the log base of t, or 0 if t is not logarithmic.
func (t Trans) logBase() float64 {
	switch t {
	case TransLog10:
		return 10
	case TransLog2:
		return 2
	case TransLn:
		return math.E
	}
	return 0
}

// LogTicks holds log-scale tick positions in data (untransformed)
// space.
type LogTicks struct {
	// Major ticks sit at integer powers of the base.
	Major []float64

	// Mid ticks sit at the 2x and 5x multiples between majors.
	Mid []float64

	// Minor ticks sit at the remaining integer multiples.
	Minor []float64
}

// LogBreaks derives tick positions for a log scale with the given base
// over the data-space range [min, max]. Major ticks fall on integer
// powers of base, mid ticks on the 2x and 5x multiples between powers,
// and minor ticks on all other integer multiples. Ticks even
// fractionally outside [min, max] are excluded.
func LogBreaks(base, min, max float64) LogTicks {
	var lt LogTicks
	if !(min > 0) || !(max >= min) || base <= 1 {
		return lt
	}

	in := func(x float64) bool { return min <= x && x <= max }

	lo := int(math.Floor(math.Log(min) / math.Log(base)))
	hi := int(math.Ceil(math.Log(max) / math.Log(base)))
	for e := lo; e <= hi; e++ {
		p := math.Pow(base, float64(e))
		if in(p) {
			lt.Major = append(lt.Major, p)
		}
		// Integer multiples of this power up to the next one.
		for m := 2; float64(m) < base; m++ {
			x := p * float64(m)
			if !in(x) {
				continue
			}
			if m == 2 || m == 5 {
				lt.Mid = append(lt.Mid, x)
			} else {
				lt.Minor = append(lt.Minor, x)
			}
		}
	}
	return lt
}
