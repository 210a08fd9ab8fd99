// Copyright 2026 The plotforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"image/color"

	"github.com/aclements/go-gg/palette"
)

// continuousPalette is the default gradient for continuous color and
// fill scales (the viridis anchors, dark blue through yellow).
var continuousPalette palette.Continuous = palette.RGBGradient{
	Colors: []color.RGBA{
		{0x44, 0x01, 0x54, 0xff},
		{0x3b, 0x52, 0x8b, 0xff},
		{0x21, 0x91, 0x8c, 0xff},
		{0x5e, 0xc9, 0x62, 0xff},
		{0xfd, 0xe7, 0x25, 0xff},
	},
}

// qualitativePalette is the default level → color assignment for
// discrete color and fill scales. Levels beyond its length cycle.
var qualitativePalette = []color.RGBA{
	{0xf8, 0x76, 0x6d, 0xff},
	{0x00, 0xbf, 0xc4, 0xff},
	{0x7c, 0xae, 0x00, 0xff},
	{0xc7, 0x7c, 0xff, 0xff},
	{0xd8, 0x90, 0x00, 0xff},
	{0x00, 0xb0, 0xf6, 0xff},
	{0x00, 0xbf, 0x7d, 0xff},
	{0xff, 0x62, 0xbc, 0xff},
}

func levelColor(i int) color.Color {
	return qualitativePalette[i%len(qualitativePalette)]
}

// parseColor converts a "#rrggbb" theme color to a color.Color. Empty
// or malformed strings return nil (unset).
func parseColor(s string) color.Color {
	if len(s) != 7 || s[0] != '#' {
		return nil
	}
	hex := func(c byte) (uint8, bool) {
		switch {
		case '0' <= c && c <= '9':
			return c - '0', true
		case 'a' <= c && c <= 'f':
			return c - 'a' + 10, true
		case 'A' <= c && c <= 'F':
			return c - 'A' + 10, true
		}
		return 0, false
	}
	var v [3]uint8
	for i := 0; i < 3; i++ {
		hi, ok1 := hex(s[1+2*i])
		lo, ok2 := hex(s[2+2*i])
		if !ok1 || !ok2 {
			return nil
		}
		v[i] = hi<<4 | lo
	}
	return color.RGBA{v[0], v[1], v[2], 0xff}
}
