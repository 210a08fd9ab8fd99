// Copyright 2026 The plotforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Layout measures text with the Go Regular face. Real output is
// styled by the viewer's fonts, so these are estimates used only to
// reserve space for axis labels, titles, and legends.

var textFont struct {
	once  sync.Once
	font  *sfnt.Font
	mu    sync.Mutex
	faces map[float64]font.Face
}

func face(size float64) font.Face {
	textFont.once.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			Warning.Printf("cannot parse layout font: %v", err)
			return
		}
		textFont.font = f
		textFont.faces = make(map[float64]font.Face)
	})
	if textFont.font == nil {
		return nil
	}
	textFont.mu.Lock()
	defer textFont.mu.Unlock()
	if f, ok := textFont.faces[size]; ok {
		return f
	}
	f, err := opentype.NewFace(textFont.font, &opentype.FaceOptions{
		Size: size, DPI: 72, Hinting: font.HintingNone,
	})
	if err != nil {
		Warning.Printf("cannot build %gpx layout face: %v", size, err)
		return nil
	}
	textFont.faces[size] = f
	return f
}

// textWidth estimates the rendered width of s at the given pixel
// size.
func textWidth(s string, size float64) float64 {
	f := face(size)
	if f == nil {
		// Crude fallback if the face is unavailable.
		return 0.6 * size * float64(len(s))
	}
	return float64(font.MeasureString(f, s)) / 64
}

// textHeight estimates the line height at the given pixel size.
func textHeight(size float64) float64 {
	f := face(size)
	if f == nil {
		return size * 1.2
	}
	m := f.Metrics()
	return float64(m.Height) / 64
}
