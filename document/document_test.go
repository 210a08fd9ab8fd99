// Copyright 2026 The plotforge Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package document

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyleCSS(t *testing.T) {
	s := Style{
		Stroke:      color.RGBA{0x88, 0x88, 0x88, 0xff},
		StrokeWidth: 2,
		Fill:        color.RGBA{0xeb, 0xeb, 0xeb, 0xff},
	}
	assert.Equal(t, "stroke:#888888;stroke-width:2;fill:#ebebeb", s.CSS())

	// Unset fill renders as none for shapes.
	assert.Equal(t, "fill:none", Style{}.CSS())

	// Transparent fill renders as none.
	assert.Contains(t, Style{Fill: color.Transparent}.CSS(), "fill:none")
}

func TestWalk(t *testing.T) {
	root := &Group{}
	panel := root.NewGroup("gg-panel-0-0", "")
	panel.Append(&Circle{X: 1, Y: 2, R: 3}, &Text{S: "hi"})

	var n int
	Walk(root, func(Node) { n++ })
	assert.Equal(t, 4, n)
}

func TestWriteSVG(t *testing.T) {
	d := New(200, 100)
	panel := d.Root.NewGroup("gg-panel-0-0", "")
	panel.Clip = ClipRect{X: 10, Y: 10, W: 180, H: 80, Set: true}
	panel.Append(
		&Rect{X: 10, Y: 10, W: 180, H: 80, Class: "gg-bar",
			Style: Style{Fill: color.RGBA{0x4c, 0x72, 0xb0, 0xff}}},
		&Circle{X: 50, Y: 50, R: 2, Class: "gg-point",
			Style: Style{Fill: color.Black}},
		&Text{X: 100, Y: 95, S: "label", Class: "gg-axis-label",
			Style: Style{Anchor: "middle", DY: "1em"}},
	)

	var buf bytes.Buffer
	require.NoError(t, d.WriteSVG(&buf, 14))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, `id="gg-panel-0-0"`)
	assert.Contains(t, out, `class="gg-point"`)
	assert.Contains(t, out, `class="gg-bar"`)
	assert.Contains(t, out, `text-anchor="middle"`)
	assert.Contains(t, out, "clip-path=")
	assert.Contains(t, out, "</svg>")
	// Text must not pick up the shape default fill:none.
	assert.NotContains(t, out, `class="gg-axis-label" style="fill:none"`)
}
