// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package surface

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/kortschak/classio/face"
)

// Icons holds the icon resources available to a Surface.
type Icons map[face.Icon]image.Image

// Icon dimensions. The icon sits in the margin to the right of the
// hour and minute text.
const (
	IconWidth  = 26
	IconHeight = 15
)

// NewIcons returns the AM and PM period icons.
func NewIcons() Icons {
	return Icons{
		face.IconAM: periodIcon("AM"),
		face.IconPM: periodIcon("PM"),
	}
}

// periodIcon renders label in a rounded box, white on black.
func periodIcon(label string) image.Image {
	dc := gg.NewContext(IconWidth, IconHeight)
	dc.SetColor(color.Black)
	dc.Clear()
	dc.SetColor(color.White)
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(0.5, 0.5, IconWidth-1, IconHeight-1, 3)
	dc.Stroke()
	dc.SetFontFace(basicfont.Face7x13)
	dc.DrawStringAnchored(label, IconWidth/2, IconHeight/2, 0.5, 0.35)
	return monochrome(dc.Image())
}

// Presence glyph dimensions.
const (
	glyphWidth  = 10
	glyphHeight = 16
)

// presenceGlyph renders the Bluetooth rune shown while the peer is
// connected.
func presenceGlyph() *image.Gray {
	const (
		mid    = 4.5
		top    = 1.5
		bottom = 14.5
		left   = 0.5
		right  = 8.5
	)
	dc := gg.NewContext(glyphWidth, glyphHeight)
	dc.SetColor(color.Black)
	dc.Clear()
	dc.SetColor(color.White)
	dc.SetLineWidth(1.5)
	dc.MoveTo(left, top+4)
	dc.LineTo(right, bottom-4)
	dc.LineTo(mid, bottom)
	dc.LineTo(mid, top)
	dc.LineTo(right, top+4)
	dc.LineTo(left, bottom-4)
	dc.Stroke()
	return monochrome(dc.Image())
}
