// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package surface implements the classio display surface, rendering
// face region writes onto a 144x168 monochrome bitmap.
package surface

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freesans"

	"github.com/kortschak/classio/face"
)

// Screen dimensions.
const (
	Width  = 144
	Height = 168
)

var (
	background = color.Black
	foreground = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Screen returns a blank screen image.
func Screen() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, Width, Height))
	fill(img, background)
	return img
}

type alignment int

const (
	alignLeft alignment = iota
	alignRight
)

// textRegion is the placement of a text region.
type textRegion struct {
	rect     image.Rectangle
	font     *tinyfont.Font
	align    alignment
	baseline int16
}

var textRegions = map[face.Region]textRegion{
	face.RegionHour: {
		rect:     image.Rect(0, 30, 114, 74),
		font:     &freesans.Bold18pt7b,
		align:    alignRight,
		baseline: 34,
	},
	face.RegionMinute: {
		rect:     image.Rect(0, 74, 114, 118),
		font:     &freesans.Bold18pt7b,
		align:    alignRight,
		baseline: 34,
	},
	face.RegionBattery: {
		rect:     image.Rect(72, 10, 144, 28),
		font:     &freesans.Regular9pt7b,
		align:    alignRight,
		baseline: 14,
	},
	face.RegionConnectivity: {
		rect:     image.Rect(2, 10, 72, 28),
		font:     &freesans.Regular9pt7b,
		align:    alignLeft,
		baseline: 14,
	},
}

// Surface renders face writes onto an image. It owns the icon resources
// it draws.
type Surface struct {
	mu    sync.Mutex
	img      draw.Image
	icons    Icons
	presence *image.Gray

	// iconRect is the area covered by the current period icon.
	iconRect image.Rectangle
}

// New returns a Surface drawing onto img. It is an error for icons to
// lack a resource for any icon the face can show.
func New(img draw.Image, icons Icons) (*Surface, error) {
	for _, i := range []face.Icon{face.IconAM, face.IconPM} {
		if icons[i] == nil {
			return nil, fmt.Errorf("missing icon resource: %v", i)
		}
	}
	return &Surface{img: img, icons: icons, presence: presenceGlyph()}, nil
}

// Apply renders the writes in order. Apply stops at the first invalid
// write.
func (s *Surface) Apply(writes []face.Write) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range writes {
		var err error
		if w.IsIcon() {
			err = s.drawIcon(w)
		} else {
			err = s.drawText(w)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Surface) drawText(w face.Write) error {
	r, ok := textRegions[w.Region]
	if !ok {
		return fmt.Errorf("no text region for %v", w.Region)
	}
	dst := subDrawImage(s.img, r.rect)
	fill(dst, background)
	switch w.Text {
	case "":
		return nil
	case face.PresenceGlyph:
		if w.Region == face.RegionConnectivity {
			draw.Draw(dst, s.presence.Bounds(), s.presence, image.Point{}, draw.Src)
			return nil
		}
	}
	x := int16(0)
	if r.align == alignRight {
		_, width := tinyfont.LineWidth(r.font, w.Text)
		x = int16(r.rect.Dx()) - int16(width)
	}
	tinyfont.WriteLine(dst, r.font, x, r.baseline, w.Text, foreground)
	return nil
}

func (s *Surface) drawIcon(w face.Write) error {
	if w.Region != face.RegionPeriodIcon {
		return fmt.Errorf("icon %v written to text region %v", w.Icon, w.Region)
	}
	icon, ok := s.icons[w.Icon]
	if !ok {
		return fmt.Errorf("missing icon resource: %v", w.Icon)
	}
	if !s.iconRect.Empty() {
		fill(subDrawImage(s.img, s.iconRect), background)
	}
	b := icon.Bounds()
	s.iconRect = image.Rectangle{Min: w.Origin, Max: w.Origin.Add(b.Size())}
	draw.Draw(s.img, s.iconRect, icon, b.Min, draw.Src)
	return nil
}

// Snapshot returns a copy of the current surface image.
func (s *Surface) Snapshot() *image.Gray {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.img.Bounds()
	dst := image.NewGray(b)
	draw.Draw(dst, b, s.img, b.Min, draw.Src)
	return dst
}
