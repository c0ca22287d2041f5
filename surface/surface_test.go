// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package surface

import (
	"bytes"
	"image"
	"image/draw"
	"testing"

	"github.com/kortschak/classio/face"
)

// lit returns the number of non-black pixels of img within r.
func lit(img *image.Gray, r image.Rectangle) int {
	var n int
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.GrayAt(x, y).Y != 0 {
				n++
			}
		}
	}
	return n
}

func newSurface(t *testing.T) (*Surface, *image.Gray) {
	t.Helper()
	img := Screen()
	s, err := New(img, NewIcons())
	if err != nil {
		t.Fatalf("unexpected error creating surface: %v", err)
	}
	return s, img
}

func TestNewMissingIcon(t *testing.T) {
	icons := NewIcons()
	delete(icons, face.IconPM)
	_, err := New(Screen(), icons)
	if err == nil {
		t.Error("expected error for missing icon")
	}
}

func TestNewIcons(t *testing.T) {
	icons := NewIcons()
	am, pm := icons[face.IconAM], icons[face.IconPM]
	for _, icon := range []image.Image{am, pm} {
		if got := icon.Bounds().Size(); got != (image.Point{X: IconWidth, Y: IconHeight}) {
			t.Errorf("unexpected icon size: %v", got)
		}
	}
	if bytes.Equal(am.(*image.Gray).Pix, pm.(*image.Gray).Pix) {
		t.Error("AM and PM icons are identical")
	}
}

func TestMonochromeResources(t *testing.T) {
	icons := NewIcons()
	for name, img := range map[string]*image.Gray{
		"am":       icons[face.IconAM].(*image.Gray),
		"pm":       icons[face.IconPM].(*image.Gray),
		"presence": presenceGlyph(),
	} {
		var n int
		for _, p := range img.Pix {
			switch p {
			case 0:
			case 0xff:
				n++
			default:
				t.Errorf("unexpected gray level in %s: %#x", name, p)
			}
		}
		if n == 0 {
			t.Errorf("no pixels set in %s", name)
		}
	}
	if got := presenceGlyph().Bounds().Size(); got != (image.Point{X: glyphWidth, Y: glyphHeight}) {
		t.Errorf("unexpected presence glyph size: %v", got)
	}
}

func TestApplyText(t *testing.T) {
	for region, r := range textRegions {
		t.Run(region.String(), func(t *testing.T) {
			s, img := newSurface(t)
			err := s.Apply([]face.Write{{Region: region, Text: "12"}})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			total := lit(img, img.Bounds())
			inside := lit(img, r.rect)
			if inside == 0 {
				t.Errorf("no pixels drawn in %v", region)
			}
			if total != inside {
				t.Errorf("%d pixels drawn outside %v", total-inside, region)
			}

			// Clearing the region.
			err = s.Apply([]face.Write{{Region: region, Text: " "}})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if n := lit(img, img.Bounds()); n != 0 {
				t.Errorf("%d pixels remain after blank write to %v", n, region)
			}
		})
	}
}

func TestApplyConnectivityGlyph(t *testing.T) {
	s, img := newSurface(t)
	r := textRegions[face.RegionConnectivity].rect
	err := s.Apply([]face.Write{{Region: face.RegionConnectivity, Text: face.PresenceGlyph}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	runeArea := image.Rectangle{Min: r.Min, Max: r.Min.Add(image.Point{X: 10, Y: 16})}
	if n := lit(img, runeArea); n == 0 {
		t.Error("no presence glyph drawn")
	}
	if total, n := lit(img, img.Bounds()), lit(img, runeArea); total != n {
		t.Errorf("%d glyph pixels outside glyph area", total-n)
	}
	err = s.Apply([]face.Write{{Region: face.RegionConnectivity, Text: face.BlankGlyph}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := lit(img, img.Bounds()); n != 0 {
		t.Errorf("%d pixels remain after disconnection", n)
	}
}

func TestApplyIcon(t *testing.T) {
	s, img := newSurface(t)
	am := image.Rectangle{Min: face.IconOrigin, Max: face.IconOrigin.Add(image.Point{X: IconWidth, Y: IconHeight})}

	err := s.Apply([]face.Write{{Region: face.RegionPeriodIcon, Icon: face.IconAM, Origin: face.IconOrigin}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total, n := lit(img, img.Bounds()), lit(img, am); n == 0 || total != n {
		t.Errorf("unexpected icon placement: %d of %d pixels in icon area", n, total)
	}
	amPix := s.Snapshot().SubImage(am).(*image.Gray)

	err = s.Apply([]face.Write{{Region: face.RegionPeriodIcon, Icon: face.IconPM, Origin: face.IconOrigin}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pmPix := s.Snapshot().SubImage(am).(*image.Gray)
	if equalGray(amPix, pmPix) {
		t.Error("icon not replaced")
	}

	// Moving the icon clears the old placement.
	moved := image.Point{X: 0, Y: 140}
	err = s.Apply([]face.Write{{Region: face.RegionPeriodIcon, Icon: face.IconPM, Origin: moved}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := lit(img, am); n != 0 {
		t.Errorf("%d pixels remain at old icon placement", n)
	}
}

func equalGray(a, b *image.Gray) bool {
	if a.Bounds() != b.Bounds() {
		return false
	}
	r := a.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if a.GrayAt(x, y) != b.GrayAt(x, y) {
				return false
			}
		}
	}
	return true
}

var applyErrorTests = []struct {
	name  string
	write face.Write
}{
	{name: "text_to_icon_region", write: face.Write{Region: face.RegionPeriodIcon, Text: "AM"}},
	{name: "icon_to_text_region", write: face.Write{Region: face.RegionHour, Icon: face.IconAM}},
	{name: "unknown_icon", write: face.Write{Region: face.RegionPeriodIcon, Icon: face.Icon(9)}},
	{name: "unknown_region", write: face.Write{Region: face.Region(9), Text: "1"}},
}

func TestApplyError(t *testing.T) {
	for _, test := range applyErrorTests {
		t.Run(test.name, func(t *testing.T) {
			s, _ := newSurface(t)
			err := s.Apply([]face.Write{test.write})
			if err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestApplyIdempotent(t *testing.T) {
	c := face.NewController(nil)
	writes := c.Initial(
		face.ClockSample{Hour: 22, Minute: 48},
		face.BatteryState{Percent: 66},
		face.ConnectivityState{Connected: true},
	)
	s, _ := newSurface(t)
	if err := s.Apply(writes); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first := s.Snapshot()
	if err := s.Apply(writes); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second := s.Snapshot()
	if !equalGray(first, second) {
		t.Error("repeated writes changed the display")
	}
	if lit(first, first.Bounds()) == 0 {
		t.Error("no pixels drawn for initial display")
	}
}

// plain is a draw.Image without a SubImage method.
type plain struct{ draw.Image }

func TestSubDrawImagePlain(t *testing.T) {
	img := Screen()
	r := image.Rect(10, 10, 20, 20)
	dst := subDrawImage(plain{img}, r)
	if got := dst.Bounds(); got != image.Rect(0, 0, 10, 10) {
		t.Errorf("unexpected bounds: %v", got)
	}
	fill(dst, foreground)
	for _, p := range []image.Point{{X: -5, Y: 0}, {X: 30, Y: 0}, {X: 0, Y: -1}, {X: 10, Y: 10}} {
		dst.Set(p.X, p.Y, foreground)
	}
	if n := lit(img, img.Bounds()); n != 100 {
		t.Errorf("unexpected number of pixels set: got:%d want:100", n)
	}
}
