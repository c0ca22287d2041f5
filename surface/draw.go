// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package surface

import (
	"image"
	"image/color"
	"image/draw"
)

type subImager interface {
	draw.Image
	SubImage(image.Rectangle) image.Image
}

// subDrawImage returns a view of rect within img addressed from the
// origin. Writes outside rect are discarded.
func subDrawImage(img draw.Image, rect image.Rectangle) view {
	if s, ok := img.(subImager); ok {
		return view{
			Image:  s.SubImage(rect).(draw.Image),
			offset: rect.Min,
		}
	}
	return view{
		Image:  clipped{Image: img, rect: rect.Intersect(img.Bounds())},
		offset: rect.Min,
	}
}

// view is a region of an image translated to the origin. It is also
// a tinyfont.Displayer so text can be written into the region.
type view struct {
	draw.Image
	offset image.Point
}

func (v view) Bounds() image.Rectangle {
	return v.Image.Bounds().Sub(v.offset)
}

func (v view) Set(x, y int, c color.Color) {
	v.Image.Set(x+v.offset.X, y+v.offset.Y, c)
}

func (v view) At(x, y int) color.Color {
	return v.Image.At(x+v.offset.X, y+v.offset.Y)
}

func (v view) SetPixel(x, y int16, c color.RGBA) { v.Set(int(x), int(y), c) }

func (v view) Size() (x, y int16) {
	b := v.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (v view) Display() error { return nil }

// clipped restricts writes to rect for images without SubImage.
type clipped struct {
	draw.Image
	rect image.Rectangle
}

func (i clipped) Bounds() image.Rectangle { return i.rect }

func (i clipped) Set(x, y int, c color.Color) {
	if (image.Point{X: x, Y: y}).In(i.rect) {
		i.Image.Set(x, y, c)
	}
}

// fill sets every pixel of img to c.
func fill(img draw.Image, c color.Color) {
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// monochrome returns img as a two level gray image, thresholding
// antialiased edges at mid gray.
func monochrome(img image.Image) *image.Gray {
	b := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	for i, p := range dst.Pix {
		if p >= 0x80 {
			dst.Pix[i] = 0xff
		} else {
			dst.Pix[i] = 0
		}
	}
	return dst
}
