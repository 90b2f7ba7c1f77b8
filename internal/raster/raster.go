// Package raster holds the single-channel image helpers shared by the
// recognition stages: conversion, ink tests, cropping and resizing.
package raster

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

const (
	// Ink is the value of a foreground pixel in a two-level raster.
	Ink uint8 = 0
	// Background is the value of a background pixel in a two-level raster.
	Background uint8 = 255

	inkCutoff = 128
)

// IsInk reports whether an intensity counts as ink. Interpolated rasters
// (rotated, rectified, resized) are split at mid-grey.
func IsInk(v uint8) bool {
	return v < inkCutoff
}

// Mean returns the channel mean (R+G+B)/3 of a color in 8-bit range.
func Mean(c color.Color) uint8 {
	r, g, b, _ := c.RGBA()
	return uint8(((r >> 8) + (g >> 8) + (b >> 8)) / 3)
}

// ToGray converts any image to a zero-origin *image.Gray using the channel
// mean. Gray inputs are copied so callers never share buffers with the source.
func ToGray(img image.Image) *image.Gray {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))

	if g, ok := img.(*image.Gray); ok {
		for y := 0; y < h; y++ {
			src := g.Pix[g.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
			copy(out.Pix[y*out.Stride:y*out.Stride+w], src[:w])
		}
		return out
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Pix[y*out.Stride+x] = Mean(img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return out
}

// Crop copies the part of img inside r into a new zero-origin raster.
// The rectangle is clipped to the image bounds.
func Crop(img *image.Gray, r image.Rectangle) *image.Gray {
	r = r.Intersect(img.Bounds())
	out := image.NewGray(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := 0; y < r.Dy(); y++ {
		off := img.PixOffset(r.Min.X, r.Min.Y+y)
		copy(out.Pix[y*out.Stride:y*out.Stride+r.Dx()], img.Pix[off:off+r.Dx()])
	}
	return out
}

// Resize scales img to width x height with Catmull-Rom interpolation.
// A same-size request returns an exact copy.
func Resize(img *image.Gray, width, height int) *image.Gray {
	bounds := img.Bounds()
	if bounds.Dx() == width && bounds.Dy() == height {
		return ToGray(img)
	}
	out := image.NewGray(image.Rect(0, 0, width, height))
	if bounds.Empty() {
		fill(out, Background)
		return out
	}
	draw.CatmullRom.Scale(out, out.Bounds(), img, bounds, draw.Src, nil)
	return out
}

// Filled returns a width x height raster set to v.
func Filled(width, height int, v uint8) *image.Gray {
	out := image.NewGray(image.Rect(0, 0, width, height))
	fill(out, v)
	return out
}

func fill(img *image.Gray, v uint8) {
	for i := range img.Pix {
		img.Pix[i] = v
	}
}
