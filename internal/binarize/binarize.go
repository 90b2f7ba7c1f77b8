// Package binarize turns a photograph into a two-level ink/background raster
// using a local mean threshold computed from an integral image.
package binarize

import (
	"image"

	"sudoku-reader/internal/raster"
)

// Params controls the adaptive threshold.
type Params struct {
	// Window is the side of the square neighbourhood (odd).
	Window int `toml:"window"`
	// Ratio scales the local mean: a pixel brighter than Ratio*mean is background.
	Ratio float64 `toml:"ratio"`
}

// DefaultParams returns the 11x11 window and 0.9 ratio tuned for printed grids.
func DefaultParams() Params {
	return Params{
		Window: 11,
		Ratio:  0.9,
	}
}

// Binarize returns a raster of the same size as img whose pixels are either
// raster.Ink or raster.Background.
//
// Pixels without a full window inside the image use a threshold of zero, so
// only fully black border pixels come out as ink there.
func Binarize(img image.Image, p Params) *image.Gray {
	if p.Window < 1 {
		p.Window = DefaultParams().Window
	}
	half := p.Window / 2
	area := int64(p.Window * p.Window)

	ii := NewIntegralImage(img)
	w, h := ii.width, ii.height
	out := image.NewGray(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var threshold int64
			if y-half >= 0 && y+half < h && x-half >= 0 && x+half < w {
				threshold = ii.Sum(x-half, y-half, x+half, y+half) / area
			}

			v := raster.Ink
			if float64(ii.Value(x, y)) > float64(threshold)*p.Ratio {
				v = raster.Background
			}
			out.Pix[y*out.Stride+x] = v
		}
	}
	return out
}
