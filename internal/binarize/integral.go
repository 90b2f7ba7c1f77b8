package binarize

import (
	"image"

	"sudoku-reader/internal/raster"
)

// IntegralImage is a 2D prefix sum over per-pixel mean intensity.
// It is stored with one row and one column of zero padding so window sums
// need no edge cases.
type IntegralImage struct {
	width, height int
	sums          []int64
}

// NewIntegralImage builds the prefix sum of (R+G+B)/3 over img.
func NewIntegralImage(img image.Image) *IntegralImage {
	gray := raster.ToGray(img)
	w, h := gray.Bounds().Dx(), gray.Bounds().Dy()
	ii := &IntegralImage{
		width:  w,
		height: h,
		sums:   make([]int64, (w+1)*(h+1)),
	}

	stride := w + 1
	for y := 0; y < h; y++ {
		var rowSum int64
		for x := 0; x < w; x++ {
			rowSum += int64(gray.Pix[y*gray.Stride+x])
			ii.sums[(y+1)*stride+x+1] = ii.sums[y*stride+x+1] + rowSum
		}
	}
	return ii
}

// Sum returns the intensity sum over the inclusive rectangle [x0,x1] x [y0,y1].
// Coordinates must lie inside the image.
func (ii *IntegralImage) Sum(x0, y0, x1, y1 int) int64 {
	stride := ii.width + 1
	return ii.sums[(y1+1)*stride+x1+1] -
		ii.sums[y0*stride+x1+1] -
		ii.sums[(y1+1)*stride+x0] +
		ii.sums[y0*stride+x0]
}

// Value returns the mean intensity of a single pixel.
func (ii *IntegralImage) Value(x, y int) int64 {
	return ii.Sum(x, y, x, y)
}
