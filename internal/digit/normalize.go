// Package digit is the nearest-template digit classifier. Cells are reduced
// to the bounding box of their central ink, scaled to a fixed template size
// and compared against one averaged template per digit by sum of squared
// differences. Digit 0 stands for an empty cell.
package digit

import (
	"image"

	"sudoku-reader/internal/raster"
)

const (
	// TemplateSize is the side of a normalized digit raster.
	TemplateSize = 24

	// marginRatio is the fraction of each scan line ignored at both ends so
	// that grid-line bleed at the cell border does not stop the scan.
	marginRatio = 0.15
)

// Normalize crops cell to the ink around its centre and scales the result to
// TemplateSize x TemplateSize.
//
// From the centre, each side moves outward one row or column at a time until
// a scan line (less the margins) holds no ink; the last inked line is the
// edge on that side. The crop includes both edges, so a tight
// TemplateSize-sized input is returned unchanged.
func Normalize(cell image.Image) *image.Gray {
	img := raster.ToGray(cell)
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w == 0 || h == 0 {
		return raster.Filled(TemplateSize, TemplateSize, raster.Background)
	}

	marginX := int(float64(w) * marginRatio)
	marginY := int(float64(h) * marginRatio)

	rowClear := func(y int) bool {
		for x := marginX; x < w-marginX; x++ {
			if raster.IsInk(img.Pix[y*img.Stride+x]) {
				return false
			}
		}
		return true
	}
	colClear := func(x int) bool {
		for y := marginY; y < h-marginY; y++ {
			if raster.IsInk(img.Pix[y*img.Stride+x]) {
				return false
			}
		}
		return true
	}

	up := scan(h/2-1, -1, 0, rowClear)
	down := scan(h/2+1, 1, h-1, rowClear)
	left := scan(w/2-1, -1, 0, colClear)
	right := scan(w/2+1, 1, w-1, colClear)

	up, left = max(up, 0), max(left, 0)
	down, right = min(down, h-1), min(right, w-1)

	box := raster.Crop(img, image.Rect(left, up, right+1, down+1))
	return raster.Resize(box, TemplateSize, TemplateSize)
}

// scan steps from start in direction step while it can move past limit,
// stopping on the line before the first clear one.
func scan(start, step, limit int, isClear func(int) bool) int {
	pos := start
	for pos*step < limit*step {
		pos += step
		if isClear(pos) {
			return pos - step
		}
	}
	return pos
}
