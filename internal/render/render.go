// Package render draws synthetic puzzle rasters: grids, straight strokes and
// bitmap-font digits. The recognizer's tests use it for ground truth and
// the training tool uses it to bootstrap templates without sample photos.
package render

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"sudoku-reader/internal/raster"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Options describes a rendered puzzle page.
type Options struct {
	Margin    int // white space around the grid
	Cell      int // cell side in pixels
	Thickness int // grid line thickness
	Scale     int // integer glyph magnification
}

// DefaultOptions renders a 9x9 grid of 40px cells with 3px lines.
func DefaultOptions() Options {
	return Options{Margin: 50, Cell: 40, Thickness: 3, Scale: 2}
}

// Canvas returns a blank background raster.
func Canvas(width, height int) *image.Gray {
	return raster.Filled(width, height, raster.Background)
}

// Rect fills r with ink.
func Rect(img *image.Gray, r image.Rectangle) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Pix[img.PixOffset(x, y)] = raster.Ink
		}
	}
}

// HLine draws a horizontal stroke starting at row y, thickness rows thick.
func HLine(img *image.Gray, x0, x1, y, thickness int) {
	Rect(img, image.Rect(x0, y, x1, y+thickness))
}

// VLine draws a vertical stroke starting at column x, thickness columns thick.
func VLine(img *image.Gray, x, y0, y1, thickness int) {
	Rect(img, image.Rect(x, y0, x+thickness, y1))
}

// Stroke draws a straight segment of the given length from (x0, y0) in
// direction angle (radians, y down so positive turns clockwise).
func Stroke(img *image.Gray, x0, y0 float64, angle float64, length, thickness int) {
	sin, cos := math.Sincos(angle)
	for t := 0; t <= length; t++ {
		for k := 0; k < thickness; k++ {
			// Offset along the normal so thick strokes stay solid.
			x := x0 + float64(t)*cos - float64(k)*sin
			y := y0 + float64(t)*sin + float64(k)*cos
			p := image.Pt(int(math.Round(x)), int(math.Round(y)))
			if p.In(img.Bounds()) {
				img.Pix[img.PixOffset(p.X, p.Y)] = raster.Ink
			}
		}
	}
}

// Grid draws the ten horizontal and ten vertical lines of a 9x9 lattice whose
// top-left line starts at origin. Lines listed in skipRows/skipCols (0..9)
// are left out.
func Grid(img *image.Gray, origin image.Point, cell, thickness int, skipRows, skipCols []int) {
	span := 9*cell + thickness
	for i := 0; i <= 9; i++ {
		if !contains(skipRows, i) {
			HLine(img, origin.X, origin.X+span, origin.Y+i*cell, thickness)
		}
		if !contains(skipCols, i) {
			VLine(img, origin.X+i*cell, origin.Y, origin.Y+span, thickness)
		}
	}
}

// Glyph renders digit d with the 7x13 bitmap font magnified by scale.
func Glyph(d, scale int) *image.Gray {
	face := basicfont.Face7x13
	small := Canvas(face.Advance, face.Height)
	drawer := font.Drawer{
		Dst:  small,
		Src:  image.NewUniform(color.Gray{Y: raster.Ink}),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	drawer.DrawString(strconv.Itoa(d))

	scale = max(scale, 1)
	b := small.Bounds()
	out := Canvas(b.Dx()*scale, b.Dy()*scale)
	for y := 0; y < out.Bounds().Dy(); y++ {
		for x := 0; x < out.Bounds().Dx(); x++ {
			out.Pix[y*out.Stride+x] = small.Pix[(y/scale)*small.Stride+x/scale]
		}
	}
	return out
}

// Digit draws digit d centred inside cell. Zero draws nothing.
func Digit(img *image.Gray, d int, cell image.Rectangle, scale int) {
	if d == 0 {
		return
	}
	g := Glyph(d, scale)
	gb := g.Bounds()
	x0 := cell.Min.X + (cell.Dx()-gb.Dx())/2
	y0 := cell.Min.Y + (cell.Dy()-gb.Dy())/2
	for y := 0; y < gb.Dy(); y++ {
		for x := 0; x < gb.Dx(); x++ {
			p := image.Pt(x0+x, y0+y)
			if raster.IsInk(g.Pix[y*g.Stride+x]) && p.In(img.Bounds()) {
				img.Pix[img.PixOffset(p.X, p.Y)] = raster.Ink
			}
		}
	}
}

// Puzzle renders a full page: a 9x9 grid with the given digits, [row][col].
func Puzzle(digits [9][9]int, o Options) *image.Gray {
	size := 2*o.Margin + 9*o.Cell + o.Thickness
	img := Canvas(size, size)
	origin := image.Pt(o.Margin, o.Margin)
	Grid(img, origin, o.Cell, o.Thickness, nil, nil)
	for row := 0; row < 9; row++ {
		for col := 0; col < 9; col++ {
			Digit(img, digits[row][col], CellRect(origin, o, row, col), o.Scale)
		}
	}
	return img
}

// CellRect returns the interior of cell (row, col) of a grid drawn at origin.
func CellRect(origin image.Point, o Options, row, col int) image.Rectangle {
	x := origin.X + col*o.Cell + o.Thickness
	y := origin.Y + row*o.Cell + o.Thickness
	return image.Rect(x, y, origin.X+(col+1)*o.Cell, origin.Y+(row+1)*o.Cell)
}

// Cell renders a single size x size cell holding digit d centred on
// background.
func Cell(d, size, scale int) *image.Gray {
	img := Canvas(size, size)
	Digit(img, d, img.Bounds(), scale)
	return img
}

func contains(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
