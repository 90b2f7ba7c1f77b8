package hough

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"sudoku-reader/pkg/geometry"
)

// ErrParallelLines is returned when two lines have no usable intersection.
var ErrParallelLines = errors.New("lines do not intersect")

// Line is a line in normal form relative to an accumulator: R is the radius
// bucket (offset by the accumulator's hough height) and Theta the normal angle.
type Line struct {
	Theta float64
	R     int
	Votes int
}

// String returns a debug string representation.
func (l Line) String() string {
	return fmt.Sprintf("Line<theta=%.3f r=%d votes=%d>", l.Theta, l.R, l.Votes)
}

// Frame describes the raster a set of lines was detected in. Every position,
// ordering and intersection of lines is computed relative to a Frame.
type Frame struct {
	Width  int
	Height int
}

func (f Frame) houghHeight() int {
	return int(math.Sqrt2*float64(max(f.Width, f.Height))) / 2
}

// center uses integer halves so that the centre row and column are exact pixels.
func (f Frame) center() (float64, float64) {
	return float64(f.Width / 2), float64(f.Height / 2)
}

// IsVertical reports whether the line is closer to vertical than horizontal.
func IsVertical(l Line) bool {
	return l.Theta < math.Pi*0.25 || l.Theta > math.Pi*0.75
}

// rho returns the signed distance of the line from the frame centre.
func (f Frame) rho(l Line) float64 {
	return float64(l.R - f.houghHeight())
}

// Position returns the screen position of a line: the x where a
// near-vertical line crosses the centre row, or the y where a
// near-horizontal line crosses the centre column.
func (f Frame) Position(l Line) int {
	cx, cy := f.center()
	sin, cos := math.Sincos(l.Theta)
	if IsVertical(l) {
		y := float64(f.Height / 2)
		return int(math.Round((f.rho(l)-(y-cy)*sin)/cos + cx))
	}
	x := float64(f.Width / 2)
	return int(math.Round((f.rho(l)-(x-cx)*cos)/sin + cy))
}

// Compare orders two lines by screen position. It is negative when a lies
// above (or left of) b.
func (f Frame) Compare(a, b Line) int {
	return f.Position(a) - f.Position(b)
}

// Sort orders lines in place by screen position.
func (f Frame) Sort(lines []Line) {
	slices.SortStableFunc(lines, f.Compare)
}

// Intersect returns the raster point where two lines cross. Near-parallel
// pairs and crossings outside the raster give ErrParallelLines.
func (f Frame) Intersect(a, b Line) (geometry.Point2D, error) {
	sa, ca := math.Sincos(a.Theta)
	sb, cb := math.Sincos(b.Theta)

	det := ca*sb - sa*cb
	if math.Abs(det) < 1e-6 {
		return geometry.Point2D{}, fmt.Errorf("%w: %v and %v", ErrParallelLines, a, b)
	}

	ra, rb := f.rho(a), f.rho(b)
	cx, cy := f.center()
	p := geometry.Point2D{
		X: (ra*sb-rb*sa)/det + cx,
		Y: (ca*rb-cb*ra)/det + cy,
	}

	const slack = 1.0
	if !p.IsFinite() || p.X < -slack || p.Y < -slack ||
		p.X > float64(f.Width)+slack || p.Y > float64(f.Height)+slack {
		return geometry.Point2D{}, fmt.Errorf("%w: crossing %v outside %dx%d", ErrParallelLines, p, f.Width, f.Height)
	}
	return p, nil
}
