// Package grid reconstructs the ten horizontal and ten vertical lines of a
// Sudoku grid from a deskewed binary image and rectifies the grid to a square.
package grid

import (
	"errors"
	"fmt"

	"sudoku-reader/internal/hough"
	"sudoku-reader/pkg/geometry"
)

var (
	// ErrInsufficientGridLines is returned when ten lines per axis cannot be
	// assembled from the detected lines.
	ErrInsufficientGridLines = errors.New("insufficient grid lines")

	// ErrDegenerateIntersection is returned when two boundary lines do not
	// cross inside the image.
	ErrDegenerateIntersection = errors.New("degenerate grid corner")
)

// Lines is the number of grid lines per axis.
const Lines = 10

// Params controls grid reconstruction.
type Params struct {
	ThresholdRatio float64     `toml:"threshold_ratio"`  // fraction of the strongest line's votes
	Bands          hough.Bands `toml:"bands"`            // horizontal/vertical/diagonal split
	MinCellSpacing float64     `toml:"min_cell_spacing"` // smallest seed gap in pixels
	SquareRatio    float64     `toml:"square_ratio"`     // vertical seed gap relative to horizontal
	Tolerance      float64     `toml:"tolerance"`        // accepted deviation from the mean spacing
	OutputSize     int         `toml:"output_size"`      // side of the rectified raster
	ThetaSteps     int         `toml:"theta_steps"`
}

// DefaultParams returns the standard grid parameters.
func DefaultParams() Params {
	return Params{
		ThresholdRatio: 0.5,
		Bands:          hough.GridBands,
		MinCellSpacing: 30,
		SquareRatio:    0.8,
		Tolerance:      0.2,
		OutputSize:     400,
		ThetaSteps:     hough.DefaultThetaSteps,
	}
}

// Grid is a reconstructed puzzle grid in image coordinates.
type Grid struct {
	TopLeft, TopRight       geometry.Point2D
	BottomLeft, BottomRight geometry.Point2D

	// Boundary lines.
	Top, Bottom, Left, Right hough.Line

	// Screen positions of the ten rows and columns, top to bottom and left to
	// right. Lines that were not detected are interpolated.
	Rows [Lines]int
	Cols [Lines]int
}

// Corners returns the corners in rectification order: TL, TR, BR, BL.
func (g *Grid) Corners() [4]geometry.Point2D {
	return [4]geometry.Point2D{g.TopLeft, g.TopRight, g.BottomRight, g.BottomLeft}
}

// String returns a debug string representation.
func (g *Grid) String() string {
	return fmt.Sprintf("Grid<tl=(%.1f,%.1f) tr=(%.1f,%.1f) bl=(%.1f,%.1f) br=(%.1f,%.1f)>",
		g.TopLeft.X, g.TopLeft.Y, g.TopRight.X, g.TopRight.Y,
		g.BottomLeft.X, g.BottomLeft.Y, g.BottomRight.X, g.BottomRight.Y)
}

// corners intersects the boundary lines.
func (g *Grid) corners(f hough.Frame) error {
	pairs := []struct {
		name string
		a, b hough.Line
		dst  *geometry.Point2D
	}{
		{"top-left", g.Top, g.Left, &g.TopLeft},
		{"top-right", g.Top, g.Right, &g.TopRight},
		{"bottom-left", g.Bottom, g.Left, &g.BottomLeft},
		{"bottom-right", g.Bottom, g.Right, &g.BottomRight},
	}
	for _, p := range pairs {
		pt, err := f.Intersect(p.a, p.b)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrDegenerateIntersection, p.name, err)
		}
		*p.dst = pt
	}

	quad := g.Corners()
	if !geometry.IsConvex(quad[:]) || geometry.Area(quad[:]) < 1 {
		return fmt.Errorf("%w: corners %v do not form a convex quadrilateral", ErrDegenerateIntersection, quad)
	}
	return nil
}
