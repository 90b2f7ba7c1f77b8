package grid

import (
	"fmt"
	"image"

	"sudoku-reader/internal/raster"
	"sudoku-reader/pkg/geometry"
)

// cornerTolerance is how far, in output pixels, a corner may land from its
// target before the transform is rejected.
const cornerTolerance = 0.5

// Rectify maps the grid's corners onto a size x size square and resamples
// img through that perspective transform.
func Rectify(img *image.Gray, g *Grid, size int) (*image.Gray, error) {
	s := float64(size)
	src := g.Corners()
	dst := [4]geometry.Point2D{{X: 0, Y: 0}, {X: s, Y: 0}, {X: s, Y: s}, {X: 0, Y: s}}

	h, err := geometry.ComputeHomography(src, dst)
	if err != nil {
		return nil, fmt.Errorf("failed to compute rectification for %v: %w", g, err)
	}
	if err := checkCorners(h, src, dst); err != nil {
		return nil, err
	}
	out, err := raster.WarpPerspective(img, h, size, size)
	if err != nil {
		return nil, fmt.Errorf("failed to warp grid: %w", err)
	}
	return out, nil
}

// checkCorners verifies that h sends every src corner onto its dst corner.
func checkCorners(h geometry.Homography, src, dst [4]geometry.Point2D) error {
	for i := range src {
		p, ok := h.Apply(src[i])
		if !ok || p.Distance(dst[i]) > cornerTolerance {
			return fmt.Errorf("%w: corner (%.1f,%.1f) maps to (%.1f,%.1f), want (%.0f,%.0f)",
				geometry.ErrSingularTransform, src[i].X, src[i].Y, p.X, p.Y, dst[i].X, dst[i].Y)
		}
	}
	return nil
}
