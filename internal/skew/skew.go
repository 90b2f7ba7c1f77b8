// Package skew estimates and removes the in-plane rotation of a binarized
// puzzle photograph using its dominant near-horizontal lines.
package skew

import (
	"errors"
	"fmt"
	"image"
	"math"

	"sudoku-reader/internal/hough"
	"sudoku-reader/internal/raster"
	"sudoku-reader/pkg/geometry"

	"gonum.org/v1/gonum/stat"
)

// ErrDegenerateSkew is returned when no near-horizontal line can be found.
var ErrDegenerateSkew = errors.New("no horizontal lines to estimate skew")

// Params controls skew estimation.
type Params struct {
	// Lines with at least ThresholdRatio of the strongest line's votes
	// contribute to the mean angle.
	ThresholdRatio float64 `toml:"threshold_ratio"`
	// Band is the half-width around pi/2 (radians) voted for.
	Band float64 `toml:"band"`
	// ThetaSteps is the accumulator angle resolution over [0, pi).
	ThetaSteps int `toml:"theta_steps"`
}

// DefaultParams returns the standard skew parameters.
func DefaultParams() Params {
	return Params{
		ThresholdRatio: 0.6,
		Band:           hough.DefaultHorizontalBand, // +-15 degrees
		ThetaSteps:     hough.DefaultThetaSteps,
	}
}

// Estimate describes the measured skew of an image.
type Estimate struct {
	Angle  float64 // correcting rotation in radians
	Spread float64 // standard deviation of the contributing normal angles
	Lines  int     // number of contributing lines
}

// Degrees returns the correcting rotation in degrees.
func (e Estimate) Degrees() float64 {
	return e.Angle * 180 / math.Pi
}

// Measure votes the near-horizontal lines of img and returns the rotation
// that brings their mean normal angle to pi/2.
func Measure(img *image.Gray, p Params) (Estimate, error) {
	b := img.Bounds()
	acc := hough.NewAccumulatorWithSteps(b.Dx(), b.Dy(), p.ThetaSteps)
	acc.AddHorizontalPoints(img, p.Band)

	highest := acc.HighestValue()
	if highest == 0 {
		return Estimate{}, ErrDegenerateSkew
	}
	lines := acc.Lines(int(math.Ceil(p.ThresholdRatio * float64(highest))))
	if len(lines) == 0 {
		return Estimate{}, ErrDegenerateSkew
	}

	thetas := make([]float64, len(lines))
	for i, l := range lines {
		thetas[i] = l.Theta
	}
	mean, std := stat.MeanStdDev(thetas, nil)
	if len(thetas) == 1 {
		std = 0
	}
	return Estimate{Angle: math.Pi/2 - mean, Spread: std, Lines: len(lines)}, nil
}

// EstimateAngle returns the correcting rotation of img in radians.
func EstimateAngle(img *image.Gray, p Params) (float64, error) {
	e, err := Measure(img, p)
	if err != nil {
		return 0, err
	}
	return e.Angle, nil
}

// Rotate turns img by radians about its centre. The output has the same
// size; pixels rotated in from outside the source are background.
func Rotate(img *image.Gray, radians float64) (*image.Gray, error) {
	b := img.Bounds()
	out, err := raster.WarpAffine(img, Transform(b, radians), b.Dx(), b.Dy(), raster.Background)
	if err != nil {
		return nil, fmt.Errorf("failed to rotate by %.4f rad: %w", radians, err)
	}
	return out, nil
}

// Transform returns the rotation Rotate applies to an image with bounds b.
func Transform(b image.Rectangle, radians float64) geometry.AffineTransform {
	center := geometry.NewPoint2D(float64(b.Dx()/2), float64(b.Dy()/2))
	return geometry.RotationAbout(center, radians)
}

// ToSource maps points of an image rotated by Rotate back into the
// coordinates of the unrotated image.
func ToSource(b image.Rectangle, radians float64, points ...geometry.Point2D) ([]geometry.Point2D, error) {
	inv, ok := Transform(b, radians).Inverse()
	if !ok {
		return nil, fmt.Errorf("rotation by %.4f rad is not invertible", radians)
	}
	out := make([]geometry.Point2D, len(points))
	for i, p := range points {
		out[i] = inv.Apply(p)
	}
	return out, nil
}

// Correct estimates the skew of img and returns it rotated upright.
func Correct(img *image.Gray, p Params) (*image.Gray, error) {
	angle, err := EstimateAngle(img, p)
	if err != nil {
		return nil, err
	}
	return Rotate(img, angle)
}
