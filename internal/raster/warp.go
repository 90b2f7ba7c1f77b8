package raster

import (
	"fmt"
	"image"
	"image/color"

	"sudoku-reader/pkg/geometry"

	"gocv.io/x/gocv"
)

// grayToMat converts a Go gray image to a single-channel OpenCV Mat.
func grayToMat(img *image.Gray) (gocv.Mat, error) {
	packed := ToGray(img)
	b := packed.Bounds()
	return gocv.NewMatFromBytes(b.Dy(), b.Dx(), gocv.MatTypeCV8UC1, packed.Pix)
}

// matToGray converts a single-channel OpenCV Mat back to a Go gray image.
func matToGray(m gocv.Mat) (*image.Gray, error) {
	if m.Empty() {
		return nil, fmt.Errorf("empty mat")
	}
	if m.Type() != gocv.MatTypeCV8UC1 {
		return nil, fmt.Errorf("unexpected mat type %v", m.Type())
	}
	out := image.NewGray(image.Rect(0, 0, m.Cols(), m.Rows()))
	copy(out.Pix, m.ToBytes())
	return out, nil
}

// WarpAffine applies an affine transform (source to destination) with
// bilinear interpolation. Pixels with no source are set to fill.
func WarpAffine(img *image.Gray, transform geometry.AffineTransform, width, height int, fill uint8) (*image.Gray, error) {
	src, err := grayToMat(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	defer src.Close()

	transformMat := gocv.NewMatWithSize(2, 3, gocv.MatTypeCV64F)
	defer transformMat.Close()
	transformMat.SetDoubleAt(0, 0, transform.A)
	transformMat.SetDoubleAt(0, 1, transform.B)
	transformMat.SetDoubleAt(0, 2, transform.TX)
	transformMat.SetDoubleAt(1, 0, transform.C)
	transformMat.SetDoubleAt(1, 1, transform.D)
	transformMat.SetDoubleAt(1, 2, transform.TY)

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.WarpAffineWithParams(src, &dst, transformMat, image.Point{X: width, Y: height},
		gocv.InterpolationLinear, gocv.BorderConstant, color.RGBA{R: fill, G: fill, B: fill, A: 255})

	return matToGray(dst)
}

// WarpPerspective resamples img through a homography (source to destination)
// into a width x height raster.
func WarpPerspective(img *image.Gray, h geometry.Homography, width, height int) (*image.Gray, error) {
	src, err := grayToMat(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	defer src.Close()

	m := gocv.NewMatWithSize(3, 3, gocv.MatTypeCV64F)
	defer m.Close()
	for i, v := range h {
		m.SetDoubleAt(i/3, i%3, v)
	}

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.WarpPerspective(src, &dst, m, image.Point{X: width, Y: height})

	return matToGray(dst)
}
