package geometry

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrSingularTransform is returned when four point pairs do not define a
// usable projective mapping (collinear or coincident points).
var ErrSingularTransform = errors.New("singular perspective transform")

// Homography is a 3x3 projective transform in row-major order with H[8] == 1.
type Homography [9]float64

// ComputeHomography solves the perspective transform mapping each src[i] to dst[i].
func ComputeHomography(src, dst [4]Point2D) (Homography, error) {
	// Build the 8x8 system with h22 fixed to 1:
	// u = (h0 x + h1 y + h2) / (h6 x + h7 y + 1)
	// v = (h3 x + h4 y + h5) / (h6 x + h7 y + 1)
	A := mat.NewDense(8, 8, nil)
	B := mat.NewVecDense(8, nil)

	for i := 0; i < 4; i++ {
		x, y := src[i].X, src[i].Y
		u, v := dst[i].X, dst[i].Y

		A.SetRow(i*2, []float64{x, y, 1, 0, 0, 0, -x * u, -y * u})
		B.SetVec(i*2, u)

		A.SetRow(i*2+1, []float64{0, 0, 0, x, y, 1, -x * v, -y * v})
		B.SetVec(i*2+1, v)
	}

	var params mat.VecDense
	if err := params.SolveVec(A, B); err != nil {
		return Homography{}, fmt.Errorf("%w: %v", ErrSingularTransform, err)
	}

	var h Homography
	for i := 0; i < 8; i++ {
		v := params.AtVec(i)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Homography{}, ErrSingularTransform
		}
		h[i] = v
	}
	h[8] = 1
	return h, nil
}

// Apply maps a point through the homography. The second result is false when
// the point maps to infinity.
func (h Homography) Apply(p Point2D) (Point2D, bool) {
	w := h[6]*p.X + h[7]*p.Y + h[8]
	if math.Abs(w) < 1e-12 {
		return Point2D{}, false
	}
	return Point2D{
		X: (h[0]*p.X + h[1]*p.Y + h[2]) / w,
		Y: (h[3]*p.X + h[4]*p.Y + h[5]) / w,
	}, true
}
