package skew

import (
	"errors"
	"image"
	"math"
	"testing"

	"sudoku-reader/internal/render"
	"sudoku-reader/pkg/geometry"
)

const tolerance = 2 * math.Pi / 180

func TestEstimateAngle(t *testing.T) {
	tests := []struct {
		name    string
		degrees float64
	}{
		{"level", 0},
		{"clockwise", 5},
		{"counter-clockwise", -7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alpha := tt.degrees * math.Pi / 180
			img := render.Canvas(300, 300)
			for _, y := range []float64{60, 120, 180, 240} {
				render.Stroke(img, 50, y, alpha, 200, 2)
			}

			got, err := EstimateAngle(img, DefaultParams())
			if err != nil {
				t.Fatalf("EstimateAngle() error = %v", err)
			}
			if math.Abs(got+alpha) > tolerance {
				t.Errorf("EstimateAngle() = %.2f deg, want %.2f deg", got*180/math.Pi, -tt.degrees)
			}
		})
	}
}

func TestEstimateAngleBlank(t *testing.T) {
	_, err := EstimateAngle(render.Canvas(100, 80), DefaultParams())
	if !errors.Is(err, ErrDegenerateSkew) {
		t.Errorf("EstimateAngle() error = %v, want ErrDegenerateSkew", err)
	}
}

func TestCorrect(t *testing.T) {
	alpha := 6 * math.Pi / 180
	img := render.Canvas(300, 300)
	for _, y := range []float64{70, 130, 190} {
		render.Stroke(img, 60, y, alpha, 180, 3)
	}

	out, err := Correct(img, DefaultParams())
	if err != nil {
		t.Fatalf("Correct() error = %v", err)
	}
	if out.Bounds() != img.Bounds() {
		t.Fatalf("Correct() bounds = %v, want %v", out.Bounds(), img.Bounds())
	}
	if got := out.GrayAt(0, 0).Y; got != 255 {
		t.Errorf("corner pixel = %d, want background", got)
	}

	residual, err := EstimateAngle(out, DefaultParams())
	if err != nil {
		t.Fatalf("EstimateAngle(corrected) error = %v", err)
	}
	if math.Abs(residual) > tolerance {
		t.Errorf("residual skew = %.2f deg, want ~0", residual*180/math.Pi)
	}
}

func TestEstimateAngleGrid(t *testing.T) {
	tests := []struct {
		name    string
		degrees float64
	}{
		{"clockwise", 5},
		{"counter-clockwise", -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alpha := tt.degrees * math.Pi / 180
			page := render.Canvas(500, 500)
			render.Grid(page, image.Pt(50, 50), 40, 2, nil, nil)

			rotated, err := Rotate(page, alpha)
			if err != nil {
				t.Fatalf("Rotate() error = %v", err)
			}
			got, err := Measure(rotated, DefaultParams())
			if err != nil {
				t.Fatalf("Measure() error = %v", err)
			}
			if math.Abs(got.Angle+alpha) > tolerance {
				t.Errorf("Measure() = %.2f deg, want %.2f deg", got.Degrees(), -tt.degrees)
			}
			if got.Lines < 2 {
				t.Errorf("Measure() used %d lines, want the grid rows", got.Lines)
			}
		})
	}
}

func TestToSource(t *testing.T) {
	b := image.Rect(0, 0, 400, 300)
	alpha := 5 * math.Pi / 180
	corners := []geometry.Point2D{{X: 50, Y: 40}, {X: 350, Y: 40}, {X: 350, Y: 260}, {X: 50, Y: 260}}

	rot := Transform(b, alpha)
	moved := make([]geometry.Point2D, len(corners))
	for i, c := range corners {
		moved[i] = rot.Apply(c)
	}

	got, err := ToSource(b, alpha, moved...)
	if err != nil {
		t.Fatalf("ToSource() error = %v", err)
	}
	for i := range corners {
		if d := got[i].Distance(corners[i]); d > 1e-9 {
			t.Errorf("corner %d = %+v, want %+v", i, got[i], corners[i])
		}
	}
	if c := rot.Apply(geometry.NewPoint2D(200, 150)); c.Distance(geometry.NewPoint2D(200, 150)) > 1e-9 {
		t.Errorf("centre moved to %+v", c)
	}
}
