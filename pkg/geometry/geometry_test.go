package geometry

import (
	"errors"
	"math"
	"testing"
)

func TestRotationAbout(t *testing.T) {
	center := Point2D{X: 50, Y: 50}
	rot := RotationAbout(center, math.Pi/2)

	got := rot.Apply(Point2D{X: 60, Y: 50})
	if math.Abs(got.X-50) > 1e-9 || math.Abs(got.Y-60) > 1e-9 {
		t.Errorf("Apply() = %+v, want (50, 60)", got)
	}

	if c := rot.Apply(center); c.Distance(center) > 1e-9 {
		t.Errorf("center moved to %+v", c)
	}

	inv, ok := rot.Inverse()
	if !ok {
		t.Fatal("Inverse() not ok")
	}
	back := inv.Apply(got)
	if back.Distance(Point2D{X: 60, Y: 50}) > 1e-9 {
		t.Errorf("Inverse round trip = %+v", back)
	}
}

func TestComputeHomography(t *testing.T) {
	tests := []struct {
		name string
		src  [4]Point2D
		dst  [4]Point2D
	}{
		{
			name: "scale and shift",
			src:  [4]Point2D{{10, 20}, {110, 20}, {110, 120}, {10, 120}},
			dst:  [4]Point2D{{0, 0}, {400, 0}, {400, 400}, {0, 400}},
		},
		{
			name: "keystone",
			src:  [4]Point2D{{30, 10}, {170, 25}, {190, 180}, {5, 160}},
			dst:  [4]Point2D{{0, 0}, {400, 0}, {400, 400}, {0, 400}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := ComputeHomography(tt.src, tt.dst)
			if err != nil {
				t.Fatalf("ComputeHomography() error = %v", err)
			}
			for i := range tt.src {
				got, ok := h.Apply(tt.src[i])
				if !ok {
					t.Fatalf("Apply(%v) at infinity", tt.src[i])
				}
				if got.Distance(tt.dst[i]) > 1e-6 {
					t.Errorf("Apply(%v) = %v, want %v", tt.src[i], got, tt.dst[i])
				}
			}
		})
	}
}

func TestComputeHomographyDegenerate(t *testing.T) {
	src := [4]Point2D{{0, 0}, {10, 0}, {20, 0}, {30, 0}}
	dst := [4]Point2D{{0, 0}, {400, 0}, {400, 400}, {0, 400}}
	if _, err := ComputeHomography(src, dst); !errors.Is(err, ErrSingularTransform) {
		t.Errorf("ComputeHomography() error = %v, want ErrSingularTransform", err)
	}
}

func TestIsConvex(t *testing.T) {
	tests := []struct {
		name string
		poly []Point2D
		want bool
	}{
		{"square", []Point2D{{0, 0}, {10, 0}, {10, 10}, {0, 10}}, true},
		{"keystone", []Point2D{{2, 0}, {8, 0}, {10, 10}, {0, 10}}, true},
		{"bow tie", []Point2D{{0, 0}, {10, 0}, {0, 10}, {10, 10}}, false},
		{"collinear", []Point2D{{0, 0}, {5, 0}, {10, 0}}, false},
		{"two points", []Point2D{{0, 0}, {1, 1}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsConvex(tt.poly); got != tt.want {
				t.Errorf("IsConvex() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestArea(t *testing.T) {
	if got := Area([]Point2D{{0, 0}, {10, 0}, {10, 5}, {0, 5}}); got != 50 {
		t.Errorf("Area() = %v, want 50", got)
	}
}
