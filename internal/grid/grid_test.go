package grid

import (
	"errors"
	"image"
	"math"
	"testing"

	"sudoku-reader/internal/hough"
	"sudoku-reader/internal/render"
	"sudoku-reader/pkg/geometry"
)

func renderGrid(skipRows, skipCols []int, thickness int) *image.Gray {
	img := render.Canvas(500, 500)
	render.Grid(img, image.Pt(50, 50), 40, thickness, skipRows, skipCols)
	return img
}

func lattice() [Lines]int {
	var want [Lines]int
	for i := range want {
		want[i] = 50 + 40*i
	}
	return want
}

func near(p, q float64) bool {
	return math.Abs(p-q) <= 1
}

func TestFind(t *testing.T) {
	tests := []struct {
		name     string
		skipRows []int
		skipCols []int
	}{
		{"complete", nil, nil},
		{"missing row", []int{4}, nil},
		{"missing row and column", []int{6}, []int{2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Find(renderGrid(tt.skipRows, tt.skipCols, 1), DefaultParams())
			if err != nil {
				t.Fatalf("Find() error = %v", err)
			}
			if g.Rows != lattice() {
				t.Errorf("Rows = %v, want %v", g.Rows, lattice())
			}
			if g.Cols != lattice() {
				t.Errorf("Cols = %v, want %v", g.Cols, lattice())
			}

			corners := []struct {
				name string
				got  float64
				want float64
			}{
				{"top-left x", g.TopLeft.X, 50}, {"top-left y", g.TopLeft.Y, 50},
				{"top-right x", g.TopRight.X, 410}, {"top-right y", g.TopRight.Y, 50},
				{"bottom-left x", g.BottomLeft.X, 50}, {"bottom-left y", g.BottomLeft.Y, 410},
				{"bottom-right x", g.BottomRight.X, 410}, {"bottom-right y", g.BottomRight.Y, 410},
			}
			for _, c := range corners {
				if !near(c.got, c.want) {
					t.Errorf("%s = %.2f, want %.0f", c.name, c.got, c.want)
				}
			}
		})
	}
}

func TestFindThickLines(t *testing.T) {
	g, err := Find(renderGrid(nil, nil, 3), DefaultParams())
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	span := g.Rows[Lines-1] - g.Rows[0]
	if span < 355 || span > 365 {
		t.Errorf("row span = %d, want ~360", span)
	}
	for i := 1; i < Lines; i++ {
		if d := g.Cols[i] - g.Cols[i-1]; d < 37 || d > 43 {
			t.Errorf("column gap %d = %d, want ~40", i, d)
		}
	}
}

func TestFindInsufficient(t *testing.T) {
	threeLines := render.Canvas(300, 300)
	for _, y := range []int{50, 100, 150} {
		render.HLine(threeLines, 20, 280, y, 1)
	}
	render.VLine(threeLines, 40, 20, 280, 1)
	render.VLine(threeLines, 200, 20, 280, 1)

	tests := []struct {
		name string
		img  *image.Gray
	}{
		{"blank", render.Canvas(200, 200)},
		{"three rows", threeLines},
		{"missing border", renderGrid([]int{0}, nil, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Find(tt.img, DefaultParams()); !errors.Is(err, ErrInsufficientGridLines) {
				t.Errorf("Find() error = %v, want ErrInsufficientGridLines", err)
			}
		})
	}
}

func TestDetect(t *testing.T) {
	p := DefaultParams()
	out, err := Detect(renderGrid(nil, nil, 1), p)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if got := out.Bounds().Size(); got != image.Pt(p.OutputSize, p.OutputSize) {
		t.Fatalf("Detect() size = %v, want %dx%d", got, p.OutputSize, p.OutputSize)
	}

	tests := []struct {
		name string
		x, y int
		ink  bool
	}{
		{"top border", 200, 0, true},
		{"left border", 0, 200, true},
		{"first cell", 22, 22, false},
		{"centre cell", 200, 200, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := out.GrayAt(tt.x, tt.y).Y
			if got := v < 128; got != tt.ink {
				t.Errorf("GrayAt(%d,%d) = %d, ink %v, want %v", tt.x, tt.y, v, got, tt.ink)
			}
		})
	}
}

func TestCornersDegenerate(t *testing.T) {
	f := hough.Frame{Width: 100, Height: 100}
	top := hough.Line{Theta: math.Pi / 2, R: 40}
	bottom := hough.Line{Theta: math.Pi / 2, R: 80}
	left := hough.Line{Theta: 0, R: 50}

	tests := []struct {
		name  string
		right hough.Line
	}{
		{"collapsed columns", left},
		{"parallel to rows", hough.Line{Theta: math.Pi / 2, R: 60}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &Grid{Top: top, Bottom: bottom, Left: left, Right: tt.right}
			if err := g.corners(f); !errors.Is(err, ErrDegenerateIntersection) {
				t.Errorf("corners() error = %v, want ErrDegenerateIntersection", err)
			}
		})
	}
}

func TestRectifyDegenerate(t *testing.T) {
	g := &Grid{
		TopLeft:     geometry.NewPoint2D(10, 10),
		TopRight:    geometry.NewPoint2D(50, 10),
		BottomRight: geometry.NewPoint2D(90, 10),
		BottomLeft:  geometry.NewPoint2D(10, 90),
	}
	if _, err := Rectify(render.Canvas(100, 100), g, 40); !errors.Is(err, geometry.ErrSingularTransform) {
		t.Errorf("Rectify() error = %v, want ErrSingularTransform", err)
	}
}

func TestCheckCorners(t *testing.T) {
	src := [4]geometry.Point2D{{X: 50, Y: 50}, {X: 410, Y: 50}, {X: 410, Y: 410}, {X: 50, Y: 410}}
	dst := [4]geometry.Point2D{{X: 0, Y: 0}, {X: 400, Y: 0}, {X: 400, Y: 400}, {X: 0, Y: 400}}
	h, err := geometry.ComputeHomography(src, dst)
	if err != nil {
		t.Fatalf("ComputeHomography() error = %v", err)
	}

	tests := []struct {
		name    string
		h       geometry.Homography
		wantErr bool
	}{
		{"solved", h, false},
		{"shifted", func() geometry.Homography { s := h; s[2] += 3; return s }(), true},
		{"at infinity", geometry.Homography{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkCorners(tt.h, src, dst)
			if (err != nil) != tt.wantErr {
				t.Errorf("checkCorners() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, geometry.ErrSingularTransform) {
				t.Errorf("checkCorners() error = %v, want ErrSingularTransform", err)
			}
		})
	}
}
