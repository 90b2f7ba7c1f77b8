package extract

import (
	"image"
	"testing"

	"sudoku-reader/internal/digit"
	"sudoku-reader/internal/raster"
	"sudoku-reader/internal/render"
	"sudoku-reader/internal/sudoku"
)

var sheetOptions = render.Options{Margin: 50, Cell: 40, Thickness: 1, Scale: 2}

// sheet renders m and cuts out the grid as an exact 360x360 rectified raster.
func sheet(m sudoku.Matrix) *image.Gray {
	page := render.Puzzle(m, sheetOptions)
	return raster.Crop(page, image.Rect(50, 50, 410, 410))
}

var solution = sudoku.Matrix{
	{5, 3, 4, 6, 7, 8, 9, 1, 2},
	{6, 7, 2, 1, 9, 5, 3, 4, 8},
	{1, 9, 8, 3, 4, 2, 5, 6, 7},
	{8, 5, 9, 7, 6, 1, 4, 2, 3},
	{4, 2, 6, 8, 5, 3, 7, 9, 1},
	{7, 1, 3, 9, 2, 4, 8, 5, 6},
	{9, 6, 1, 5, 3, 7, 2, 8, 4},
	{2, 8, 7, 4, 1, 9, 6, 3, 5},
	{3, 4, 5, 2, 8, 6, 1, 7, 9},
}

var puzzle = sudoku.Matrix{
	{5, 3, 0, 0, 7, 0, 0, 0, 0},
	{6, 0, 0, 1, 9, 5, 0, 0, 0},
	{0, 9, 8, 0, 0, 0, 0, 6, 0},
	{8, 0, 0, 0, 6, 0, 0, 0, 3},
	{4, 0, 0, 8, 0, 3, 0, 0, 1},
	{7, 0, 0, 0, 2, 0, 0, 0, 6},
	{0, 6, 0, 0, 0, 0, 2, 8, 0},
	{0, 0, 0, 4, 1, 9, 0, 0, 5},
	{0, 0, 0, 0, 8, 0, 0, 7, 9},
}

// train builds templates from the cells of a solved sheet and a blank one.
func train(t *testing.T, p Params) *digit.TemplateSet {
	t.Helper()
	samples := make(map[int][]image.Image)
	for _, m := range []sudoku.Matrix{solution, {}} {
		cells := Cells(sheet(m), p)
		for row := range cells {
			for col, cell := range cells[row] {
				d := m[row][col]
				samples[d] = append(samples[d], cell)
			}
		}
	}
	ts, err := digit.Train(samples)
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	if err := ts.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	return ts
}

func TestExtract(t *testing.T) {
	p := DefaultParams()
	ts := train(t, p)

	tests := []struct {
		name string
		want sudoku.Matrix
	}{
		{"puzzle", puzzle},
		{"solution", solution},
		{"blank", sudoku.Matrix{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Extract(sheet(tt.want), ts, p); got != tt.want {
				t.Errorf("Extract() =\n%v\nwant\n%v", got, tt.want)
			}
		})
	}
}

func TestBoundaries(t *testing.T) {
	img := render.Canvas(360, 360)
	render.Grid(img, image.Pt(0, 0), 40, 1, []int{4}, []int{7})

	layout := Boundaries(img, DefaultParams())
	for i := 0; i <= sudoku.Size; i++ {
		if layout.Rows[i] != 40*i {
			t.Errorf("Rows[%d] = %d, want %d", i, layout.Rows[i], 40*i)
		}
		if layout.Cols[i] != 40*i {
			t.Errorf("Cols[%d] = %d, want %d", i, layout.Cols[i], 40*i)
		}
	}
}

func TestSnap(t *testing.T) {
	got := snap([]int{0, 1, 2, 41, 83, 125, 200}, 360, 0.25)
	want := [sudoku.Size + 1]int{1, 41, 83, 125, 160, 200, 240, 280, 320, 360}
	if got != want {
		t.Errorf("snap() = %v, want %v", got, want)
	}
}

func TestCellsShape(t *testing.T) {
	p := DefaultParams()
	cells := Cells(sheet(sudoku.Matrix{}), p)
	for row := range cells {
		for col, cell := range cells[row] {
			if got := cell.Bounds().Size(); got != image.Pt(36, 36) {
				t.Fatalf("cell (%d,%d) size = %v, want 36x36", row, col, got)
			}
		}
	}
}
