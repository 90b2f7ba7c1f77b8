// Package extract cuts a rectified grid raster into its 81 cells and reads
// each one with the digit classifier.
package extract

import (
	"image"
	"math"

	"sudoku-reader/internal/digit"
	"sudoku-reader/internal/hough"
	"sudoku-reader/internal/raster"
	"sudoku-reader/internal/sudoku"
)

// Params controls cell extraction.
type Params struct {
	Size           int         `toml:"size"`  // side the grid is resampled to
	Inset          int         `toml:"inset"` // pixels skipped on each cell's top and left
	ThresholdRatio float64     `toml:"threshold_ratio"`
	Bands          hough.Bands `toml:"bands"`
	// SnapRatio is how far, as a fraction of a cell, a detected line may sit
	// from its uniform position and still be used as a boundary.
	SnapRatio  float64 `toml:"snap_ratio"`
	ThetaSteps int     `toml:"theta_steps"`
}

// DefaultParams returns the standard extraction parameters.
func DefaultParams() Params {
	return Params{
		Size:           360,
		Inset:          4,
		ThresholdRatio: 0.5,
		Bands:          hough.CellBands,
		SnapRatio:      0.25,
		ThetaSteps:     hough.DefaultThetaSteps,
	}
}

// Layout is the ten row and ten column boundaries of the resampled grid.
type Layout struct {
	Rows [sudoku.Size + 1]int
	Cols [sudoku.Size + 1]int
}

// Cell returns the crop rectangle of cell (row, col).
func (l Layout) Cell(row, col, inset int) image.Rectangle {
	return image.Rect(l.Cols[col]+inset, l.Rows[row]+inset, l.Cols[col+1], l.Rows[row+1])
}

// Boundaries finds the cell boundaries of a grid raster already resampled to
// p.Size. Detected lines close to the uniform lattice replace it.
func Boundaries(img *image.Gray, p Params) Layout {
	b := img.Bounds()
	var horizontal, vertical []hough.Line
	acc := hough.NewAccumulatorWithSteps(b.Dx(), b.Dy(), p.ThetaSteps)
	acc.AddPoints(img)
	f := acc.Frame()
	if highest := acc.HighestValue(); highest > 0 {
		lines := acc.Lines(int(math.Ceil(p.ThresholdRatio * float64(highest))))
		horizontal, vertical = p.Bands.Partition(f, lines)
	}

	return Layout{
		Rows: snap(f.Positions(horizontal), b.Dy(), p.SnapRatio),
		Cols: snap(f.Positions(vertical), b.Dx(), p.SnapRatio),
	}
}

// cluster merges sorted positions less than 3 px apart into their mean.
func cluster(positions []int) []int {
	var out []int
	for i := 0; i < len(positions); {
		j, sum := i, 0
		for j < len(positions) && positions[j]-positions[i] < 3 {
			sum += positions[j]
			j++
		}
		out = append(out, int(math.Round(float64(sum)/float64(j-i))))
		i = j
	}
	return out
}

// snap places the ten boundaries of an axis of length size on the uniform
// size/9 lattice, moving each onto the nearest detected line within ratio of
// a cell.
func snap(positions []int, size int, ratio float64) [sudoku.Size + 1]int {
	cell := size / sudoku.Size
	limit := ratio * float64(cell)
	centres := cluster(positions)

	var out [sudoku.Size + 1]int
	for i := range out {
		uniform := i * cell
		out[i] = uniform
		best := limit
		for _, c := range centres {
			if d := math.Abs(float64(c - uniform)); d <= best {
				out[i], best = c, d
			}
		}
	}
	return out
}

// Cells resamples a rectified grid to p.Size and returns its cells, [row][col].
func Cells(rectified *image.Gray, p Params) [sudoku.Size][sudoku.Size]*image.Gray {
	img := raster.Resize(rectified, p.Size, p.Size)
	layout := Boundaries(img, p)

	var cells [sudoku.Size][sudoku.Size]*image.Gray
	for row := 0; row < sudoku.Size; row++ {
		for col := 0; col < sudoku.Size; col++ {
			cells[row][col] = raster.Crop(img, layout.Cell(row, col, p.Inset))
		}
	}
	return cells
}

// Extract reads every cell of a rectified grid. It always returns a full
// matrix.
func Extract(rectified *image.Gray, ts *digit.TemplateSet, p Params) sudoku.Matrix {
	var m sudoku.Matrix
	cells := Cells(rectified, p)
	for row := range cells {
		for col, cell := range cells[row] {
			m[row][col] = digit.Classify(cell, ts)
		}
	}
	return m
}
