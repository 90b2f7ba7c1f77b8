package grid

import (
	"fmt"
	"image"
	"math"

	"sudoku-reader/internal/hough"
)

// axis is one direction of the grid: its sorted candidate lines, their
// positions and the current run [lo, hi] of accepted lines.
type axis struct {
	name      string
	lines     []hough.Line
	pos       []int
	lo, hi    int
	count     int       // grid lines covered by [lo, hi], including healed ones
	positions []float64 // accepted positions from lo to hi, healed lines interpolated
}

func newAxis(name string, f hough.Frame, lines []hough.Line) *axis {
	return &axis{name: name, lines: lines, pos: f.Positions(lines)}
}

func (a *axis) gap(i, j int) float64 {
	return math.Abs(float64(a.pos[j] - a.pos[i]))
}

// seed starts from the middle pair and widens it on the side giving the
// smaller gap until the gap reaches minGap.
func (a *axis) seed(minGap float64) error {
	a.lo = (len(a.pos) - 1) / 2
	a.hi = a.lo + 1
	for a.gap(a.lo, a.hi) < minGap {
		canUp, canDown := a.lo > 0, a.hi < len(a.pos)-1
		switch {
		case canUp && (!canDown || a.gap(a.lo-1, a.hi) < a.gap(a.lo, a.hi+1)):
			a.lo--
		case canDown:
			a.hi++
		default:
			return fmt.Errorf("%w: no %s pair %.0f px apart", ErrInsufficientGridLines, a.name, minGap)
		}
	}
	return nil
}

// refine replaces a seed that spans two cells by the tighter pair just above
// it, when one lies between 40% and 60% of the seed gap.
func (a *axis) refine(minGap float64) {
	dist := a.gap(a.lo, a.hi)
	for below := a.lo - 1; below >= 0; below-- {
		d := a.gap(below, a.lo)
		if d >= minGap || d >= 0.8*dist {
			return
		}
		if d > 0.4*dist && d < 0.6*dist {
			a.lo, a.hi = below, a.lo
			return
		}
	}
}

// match classifies a distance as one step (1), two steps (2) or neither (0)
// of the mean spacing.
func match(d, mean, tolerance float64) int {
	switch {
	case d > mean*(1-tolerance) && d < mean*(1+tolerance):
		return 1
	case d > 2*mean*(1-tolerance) && d < 2*mean*(1+tolerance):
		return 2
	default:
		return 0
	}
}

// grow extends the seed outwards, one neighbour per side and round, until it
// covers Lines grid lines.
func (a *axis) grow(tolerance float64) error {
	a.count = 2
	a.positions = []float64{float64(a.pos[a.lo]), float64(a.pos[a.hi])}

	for a.count < Lines {
		mean := a.gap(a.lo, a.hi) / float64(a.count-1)
		progressed := false

		for c := a.lo - 1; c >= 0 && a.count < Lines; c-- {
			steps := match(a.gap(c, a.lo), mean, tolerance)
			if steps == 0 || a.count+steps > Lines {
				continue
			}
			edge := float64(a.pos[c])
			if steps == 2 {
				a.positions = append([]float64{(edge + a.positions[0]) / 2}, a.positions...)
			}
			a.positions = append([]float64{edge}, a.positions...)
			a.lo = c
			a.count += steps
			progressed = true
			break
		}

		for c := a.hi + 1; c < len(a.pos) && a.count < Lines; c++ {
			steps := match(a.gap(a.hi, c), mean, tolerance)
			if steps == 0 || a.count+steps > Lines {
				continue
			}
			edge := float64(a.pos[c])
			if steps == 2 {
				a.positions = append(a.positions, (a.positions[len(a.positions)-1]+edge)/2)
			}
			a.positions = append(a.positions, edge)
			a.hi = c
			a.count += steps
			progressed = true
			break
		}

		if !progressed {
			return fmt.Errorf("%w: found %d of %d %s lines", ErrInsufficientGridLines, a.count, Lines, a.name)
		}
	}
	return nil
}

func (a *axis) rounded() [Lines]int {
	var out [Lines]int
	for i, p := range a.positions {
		out[i] = int(math.Round(p))
	}
	return out
}

// Find locates the grid in a deskewed binary image.
func Find(img *image.Gray, p Params) (*Grid, error) {
	b := img.Bounds()
	acc := hough.NewAccumulatorWithSteps(b.Dx(), b.Dy(), p.ThetaSteps)
	acc.AddPoints(img)

	highest := acc.HighestValue()
	if highest == 0 {
		return nil, fmt.Errorf("%w: image has no ink", ErrInsufficientGridLines)
	}
	f := acc.Frame()
	lines := acc.Lines(int(math.Ceil(p.ThresholdRatio * float64(highest))))
	horizontal, vertical := p.Bands.Partition(f, lines)
	if len(horizontal) < 2 || len(vertical) < 2 {
		return nil, fmt.Errorf("%w: %d horizontal and %d vertical candidates",
			ErrInsufficientGridLines, len(horizontal), len(vertical))
	}

	rows := newAxis("horizontal", f, horizontal)
	if err := rows.seed(p.MinCellSpacing); err != nil {
		return nil, err
	}
	rows.refine(p.MinCellSpacing)

	cols := newAxis("vertical", f, vertical)
	if err := cols.seed(p.SquareRatio * rows.gap(rows.lo, rows.hi)); err != nil {
		return nil, err
	}

	if err := rows.grow(p.Tolerance); err != nil {
		return nil, err
	}
	if err := cols.grow(p.Tolerance); err != nil {
		return nil, err
	}

	g := &Grid{
		Top:    rows.lines[rows.lo],
		Bottom: rows.lines[rows.hi],
		Left:   cols.lines[cols.lo],
		Right:  cols.lines[cols.hi],
		Rows:   rows.rounded(),
		Cols:   cols.rounded(),
	}
	if err := g.corners(f); err != nil {
		return nil, err
	}
	return g, nil
}

// Detect finds the grid and returns it rectified to p.OutputSize.
func Detect(img *image.Gray, p Params) (*image.Gray, error) {
	g, err := Find(img, p)
	if err != nil {
		return nil, err
	}
	return Rectify(img, g, p.OutputSize)
}
