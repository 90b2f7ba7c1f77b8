// Package hough implements the straight-line Hough transform used to find
// grid lines: a vote accumulator over (angle, radius) and the pure geometric
// helpers that order and intersect the lines it produces.
package hough

import (
	"image"
	"math"

	"sudoku-reader/internal/raster"
)

const (
	// DefaultThetaSteps gives one-degree angle buckets over [0, pi).
	DefaultThetaSteps = 180

	// DefaultHorizontalBand is the half-width of the angle band voted by
	// AddHorizontalPoints, in radians.
	DefaultHorizontalBand = 15 * math.Pi / 180

	// neighbourhood is the bucket radius used to keep only local maxima.
	neighbourhood = 4
)

// Accumulator is a vote grid over (theta bucket, radius bucket).
// Votes only ever increase while points are added; the first call to Lines
// freezes it.
type Accumulator struct {
	width, height int
	houghHeight   int
	doubleHeight  int

	thetaSteps int
	thetaStep  float64
	sinCache   []float64
	cosCache   []float64

	centerX, centerY float64

	votes  []int // thetaSteps rows of doubleHeight radius buckets
	frozen bool
}

// NewAccumulator creates an accumulator for a width x height raster with
// one-degree angle buckets.
func NewAccumulator(width, height int) *Accumulator {
	return NewAccumulatorWithSteps(width, height, DefaultThetaSteps)
}

// NewAccumulatorWithSteps creates an accumulator with steps angle buckets over [0, pi).
func NewAccumulatorWithSteps(width, height, steps int) *Accumulator {
	if steps <= 0 {
		steps = DefaultThetaSteps
	}
	f := Frame{Width: width, Height: height}
	a := &Accumulator{
		width:       width,
		height:      height,
		houghHeight: f.houghHeight(),
		thetaSteps:  steps,
		thetaStep:   math.Pi / float64(steps),
		sinCache:    make([]float64, steps),
		cosCache:    make([]float64, steps),
	}
	a.doubleHeight = 2 * a.houghHeight
	a.centerX, a.centerY = f.center()
	a.votes = make([]int, steps*a.doubleHeight)

	for t := 0; t < steps; t++ {
		theta := float64(t) * a.thetaStep
		a.sinCache[t] = math.Sin(theta)
		a.cosCache[t] = math.Cos(theta)
	}
	return a
}

// Frame returns the raster frame the accumulator was built for.
func (a *Accumulator) Frame() Frame {
	return Frame{Width: a.width, Height: a.height}
}

// AddPoints votes every ink pixel of img for all angles.
func (a *Accumulator) AddPoints(img *image.Gray) {
	a.addPoints(img, 0, a.thetaSteps)
}

// AddHorizontalPoints votes every ink pixel of img only for angles within
// band radians of pi/2, so that only near-horizontal lines collect votes.
func (a *Accumulator) AddHorizontalPoints(img *image.Gray, band float64) {
	if band <= 0 {
		band = DefaultHorizontalBand
	}
	from := int(math.Ceil((math.Pi/2-band)/a.thetaStep - 1e-9))
	to := int(math.Floor((math.Pi/2+band)/a.thetaStep+1e-9)) + 1
	a.addPoints(img, max(from, 0), min(to, a.thetaSteps))
}

func (a *Accumulator) addPoints(img *image.Gray, from, to int) {
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if raster.IsInk(img.Pix[img.PixOffset(x, y)]) {
				a.addPoint(x-bounds.Min.X, y-bounds.Min.Y, from, to)
			}
		}
	}
}

func (a *Accumulator) addPoint(x, y, from, to int) {
	if a.frozen {
		panic("hough: accumulator is frozen after line extraction")
	}
	dx := float64(x) - a.centerX
	dy := float64(y) - a.centerY
	for t := from; t < to; t++ {
		r := int(math.Round(dx*a.cosCache[t]+dy*a.sinCache[t])) + a.houghHeight
		if r < 0 || r >= a.doubleHeight {
			continue
		}
		a.votes[t*a.doubleHeight+r]++
	}
}

// HighestValue returns the largest vote count in the accumulator.
func (a *Accumulator) HighestValue() int {
	highest := 0
	for _, v := range a.votes {
		if v > highest {
			highest = v
		}
	}
	return highest
}

// Votes returns the current vote count of the cell holding line.
func (a *Accumulator) Votes(line Line) int {
	t := int(math.Round(line.Theta / a.thetaStep))
	if t < 0 || t >= a.thetaSteps || line.R < 0 || line.R >= a.doubleHeight {
		return 0
	}
	return a.votes[t*a.doubleHeight+line.R]
}

// Lines returns every cell with at least minVotes (and at least one) votes
// that is a local maximum of its neighbourhood. Equal neighbours are all
// kept. Lines are returned in accumulator order, not sorted.
func (a *Accumulator) Lines(minVotes int) []Line {
	a.frozen = true
	minVotes = max(minVotes, 1)

	var lines []Line
	for t := 0; t < a.thetaSteps; t++ {
	cells:
		for r := 0; r < a.doubleHeight; r++ {
			peak := a.votes[t*a.doubleHeight+r]
			if peak < minVotes {
				continue
			}

			for dt := -neighbourhood; dt <= neighbourhood; dt++ {
				nt := t + dt
				if nt < 0 || nt >= a.thetaSteps {
					continue
				}
				for dr := -neighbourhood; dr <= neighbourhood; dr++ {
					nr := r + dr
					if nr < 0 || nr >= a.doubleHeight || (dt == 0 && dr == 0) {
						continue
					}
					if a.votes[nt*a.doubleHeight+nr] > peak {
						continue cells
					}
				}
			}

			lines = append(lines, Line{
				Theta: float64(t) * a.thetaStep,
				R:     r,
				Votes: peak,
			})
		}
	}
	return lines
}
