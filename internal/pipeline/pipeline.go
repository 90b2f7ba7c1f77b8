// Package pipeline runs the full recognition: binarize, deskew, find and
// rectify the grid, then read the 81 cells.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/rs/zerolog"

	"sudoku-reader/internal/binarize"
	"sudoku-reader/internal/debug"
	"sudoku-reader/internal/digit"
	"sudoku-reader/internal/extract"
	"sudoku-reader/internal/grid"
	"sudoku-reader/internal/skew"
	"sudoku-reader/internal/sudoku"
)

// Stage names a pipeline step.
type Stage string

const (
	StageBinarize Stage = "binarize"
	StageSkew     Stage = "skew"
	StageGrid     Stage = "grid"
	StageExtract  Stage = "extract"
)

// Snapshot tags.
const (
	TagBinarized = "binarized"
	TagRotated   = "rotated"
	TagGrid      = "grid"
)

// ErrNoTemplates is returned when recognition is attempted without templates.
var ErrNoTemplates = errors.New("no digit templates")

// StageError reports the stage a recognition failed in.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Params holds the parameters of every stage.
type Params struct {
	Binarize binarize.Params
	Skew     skew.Params
	Grid     grid.Params
	Extract  extract.Params
}

// DefaultParams returns the defaults of every stage.
func DefaultParams() Params {
	return Params{
		Binarize: binarize.DefaultParams(),
		Skew:     skew.DefaultParams(),
		Grid:     grid.DefaultParams(),
		Extract:  extract.DefaultParams(),
	}
}

// Recognizer reads puzzles with a fixed template set. It is not safe for
// concurrent use when its sink is not.
type Recognizer struct {
	templates *digit.TemplateSet
	params    Params
	sink      debug.Sink
	log       zerolog.Logger
}

// Option configures a Recognizer.
type Option func(*Recognizer)

// WithParams overrides the stage parameters.
func WithParams(p Params) Option {
	return func(r *Recognizer) { r.params = p }
}

// WithSink receives the intermediate rasters.
func WithSink(s debug.Sink) Option {
	return func(r *Recognizer) { r.sink = s }
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(r *Recognizer) { r.log = log }
}

// New returns a recognizer using ts. Templates with empty digit classes are
// accepted with a warning.
func New(ts *digit.TemplateSet, opts ...Option) *Recognizer {
	r := &Recognizer{
		templates: ts,
		params:    DefaultParams(),
		sink:      debug.Nop{},
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With().Str("component", "pipeline").Logger()

	if ts != nil {
		if err := ts.Validate(); err != nil {
			r.log.Warn().Err(err).Msg("templates are incomplete")
		}
	}
	return r
}

// Rectify runs every stage up to the grid and returns the rectified grid raster.
func (r *Recognizer) Rectify(ctx context.Context, img image.Image) (*image.Gray, error) {
	start := time.Now()
	b := img.Bounds()
	r.log.Debug().Int("width", b.Dx()).Int("height", b.Dy()).Msg("recognition started")

	if err := ctx.Err(); err != nil {
		return nil, &StageError{Stage: StageBinarize, Err: err}
	}
	bw := binarize.Binarize(img, r.params.Binarize)
	r.sink.Snapshot(TagBinarized, bw)

	if err := ctx.Err(); err != nil {
		return nil, &StageError{Stage: StageSkew, Err: err}
	}
	estimate, err := skew.Measure(bw, r.params.Skew)
	if err != nil {
		return nil, &StageError{Stage: StageSkew, Err: err}
	}
	rotated, err := skew.Rotate(bw, estimate.Angle)
	if err != nil {
		return nil, &StageError{Stage: StageSkew, Err: err}
	}
	r.log.Debug().
		Float64("degrees", estimate.Degrees()).
		Float64("spread", estimate.Spread).
		Int("lines", estimate.Lines).
		Msg("skew corrected")
	r.sink.Snapshot(TagRotated, rotated)

	if err := ctx.Err(); err != nil {
		return nil, &StageError{Stage: StageGrid, Err: err}
	}
	g, err := grid.Find(rotated, r.params.Grid)
	if err != nil {
		return nil, &StageError{Stage: StageGrid, Err: err}
	}
	r.log.Debug().Stringer("grid", g).Ints("rows", g.Rows[:]).Ints("cols", g.Cols[:]).Msg("grid found")
	if r.log.GetLevel() <= zerolog.DebugLevel {
		corners := g.Corners()
		if photo, err := skew.ToSource(b, estimate.Angle, corners[:]...); err == nil {
			r.log.Debug().Interface("corners", photo).Msg("grid corners in photo")
		}
	}

	rectified, err := grid.Rectify(rotated, g, r.params.Grid.OutputSize)
	if err != nil {
		return nil, &StageError{Stage: StageGrid, Err: err}
	}
	r.sink.Snapshot(TagGrid, rectified)

	r.log.Debug().Dur("elapsed", time.Since(start)).Msg("grid rectified")
	return rectified, nil
}

// Recognize reads the puzzle in img. On error no matrix is returned.
func (r *Recognizer) Recognize(ctx context.Context, img image.Image) (sudoku.Matrix, error) {
	if r.templates == nil {
		return sudoku.Matrix{}, &StageError{Stage: StageExtract, Err: ErrNoTemplates}
	}

	rectified, err := r.Rectify(ctx, img)
	if err != nil {
		return sudoku.Matrix{}, err
	}

	if err := ctx.Err(); err != nil {
		return sudoku.Matrix{}, &StageError{Stage: StageExtract, Err: err}
	}
	m := extract.Extract(rectified, r.templates, r.params.Extract)

	if sudoku.Consistent(m) {
		r.log.Info().Int("givens", m.Givens()).Msg("puzzle recognized")
	} else {
		r.log.Warn().Int("givens", m.Givens()).Msg("puzzle recognized with repeated digits")
	}
	return m, nil
}
