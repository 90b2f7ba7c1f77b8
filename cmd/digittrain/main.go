// Command digittrain builds the digit templates used by sudoku-reader.
// Samples are read from <dir>/<digit>/*.png|jpg; with -synthetic the
// templates are rendered from a bitmap font instead.
//
// Usage: digittrain -train <dir> [-out templates.json] [-snapshots dir]
package main

import (
	"flag"
	"fmt"
	"image"
	"os"

	"sudoku-reader/internal/debug"
	"sudoku-reader/internal/digit"
	"sudoku-reader/internal/logger"
	"sudoku-reader/internal/render"
	"sudoku-reader/internal/samples"
)

var (
	flagTrain     = flag.String("train", "train", "Directory of labeled samples")
	flagOut       = flag.String("out", "", "Output templates file (default: user config dir)")
	flagSnapshots = flag.String("snapshots", "", "Write learned/<digit>.png template images into this directory")
	flagSynthetic = flag.Bool("synthetic", false, "Render samples from the built-in bitmap font")
	flagCell      = flag.Int("cell", 40, "Synthetic cell size in pixels")
	flagScale     = flag.Int("scale", 2, "Synthetic glyph magnification")
	flagLogLevel  = flag.String("log-level", "info", "Log level")
)

func main() {
	flag.Parse()
	cfg := logger.DefaultConfig()
	cfg.Level = *flagLogLevel
	log := logger.NewConsole(cfg)

	var set map[int][]image.Image
	if *flagSynthetic {
		set = syntheticSamples(*flagCell, *flagScale)
	} else {
		var err error
		set, err = samples.LoadTrainingDir(*flagTrain, logger.Component(log, "samples"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load samples: %v\n", err)
			os.Exit(1)
		}
	}

	ts, err := digit.Train(set)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Training failed: %v\n", err)
		os.Exit(1)
	}
	if err := ts.Validate(); err != nil {
		// Empty classes keep a zero template; report and carry on.
		for _, e := range unwrapJoined(err) {
			log.Warn().Err(e).Msg("incomplete training")
		}
	}

	fmt.Printf("%-6s %8s\n", "Digit", "Samples")
	for d, n := range ts.Samples {
		fmt.Printf("%-6d %8d\n", d, n)
	}

	if *flagSnapshots != "" {
		sink := debug.NewDirSink(*flagSnapshots, logger.Component(log, "debug"))
		for d := 0; d < digit.Digits; d++ {
			sink.Snapshot(fmt.Sprintf("learned/%d", d), ts.Image(d))
		}
	}

	out := *flagOut
	if out == "" {
		if out, err = digit.DefaultTemplatesPath(); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}
	if err := ts.Save(out); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nSaved templates to %s\n", out)
}

// syntheticSamples renders one cell per digit; 0 is an empty cell.
func syntheticSamples(cell, scale int) map[int][]image.Image {
	set := make(map[int][]image.Image, digit.Digits)
	for d := 0; d < digit.Digits; d++ {
		set[d] = []image.Image{render.Cell(d, cell, scale)}
	}
	return set
}

func unwrapJoined(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
