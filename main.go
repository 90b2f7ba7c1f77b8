// Command sudoku-reader reads the digits of a Sudoku grid from a photograph.
//
// Usage: sudoku-reader -image puzzle.jpg [-templates templates.json | -train dir] [options]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog"

	"sudoku-reader/internal/config"
	"sudoku-reader/internal/debug"
	"sudoku-reader/internal/digit"
	"sudoku-reader/internal/logger"
	"sudoku-reader/internal/pipeline"
	"sudoku-reader/internal/samples"
	"sudoku-reader/internal/sudoku"
	"sudoku-reader/internal/version"
)

var (
	flagImage     = flag.String("image", "", "Path to the puzzle photograph")
	flagTemplates = flag.String("templates", "", "Trained templates file (default: user config dir)")
	flagTrain     = flag.String("train", "", "Train from <dir>/<digit>/ samples instead of loading templates")
	flagConfig    = flag.String("config", "", "TOML configuration file")
	flagDebug     = flag.String("debug", "", "Write stage snapshots into this directory")
	flagSolve     = flag.Bool("solve", false, "Also print the solved grid")
	flagLogLevel  = flag.String("log-level", "", "Log level: debug, info, warn, error")
	flagVersion   = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Println(version.String("sudoku-reader"))
		return
	}
	if *flagImage == "" {
		fmt.Println("Usage: sudoku-reader -image <path> [-templates file | -train dir] [-config file] [-debug dir] [-solve]")
		os.Exit(1)
	}

	cfg := config.Default()
	if *flagConfig != "" {
		loaded, err := config.Load(*flagConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	applyFlags(&cfg)

	log := logger.NewConsole(cfg.Log)

	ts, err := loadTemplates(cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("no templates")
		os.Exit(1)
	}

	img, err := samples.LoadImage(*flagImage)
	if err != nil {
		log.Error().Err(err).Msg("cannot load photograph")
		os.Exit(1)
	}

	var sink debug.Sink = debug.Nop{}
	if cfg.Debug.Dir != "" {
		sink = debug.NewDirSink(cfg.Debug.Dir, logger.Component(log, "debug"))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r := pipeline.New(ts,
		pipeline.WithParams(cfg.Pipeline()),
		pipeline.WithSink(sink),
		pipeline.WithLogger(log),
	)
	m, err := r.Recognize(ctx, img)
	if err != nil {
		var se *pipeline.StageError
		if errors.As(err, &se) {
			fmt.Fprintf(os.Stderr, "Recognition failed at stage %s: %v\n", se.Stage, se.Err)
		} else {
			fmt.Fprintf(os.Stderr, "Recognition failed: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Print(m)

	if *flagSolve {
		solved := m
		if !sudoku.Solve(&solved) {
			fmt.Fprintln(os.Stderr, "The recognized grid has no solution; some digits were probably misread.")
			os.Exit(2)
		}
		fmt.Println()
		fmt.Print(solved)
	}
}

// applyFlags copies explicitly set flags over the configuration.
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "templates":
			cfg.Training.Templates = *flagTemplates
		case "train":
			cfg.Training.Dir = *flagTrain
		case "debug":
			cfg.Debug.Dir = *flagDebug
		case "log-level":
			cfg.Log.Level = *flagLogLevel
		}
	})
}

// loadTemplates trains from the sample directory when -train is given,
// otherwise loads the template file and falls back to training.
func loadTemplates(cfg config.Config, log zerolog.Logger) (*digit.TemplateSet, error) {
	if *flagTrain == "" {
		path := cfg.Training.Templates
		if path == "" {
			var err error
			if path, err = digit.DefaultTemplatesPath(); err != nil {
				return nil, err
			}
		}
		ts, err := digit.LoadTemplates(path)
		if err == nil {
			log.Debug().Str("path", path).Msg("templates loaded")
			return ts, nil
		}
		log.Warn().Err(err).Str("dir", cfg.Training.Dir).Msg("training from samples instead")
	}

	set, err := samples.LoadTrainingDir(cfg.Training.Dir, logger.Component(log, "samples"))
	if err != nil {
		return nil, err
	}
	ts, err := digit.Train(set)
	if err != nil {
		return nil, fmt.Errorf("training failed: %w", err)
	}
	return ts, nil
}
