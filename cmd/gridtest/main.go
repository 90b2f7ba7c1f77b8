// Command gridtest runs binarization, skew correction and grid detection on
// a photograph and prints what each stage found.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/disintegration/imaging"

	"sudoku-reader/internal/binarize"
	"sudoku-reader/internal/config"
	"sudoku-reader/internal/extract"
	"sudoku-reader/internal/grid"
	"sudoku-reader/internal/raster"
	"sudoku-reader/internal/samples"
	"sudoku-reader/internal/skew"
)

func main() {
	imagePath := flag.String("image", "", "Path to the puzzle photograph")
	configPath := flag.String("config", "", "TOML configuration file")
	outPath := flag.String("out", "", "Write the rectified grid to this file")
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("Usage: gridtest -image <path> [-config file] [-out rectified.png]")
		os.Exit(1)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	img, err := samples.LoadImage(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	bounds := img.Bounds()
	fmt.Printf("Loaded image: %dx%d pixels\n", bounds.Dx(), bounds.Dy())

	fmt.Printf("\nBinarize: window %d, ratio %.2f\n", cfg.Binarize.Window, cfg.Binarize.Ratio)
	bw := binarize.Binarize(img, cfg.Binarize)

	estimate, err := skew.Measure(bw, cfg.Skew)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Skew estimation failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Skew: %.2f deg from %d lines (spread %.4f rad)\n",
		estimate.Degrees(), estimate.Lines, estimate.Spread)
	rotated, err := skew.Rotate(bw, estimate.Angle)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Rotation failed: %v\n", err)
		os.Exit(1)
	}

	g, err := grid.Find(rotated, cfg.Grid)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Grid detection failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n%-6s %10s %10s\n", "Line", "Row y", "Col x")
	for i := 0; i < grid.Lines; i++ {
		fmt.Printf("%-6d %10d %10d\n", i, g.Rows[i], g.Cols[i])
	}
	corners := g.Corners()
	photo, err := skew.ToSource(bw.Bounds(), estimate.Angle, corners[:]...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot map corners back: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\n%-14s %20s %20s\n", "Corner", "Deskewed", "Photo")
	for i, name := range []string{"top-left", "top-right", "bottom-right", "bottom-left"} {
		fmt.Printf("%-14s (%8.1f, %8.1f) (%8.1f, %8.1f)\n",
			name, corners[i].X, corners[i].Y, photo[i].X, photo[i].Y)
	}

	rectified, err := grid.Rectify(rotated, g, cfg.Grid.OutputSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Rectification failed: %v\n", err)
		os.Exit(1)
	}

	resampled := raster.Resize(rectified, cfg.Extract.Size, cfg.Extract.Size)
	layout := extract.Boundaries(resampled, cfg.Extract)
	fmt.Printf("\nCell boundaries at %dpx: rows %v cols %v\n", cfg.Extract.Size, layout.Rows, layout.Cols)

	if *outPath != "" {
		if err := imaging.Save(rectified, *outPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Saved rectified grid to %s\n", *outPath)
	}
}
