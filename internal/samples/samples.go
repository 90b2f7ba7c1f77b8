// Package samples loads photographs and labeled training cells from disk.
package samples

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"

	// Extra decoders for image.Decode.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".bmp": true, ".tif": true, ".tiff": true, ".webp": true,
}

// IsImage reports whether name has a supported image extension.
func IsImage(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// LoadImage decodes an image file, applying its EXIF orientation.
func LoadImage(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return img, nil
}

// LoadTrainingDir reads dir/<digit>/<image> samples into a label map.
// Directories that are not a single digit, hidden entries and files that
// are not images are skipped. Unreadable images are logged and skipped.
func LoadTrainingDir(dir string, log zerolog.Logger) (map[int][]image.Image, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read training directory: %w", err)
	}

	samples := make(map[int][]image.Image)
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		label, err := strconv.Atoi(name)
		if err != nil || len(name) != 1 {
			log.Debug().Str("dir", name).Msg("skipping non-digit directory")
			continue
		}

		files, err := os.ReadDir(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("cannot read samples for digit %d: %w", label, err)
		}
		names := make([]string, 0, len(files))
		for _, f := range files {
			if !f.IsDir() && !strings.HasPrefix(f.Name(), ".") && IsImage(f.Name()) {
				names = append(names, f.Name())
			}
		}
		sort.Strings(names)

		for _, n := range names {
			img, err := LoadImage(filepath.Join(dir, name, n))
			if err != nil {
				log.Warn().Err(err).Int("digit", label).Msg("skipping unreadable sample")
				continue
			}
			samples[label] = append(samples[label], img)
		}
		log.Debug().Int("digit", label).Int("samples", len(samples[label])).Msg("loaded training class")
	}
	return samples, nil
}
