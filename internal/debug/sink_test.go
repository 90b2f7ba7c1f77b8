package debug

import (
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"
)

func TestDirSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snapshots")
	at := time.UnixMilli(1700000000123)
	sink := NewDirSink(dir, zerolog.Nop())
	sink.Now = func() time.Time { return at }

	img := image.NewGray(image.Rect(0, 0, 7, 5))
	tests := []struct {
		tag  string
		want string
	}{
		{"binarized", filepath.Join(dir, "1700000000123_binarized.png")},
		{"learned/3", filepath.Join(dir, "learned", "1700000000123_3.png")},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			sink.Snapshot(tt.tag, img)
			got, err := imaging.Open(tt.want)
			if err != nil {
				t.Fatalf("snapshot not readable: %v", err)
			}
			if got.Bounds().Size() != img.Bounds().Size() {
				t.Errorf("snapshot size = %v, want %v", got.Bounds().Size(), img.Bounds().Size())
			}
		})
	}
}

func TestDirSinkUnwritable(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}
	// The sink's directory is a regular file; Snapshot must not panic.
	NewDirSink(file, zerolog.Nop()).Snapshot("grid", image.NewGray(image.Rect(0, 0, 2, 2)))
}
