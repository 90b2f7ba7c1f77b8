// Package debug persists intermediate rasters of a recognition run.
// Snapshot failures are logged and never reach the caller.
package debug

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"
)

// Sink receives tagged snapshots of pipeline stages.
type Sink interface {
	Snapshot(tag string, img image.Image)
}

// Nop discards snapshots.
type Nop struct{}

// Snapshot does nothing.
func (Nop) Snapshot(string, image.Image) {}

// DirSink writes each snapshot as <unix-millis>_<tag>.png into a directory.
// Tags may contain slashes to group snapshots in subdirectories.
type DirSink struct {
	Dir string
	Log zerolog.Logger
	Now func() time.Time
}

// NewDirSink returns a sink writing into dir. The directory is created on
// the first snapshot.
func NewDirSink(dir string, log zerolog.Logger) *DirSink {
	return &DirSink{Dir: dir, Log: log, Now: time.Now}
}

// Path returns the file a snapshot with tag would be written to at t.
func (s *DirSink) Path(tag string, t time.Time) string {
	dir, name := filepath.Split(filepath.FromSlash(tag))
	return filepath.Join(s.Dir, dir, fmt.Sprintf("%d_%s.png", t.UnixMilli(), name))
}

// Snapshot writes img. Errors are logged and dropped.
func (s *DirSink) Snapshot(tag string, img image.Image) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	path := s.Path(tag, now())

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		s.Log.Warn().Err(err).Str("tag", tag).Msg("cannot create snapshot directory")
		return
	}
	if err := imaging.Save(img, path); err != nil {
		s.Log.Warn().Err(err).Str("tag", tag).Msg("cannot write snapshot")
		return
	}
	s.Log.Debug().Str("path", path).Msg("snapshot written")
}
