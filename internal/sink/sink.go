// Package sink hands published models to displays. It polls the model
// store and, on every new revision, logs a summary, rasterizes the model
// and passes the frame to each display.
package sink

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"time"

	"github.com/philipparndt/cadstream/internal/ingest"
	"github.com/philipparndt/cadstream/pkg/viewer"
)

// Display receives one frame per published revision
type Display interface {
	Show(snap ingest.Snapshot, frame image.Image) error
}

// DisplayFunc adapts a function to Display
type DisplayFunc func(snap ingest.Snapshot, frame image.Image) error

// Show calls f
func (f DisplayFunc) Show(snap ingest.Snapshot, frame image.Image) error {
	return f(snap, frame)
}

// Options configures a Sink
type Options struct {
	PollInterval time.Duration
	Render       viewer.Options
	Logger       *log.Logger
}

// Sink watches a store for new revisions
type Sink struct {
	store    *ingest.Store
	displays []Display
	interval time.Duration
	render   viewer.Options
	logger   *log.Logger

	lastRevision string
}

// New creates a sink reading from store
func New(store *ingest.Store, opts Options, displays ...Display) *Sink {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	interval := opts.PollInterval
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	return &Sink{
		store:    store,
		displays: displays,
		interval: interval,
		render:   opts.Render,
		logger:   logger,
	}
}

// Run polls until ctx is cancelled
func (s *Sink) Run(ctx context.Context) error {
	if _, ok := s.store.Current(); !ok {
		s.logger.Printf("waiting for geometry files...")
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if _, err := s.Poll(); err != nil {
			s.logger.Printf("display error: %v", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Poll publishes the current snapshot to the displays if its revision is
// new. It reports whether anything was shown.
func (s *Sink) Poll() (bool, error) {
	snap, ok := s.store.Current()
	if !ok || snap.Revision == s.lastRevision {
		return false, nil
	}
	s.lastRevision = snap.Revision

	s.logger.Print(Summary(snap))

	frame := viewer.Snapshot(snap.Model, s.render)
	var errs []error
	for _, d := range s.displays {
		if err := d.Show(snap, frame); err != nil {
			errs = append(errs, err)
		}
	}
	return true, errors.Join(errs...)
}

// Summary describes a snapshot in one line
func Summary(snap ingest.Snapshot) string {
	m := snap.Model
	size := m.Size()
	return fmt.Sprintf("model %s: %d triangles, bounds %.2f x %.2f x %.2f, file size %d bytes",
		m.Name(), m.TriangleCount(), size.X, size.Y, size.Z, m.Precision().FileSizeBytes)
}
