// Package ingest turns file-system changes into published models: it
// resolves a decoder per file, decodes, and publishes to a Store.
package ingest

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/philipparndt/cadstream/pkg/cad"
	"github.com/philipparndt/cadstream/pkg/format"
	"github.com/philipparndt/cadstream/pkg/watcher"
)

// Options configures a Pipeline
type Options struct {
	// Registry supplies decoders; nil uses format.Default.
	Registry *format.Registry
	// SettleDelay is waited before reading a file that was just reported
	// as changed, so a writer can finish.
	SettleDelay time.Duration
	Logger      *log.Logger
}

// Pipeline processes one file at a time and publishes the result.
type Pipeline struct {
	store    *Store
	registry *format.Registry
	settle   time.Duration
	logger   *log.Logger
}

// NewPipeline creates a pipeline publishing to store
func NewPipeline(store *Store, opts Options) *Pipeline {
	registry := opts.Registry
	if registry == nil {
		registry = format.Default
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Pipeline{
		store:    store,
		registry: registry,
		settle:   opts.SettleDelay,
		logger:   logger,
	}
}

// Store returns the slot the pipeline publishes to
func (p *Pipeline) Store() *Store {
	return p.store
}

// Supports reports whether path has an extension with a decoder
func (p *Pipeline) Supports(path string) bool {
	return p.registry.Supports(filepath.Ext(path))
}

// ProcessFile waits for the settle delay, then decodes path and publishes
// the model. On failure nothing is published and the previous model stays.
func (p *Pipeline) ProcessFile(ctx context.Context, path string) (*cad.Model, error) {
	if p.settle > 0 {
		timer := time.NewTimer(p.settle)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return p.load(path)
}

func (p *Pipeline) load(path string) (*cad.Model, error) {
	model, decoder, err := p.registry.DecodeFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to process %s: %w", path, err)
	}

	snap := p.store.Publish(path, model)

	size := model.Size()
	p.logger.Printf("loaded %s (using %s): %d triangles, size %.2f x %.2f x %.2f, %d bytes, revision %s",
		model.Name(), decoder.Name(), model.TriangleCount(),
		size.X, size.Y, size.Z, model.Precision().FileSizeBytes, snap.Revision)

	return model, nil
}

// LoadExisting publishes the first supported file in dir, in name order,
// that decodes successfully. Files that fail are logged and skipped. It
// returns the loaded path, or "" if nothing could be loaded.
func (p *Pipeline) LoadExisting(ctx context.Context, dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to list %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() && p.Supports(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	slices.Sort(names)

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		path := filepath.Join(dir, name)
		p.logger.Printf("found existing file %s", path)
		if _, err := p.load(path); err != nil {
			p.logger.Printf("failed to load existing file: %v", err)
			continue
		}
		return path, nil
	}
	return "", nil
}

// Run processes paths from events until ctx is cancelled. A failing file
// is logged and does not stop the loop.
func (p *Pipeline) Run(ctx context.Context, events <-chan string) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case path := <-events:
			p.logger.Printf("detected change: %s", path)
			if _, err := p.ProcessFile(ctx, path); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				p.logger.Printf("failed to process file: %v", err)
			}
		}
	}
}

// WatchOptions configures Watch
type WatchOptions struct {
	Debounce     time.Duration
	QueueSize    int
	LoadExisting bool
}

// Watch loads existing files if asked, then watches dir until ctx is
// cancelled.
func (p *Pipeline) Watch(ctx context.Context, dir string, opts WatchOptions) error {
	w, err := watcher.NewDirWatcher(dir, watcher.Options{
		Accept:    p.Supports,
		Debounce:  opts.Debounce,
		QueueSize: opts.QueueSize,
		Logger:    p.logger,
	})
	if err != nil {
		return err
	}
	defer w.Close()

	p.logger.Printf("watching directory %s for %v", w.Dir(), p.registry.SupportedExtensions())
	w.Start()

	if opts.LoadExisting {
		if _, err := p.LoadExisting(ctx, w.Dir()); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}

	return p.Run(ctx, w.Events())
}
