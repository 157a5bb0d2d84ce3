package sink

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/cadstream/internal/ingest"
)

// PNGWriter stores every frame as <model name>-<revision>.png in Dir
type PNGWriter struct {
	Dir string
}

// Show writes the frame
func (w PNGWriter) Show(snap ingest.Snapshot, frame image.Image) error {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot dir: %w", err)
	}

	base := strings.TrimSuffix(snap.Model.Name(), filepath.Ext(snap.Model.Name()))
	path := filepath.Join(w.Dir, fmt.Sprintf("%s-%s.png", base, snap.Revision[:min(8, len(snap.Revision))]))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	if err := png.Encode(f, frame); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return f.Close()
}
