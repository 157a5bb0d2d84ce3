package ingest

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/philipparndt/cadstream/pkg/cad"
)

// Snapshot is one published model together with its provenance.
type Snapshot struct {
	Model *cad.Model
	// Source is the path the model was read from.
	Source string
	// Revision changes on every publish, even when the same file is
	// reloaded with identical content.
	Revision string
	LoadedAt time.Time
}

// Store is the single shared slot holding the current model. Readers run
// concurrently; a publish excludes them.
type Store struct {
	mu      sync.RWMutex
	current *Snapshot
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// Publish replaces the current model and returns the new snapshot
func (s *Store) Publish(source string, model *cad.Model) Snapshot {
	snap := Snapshot{
		Model:    model,
		Source:   source,
		Revision: uuid.NewString(),
		LoadedAt: time.Now(),
	}

	s.mu.Lock()
	s.current = &snap
	s.mu.Unlock()

	return snap
}

// Current returns the latest snapshot, if any model was published
func (s *Store) Current() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return Snapshot{}, false
	}
	return *s.current, true
}
