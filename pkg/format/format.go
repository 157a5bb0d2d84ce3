// Package format maps file extensions to geometry decoders.
//
// Decoder implementations register themselves with the Default registry
// from an init function, so the set of available formats is decided by
// which implementation packages are linked into the binary:
//
//	import _ "github.com/philipparndt/cadstream/pkg/stl"
package format

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/philipparndt/cadstream/pkg/cad"
)

// Tag identifies a geometry file format
type Tag string

const (
	STL Tag = "stl"
)

// extensions is the static association of file extensions to formats.
var extensions = map[string]Tag{
	"stl": STL,
}

var (
	// ErrUnsupportedFormat is returned when an extension maps to no format.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrNoDecoder means a known format has no implementation linked in.
	ErrNoDecoder = errors.New("no decoder registered")
)

// Decoder turns a raw byte buffer into a model. Implementations must be
// safe for concurrent use on independent buffers.
type Decoder interface {
	Decode(data []byte, name string) (*cad.Model, error)
	Name() string
}

// Factory creates a decoder instance
type Factory func() Decoder

// ConfigError reports a build or deployment problem rather than bad input.
type ConfigError struct {
	Tag Tag
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("format %q: %v", e.Tag, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Resolve returns the format for a file extension. Matching ignores case
// and a leading dot.
func Resolve(extension string) (Tag, bool) {
	ext := strings.ToLower(strings.TrimPrefix(extension, "."))
	tag, ok := extensions[ext]
	return tag, ok
}

// Extensions returns the extensions that map to tag
func (t Tag) Extensions() []string {
	var exts []string
	for ext, tag := range extensions {
		if tag == t {
			exts = append(exts, ext)
		}
	}
	slices.Sort(exts)
	return exts
}

// Registry holds one decoder factory per format
type Registry struct {
	mu        sync.RWMutex
	factories map[Tag]Factory
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[Tag]Factory),
	}
}

// Default is the process-wide registry populated by decoder packages.
var Default = NewRegistry()

// Register makes a decoder available for tag. It panics if factory is nil
// or if tag already has a decoder, since two implementations of one format
// would make dispatch ambiguous.
func (r *Registry) Register(tag Tag, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if factory == nil {
		panic("format: Register factory is nil for " + string(tag))
	}
	if _, dup := r.factories[tag]; dup {
		panic("format: Register called twice for " + string(tag))
	}
	r.factories[tag] = factory
}

// CreateDecoder returns a new decoder for tag
func (r *Registry) CreateDecoder(tag Tag) (Decoder, error) {
	r.mu.RLock()
	factory, ok := r.factories[tag]
	r.mu.RUnlock()

	if !ok {
		return nil, &ConfigError{Tag: tag, Err: ErrNoDecoder}
	}
	return factory(), nil
}

// DecoderFor resolves extension and creates its decoder in one step
func (r *Registry) DecoderFor(extension string) (Decoder, error) {
	tag, ok := Resolve(extension)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, extension)
	}
	return r.CreateDecoder(tag)
}

// DecodeFile reads filename and decodes it with the decoder for its
// extension. The model is named after the file's base name. The decoder
// is returned so callers can report which one ran.
func (r *Registry) DecodeFile(filename string) (*cad.Model, Decoder, error) {
	decoder, err := r.DecoderFor(filepath.Ext(filename))
	if err != nil {
		return nil, nil, err
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file: %w", err)
	}

	model, err := decoder.Decode(data, filepath.Base(filename))
	if err != nil {
		return nil, nil, err
	}
	return model, decoder, nil
}

// Tags returns the formats with a registered decoder, sorted
func (r *Registry) Tags() []Tag {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tags := make([]Tag, 0, len(r.factories))
	for tag := range r.factories {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// SupportedExtensions returns every extension that currently has a decoder,
// sorted.
func (r *Registry) SupportedExtensions() []string {
	var exts []string
	for _, tag := range r.Tags() {
		exts = append(exts, tag.Extensions()...)
	}
	slices.Sort(exts)
	return exts
}

// Supports reports whether a file extension has a decoder
func (r *Registry) Supports(extension string) bool {
	tag, ok := Resolve(extension)
	if !ok {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok = r.factories[tag]
	return ok
}

// Register adds a decoder factory to the Default registry
func Register(tag Tag, factory Factory) {
	Default.Register(tag, factory)
}
