// Package cad holds the in-memory geometry model produced by the format
// decoders and consumed by the visualization side.
package cad

import (
	"slices"

	"github.com/philipparndt/cadstream/pkg/geometry"
)

// PrecisionInfo summarizes a decoded model.
type PrecisionInfo struct {
	// MaxError is reserved for a future fidelity metric against a reference
	// geometry. nil means "not computed", which is not the same as zero error.
	MaxError *float64

	VertexCount   int
	TriangleCount int
	// FileSizeBytes is the length of the buffer the model was decoded from.
	FileSizeBytes int
}

// Model is a named, immutable triangle mesh.
type Model struct {
	name      string
	triangles []geometry.Triangle
	bounds    geometry.BoundingBox
	precision PrecisionInfo
}

// New builds a model from a finished triangle sequence. Bounds and counts
// are computed here once. The model keeps its own copy of triangles.
func New(name string, triangles []geometry.Triangle, fileSize int) *Model {
	owned := slices.Clone(triangles)
	return &Model{
		name:      name,
		triangles: owned,
		bounds:    geometry.ComputeBounds(owned),
		precision: PrecisionInfo{
			VertexCount:   3 * len(owned),
			TriangleCount: len(owned),
			FileSizeBytes: fileSize,
		},
	}
}

// Name returns the source identifier of the model
func (m *Model) Name() string {
	return m.name
}

// Triangles returns the triangles in source order. The slice is shared with
// the model and must not be modified.
func (m *Model) Triangles() []geometry.Triangle {
	return m.triangles
}

// TriangleCount returns the number of triangles in the model
func (m *Model) TriangleCount() int {
	return m.precision.TriangleCount
}

// Bounds returns the bounding box computed at construction
func (m *Model) Bounds() geometry.BoundingBox {
	return m.bounds
}

// Precision returns the model summary
func (m *Model) Precision() PrecisionInfo {
	return m.precision
}

// Empty reports whether the model has no geometry. Use this rather than
// inspecting the bounds, which are zero for both an empty model and a single
// point at the origin.
func (m *Model) Empty() bool {
	return m.precision.TriangleCount == 0
}

// Center returns the center of the bounding box
func (m *Model) Center() geometry.Vector3 {
	return m.bounds.Center()
}

// Size returns the extent of the bounding box
func (m *Model) Size() geometry.Vector3 {
	return m.bounds.Size()
}

// MaxDimension returns the largest extent, used to normalize view scale
func (m *Model) MaxDimension() float32 {
	return m.bounds.MaxDimension()
}

// SurfaceArea calculates the total surface area of the model
func (m *Model) SurfaceArea() float64 {
	totalArea := 0.0
	for _, triangle := range m.triangles {
		totalArea += float64(triangle.Area())
	}
	return totalArea
}
