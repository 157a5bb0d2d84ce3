package cad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/cadstream/pkg/geometry"
)

func unitTriangle() geometry.Triangle {
	return geometry.NewTriangle(
		geometry.NewVector3(0, 0, 1),
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(1, 0, 0),
		geometry.NewVector3(0, 1, 0),
	)
}

func TestNewModel(t *testing.T) {
	t.Parallel()

	t.Run("computes counts and bounds at construction", func(t *testing.T) {
		t.Parallel()
		tris := []geometry.Triangle{
			unitTriangle(),
			geometry.NewTriangle(
				geometry.NewVector3(0, 0, -1),
				geometry.NewVector3(2, 3, -4),
				geometry.NewVector3(1, 0, 0),
				geometry.NewVector3(0, 1, 0),
			),
		}

		m := New("part.stl", tris, 184)

		assert.Equal(t, "part.stl", m.Name())
		assert.Equal(t, 2, m.TriangleCount())
		assert.Equal(t, 6, m.Precision().VertexCount)
		assert.Equal(t, 184, m.Precision().FileSizeBytes)
		assert.Nil(t, m.Precision().MaxError, "max error is not computed")
		assert.Equal(t, geometry.NewVector3(0, 0, -4), m.Bounds().Min)
		assert.Equal(t, geometry.NewVector3(2, 3, 0), m.Bounds().Max)
		assert.Equal(t, geometry.NewVector3(2, 3, 4), m.Size())
		assert.Equal(t, geometry.NewVector3(1, 1.5, -2), m.Center())
		assert.Equal(t, float32(4), m.MaxDimension())
		assert.False(t, m.Empty())
	})

	t.Run("empty model has zero box and is reported empty", func(t *testing.T) {
		t.Parallel()
		m := New("empty.stl", nil, 84)

		assert.True(t, m.Empty())
		assert.Equal(t, 0, m.Precision().VertexCount)
		assert.Equal(t, geometry.BoundingBox{}, m.Bounds())
		assert.Equal(t, float32(0), m.MaxDimension())
	})

	t.Run("owns a copy of the triangles", func(t *testing.T) {
		t.Parallel()
		tris := []geometry.Triangle{unitTriangle()}
		m := New("copy.stl", tris, 0)

		tris[0].Vertices[0] = geometry.NewVector3(100, 100, 100)

		require.Len(t, m.Triangles(), 1)
		assert.Equal(t, geometry.NewVector3(0, 0, 0), m.Triangles()[0].Vertices[0])
		assert.Equal(t, geometry.NewVector3(1, 1, 0), m.Bounds().Max)
	})
}

func TestModelSurfaceArea(t *testing.T) {
	m := New("area.stl", []geometry.Triangle{unitTriangle(), unitTriangle()}, 0)

	assert.InDelta(t, 1.0, m.SurfaceArea(), 1e-6)
}
