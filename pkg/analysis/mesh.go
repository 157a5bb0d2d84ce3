// Package analysis computes topological statistics of a decoded mesh.
package analysis

import (
	"cmp"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/philipparndt/cadstream/pkg/cad"
	"github.com/philipparndt/cadstream/pkg/geometry"
)

// Edge is an undirected mesh edge with the number of triangles using it
type Edge struct {
	Start  geometry.Vector3
	End    geometry.Vector3
	Length float64
	Uses   int
}

// MeshStats summarizes the edges of a model. Vertices are matched by exact
// coordinates, as STL stores every vertex per facet.
type MeshStats struct {
	TriangleCount    int
	EdgeCount        int
	BoundaryEdges    int // used by exactly one triangle
	NonManifoldEdges int // used by more than two triangles
	MinEdgeLength    float64
	MaxEdgeLength    float64
	AvgEdgeLength    float64
	// EdgeLengthStdDev is the sample standard deviation, 0 below two edges.
	EdgeLengthStdDev float64

	edges []Edge
}

// Watertight reports whether every edge is shared by exactly two triangles
func (s *MeshStats) Watertight() bool {
	return s.EdgeCount > 0 && s.BoundaryEdges == 0 && s.NonManifoldEdges == 0
}

type edgeKey [2]geometry.Vector3

func compareVectors(a, b geometry.Vector3) int {
	return cmp.Or(cmp.Compare(a.X, b.X), cmp.Compare(a.Y, b.Y), cmp.Compare(a.Z, b.Z))
}

func newEdgeKey(a, b geometry.Vector3) edgeKey {
	if compareVectors(a, b) > 0 {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// AnalyzeModel collects the unique edges of model
func AnalyzeModel(model *cad.Model) *MeshStats {
	stats := &MeshStats{TriangleCount: model.TriangleCount()}

	index := make(map[edgeKey]int)
	for _, triangle := range model.Triangles() {
		v := triangle.Vertices
		for _, pair := range [3][2]geometry.Vector3{{v[0], v[1]}, {v[1], v[2]}, {v[2], v[0]}} {
			key := newEdgeKey(pair[0], pair[1])
			if i, ok := index[key]; ok {
				stats.edges[i].Uses++
				continue
			}
			index[key] = len(stats.edges)
			stats.edges = append(stats.edges, Edge{
				Start:  key[0],
				End:    key[1],
				Length: float64(key[0].Distance(key[1])),
				Uses:   1,
			})
		}
	}

	stats.EdgeCount = len(stats.edges)
	if stats.EdgeCount == 0 {
		return stats
	}

	lengths := make([]float64, stats.EdgeCount)
	stats.MinEdgeLength = math.MaxFloat64
	for i, edge := range stats.edges {
		switch {
		case edge.Uses == 1:
			stats.BoundaryEdges++
		case edge.Uses > 2:
			stats.NonManifoldEdges++
		}
		lengths[i] = edge.Length
		stats.MinEdgeLength = min(stats.MinEdgeLength, edge.Length)
		stats.MaxEdgeLength = max(stats.MaxEdgeLength, edge.Length)
	}
	stats.AvgEdgeLength = stat.Mean(lengths, nil)
	if len(lengths) > 1 {
		stats.EdgeLengthStdDev = stat.StdDev(lengths, nil)
	}

	return stats
}

// LongestEdges returns up to count edges, longest first
func (s *MeshStats) LongestEdges(count int) []Edge {
	edges := slices.Clone(s.edges)
	slices.SortStableFunc(edges, func(a, b Edge) int {
		return cmp.Compare(b.Length, a.Length)
	})
	return edges[:min(count, len(edges))]
}
