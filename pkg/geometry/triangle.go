package geometry

// Triangle represents a triangular facet in 3D space.
//
// Vertices are kept in source order; the winding is significant to
// consumers. Normal is whatever the source file declared and is not
// guaranteed to agree with the winding.
type Triangle struct {
	Normal   Vector3
	Vertices [3]Vector3
}

// NewTriangle creates a new triangle
func NewTriangle(normal, v1, v2, v3 Vector3) Triangle {
	return Triangle{
		Normal:   normal,
		Vertices: [3]Vector3{v1, v2, v3},
	}
}

// CalculateNormal computes the unit normal implied by the vertex winding
func (t Triangle) CalculateNormal() Vector3 {
	edge1 := t.Vertices[1].Sub(t.Vertices[0])
	edge2 := t.Vertices[2].Sub(t.Vertices[0])
	return edge1.Cross(edge2).Normalize()
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float32 {
	edge1 := t.Vertices[1].Sub(t.Vertices[0])
	edge2 := t.Vertices[2].Sub(t.Vertices[0])
	return edge1.Cross(edge2).Length() / 2.0
}

// Center returns the centroid of the triangle
func (t Triangle) Center() Vector3 {
	return t.Vertices[0].Add(t.Vertices[1]).Add(t.Vertices[2]).Mul(1.0 / 3.0)
}
