package geometry

// BoundingBox represents an axis-aligned bounding box.
//
// A box computed from no geometry has both corners at the origin, which
// cannot be told apart from a single point at the origin. Callers that need
// to know whether there is any geometry must check the triangle count.
type BoundingBox struct {
	Min Vector3
	Max Vector3
}

// ComputeBounds returns the component-wise extent of all triangle vertices.
// An empty slice yields the degenerate zero box.
func ComputeBounds(triangles []Triangle) BoundingBox {
	if len(triangles) == 0 {
		return BoundingBox{}
	}

	first := triangles[0].Vertices[0]
	bbox := BoundingBox{Min: first, Max: first}
	for _, triangle := range triangles {
		for _, vertex := range triangle.Vertices {
			bbox.Extend(vertex)
		}
	}
	return bbox
}

// Extend expands the bounding box to include a point
func (b *BoundingBox) Extend(point Vector3) {
	b.Min = b.Min.Min(point)
	b.Max = b.Max.Max(point)
}

// Size returns the dimensions of the bounding box
func (b BoundingBox) Size() Vector3 {
	return b.Max.Sub(b.Min)
}

// Center returns the center point of the bounding box
func (b BoundingBox) Center() Vector3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// MaxDimension returns the largest extent along any axis
func (b BoundingBox) MaxDimension() float32 {
	return b.Size().MaxComponent()
}

// Diagonal returns the length of the bounding box diagonal
func (b BoundingBox) Diagonal() float32 {
	return b.Size().Length()
}

// Corners returns the eight corners of the box, bottom face first
func (b BoundingBox) Corners() [8]Vector3 {
	lo, hi := b.Min, b.Max
	return [8]Vector3{
		{lo.X, lo.Y, lo.Z}, {hi.X, lo.Y, lo.Z}, {hi.X, hi.Y, lo.Z}, {lo.X, hi.Y, lo.Z},
		{lo.X, lo.Y, hi.Z}, {hi.X, lo.Y, hi.Z}, {hi.X, hi.Y, hi.Z}, {lo.X, hi.Y, hi.Z},
	}
}
