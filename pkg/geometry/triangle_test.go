package geometry

import (
	"math"
	"testing"
)

func TestTriangleArea(t *testing.T) {
	// Create a right triangle with sides 3, 4, 5
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 4, 0),
	)

	area := tri.Area()
	var expected float32 = 6.0 // (3 * 4) / 2 = 6

	if math.Abs(float64(area-expected)) > 1e-6 {
		t.Errorf("Area failed: expected %v, got %v", expected, area)
	}
}

func TestTriangleCalculateNormal(t *testing.T) {
	tri := NewTriangle(
		NewVector3(9, 9, 9), // declared normal is ignored
		NewVector3(0, 0, 0),
		NewVector3(2, 0, 0),
		NewVector3(0, 2, 0),
	)

	expected := NewVector3(0, 0, 1)
	if got := tri.CalculateNormal(); got != expected {
		t.Errorf("CalculateNormal failed: expected %v, got %v", expected, got)
	}
	if tri.Normal != NewVector3(9, 9, 9) {
		t.Errorf("CalculateNormal must not touch the stored normal, got %v", tri.Normal)
	}
}

func TestTriangleCenter(t *testing.T) {
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 3, 0),
	)

	center := tri.Center()
	expected := NewVector3(1, 1, 0)

	if center.Distance(expected) > 1e-6 {
		t.Errorf("Center failed: expected %v, got %v", expected, center)
	}
}

func TestTriangleVertexOrder(t *testing.T) {
	v1, v2, v3 := NewVector3(1, 0, 0), NewVector3(2, 0, 0), NewVector3(3, 0, 0)
	tri := NewTriangle(Vector3{}, v1, v2, v3)

	if tri.Vertices != [3]Vector3{v1, v2, v3} {
		t.Errorf("NewTriangle failed: expected vertices in argument order, got %v", tri.Vertices)
	}
}
