package geometry

import (
	"math"
	"testing"
)

func TestVector3Add(t *testing.T) {
	v1 := NewVector3(1, 2, 3)
	v2 := NewVector3(4, 5, 6)
	result := v1.Add(v2)

	expected := NewVector3(5, 7, 9)
	if result != expected {
		t.Errorf("Add failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Sub(t *testing.T) {
	v1 := NewVector3(5, 7, 9)
	v2 := NewVector3(1, 2, 3)
	result := v1.Sub(v2)

	expected := NewVector3(4, 5, 6)
	if result != expected {
		t.Errorf("Sub failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Length(t *testing.T) {
	v := NewVector3(3, 4, 0)
	length := v.Length()

	var expected float32 = 5.0
	if math.Abs(float64(length-expected)) > 1e-6 {
		t.Errorf("Length failed: expected %v, got %v", expected, length)
	}
}

func TestVector3Distance(t *testing.T) {
	v1 := NewVector3(0, 0, 0)
	v2 := NewVector3(3, 4, 0)
	distance := v1.Distance(v2)

	var expected float32 = 5.0
	if math.Abs(float64(distance-expected)) > 1e-6 {
		t.Errorf("Distance failed: expected %v, got %v", expected, distance)
	}
}

func TestVector3Normalize(t *testing.T) {
	v := NewVector3(3, 4, 0)
	normalized := v.Normalize()

	actualLength := normalized.Length()
	if math.Abs(float64(actualLength-1)) > 1e-6 {
		t.Errorf("Normalize failed: expected length 1, got %v", actualLength)
	}

	if zero := (Vector3{}).Normalize(); zero != (Vector3{}) {
		t.Errorf("Normalize of zero vector failed: expected zero, got %v", zero)
	}
}

func TestVector3Cross(t *testing.T) {
	v1 := NewVector3(1, 0, 0)
	v2 := NewVector3(0, 1, 0)
	result := v1.Cross(v2)

	expected := NewVector3(0, 0, 1)
	if result != expected {
		t.Errorf("Cross failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Dot(t *testing.T) {
	v1 := NewVector3(1, 2, 3)
	v2 := NewVector3(4, 5, 6)
	result := v1.Dot(v2)

	var expected float32 = 32.0 // 1*4 + 2*5 + 3*6 = 32
	if result != expected {
		t.Errorf("Dot failed: expected %v, got %v", expected, result)
	}
}

func TestVector3MinMax(t *testing.T) {
	a := NewVector3(1, -5, 3)
	b := NewVector3(-2, 4, 3)

	if got, want := a.Min(b), NewVector3(-2, -5, 3); got != want {
		t.Errorf("Min failed: expected %v, got %v", want, got)
	}
	if got, want := a.Max(b), NewVector3(1, 4, 3); got != want {
		t.Errorf("Max failed: expected %v, got %v", want, got)
	}
	if got := NewVector3(1, 7, -2).MaxComponent(); got != 7 {
		t.Errorf("MaxComponent failed: expected 7, got %v", got)
	}
}

func TestVector3MinMaxNaN(t *testing.T) {
	nan := float32(math.NaN())
	a := NewVector3(nan, 2, nan)
	b := NewVector3(1, nan, nan)

	got := a.Min(b)
	if got.X != 1 || got.Y != 2 || !math.IsNaN(float64(got.Z)) {
		t.Errorf("Min failed: expected (1, 2, NaN), got %v", got)
	}
	got = a.Max(b)
	if got.X != 1 || got.Y != 2 || !math.IsNaN(float64(got.Z)) {
		t.Errorf("Max failed: expected (1, 2, NaN), got %v", got)
	}
	if got := NewVector3(nan, -3, 4).MaxComponent(); got != 4 {
		t.Errorf("MaxComponent failed: expected 4, got %v", got)
	}
}
