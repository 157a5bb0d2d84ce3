package geometry

import "math"

// Vector3 represents a 3D point or vector with single-precision components,
// matching the precision STL files store.
type Vector3 struct {
	X, Y, Z float32
}

// NewVector3 creates a new 3D vector
func NewVector3(x, y, z float32) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors
func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Sub returns the difference between two vectors
func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// Mul multiplies the vector by a scalar
func (v Vector3) Mul(scalar float32) Vector3 {
	return Vector3{
		X: v.X * scalar,
		Y: v.Y * scalar,
		Z: v.Z * scalar,
	}
}

// Dot returns the dot product of two vectors
func (v Vector3) Dot(other Vector3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors
func (v Vector3) Cross(other Vector3) Vector3 {
	return Vector3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude of the vector
func (v Vector3) Length() float32 {
	x, y, z := float64(v.X), float64(v.Y), float64(v.Z)
	return float32(math.Sqrt(x*x + y*y + z*z))
}

// Distance returns the distance between two points
func (v Vector3) Distance(other Vector3) float32 {
	return v.Sub(other).Length()
}

// Normalize returns a unit vector in the same direction
func (v Vector3) Normalize() Vector3 {
	length := v.Length()
	if length == 0 {
		return Vector3{}
	}
	return v.Mul(1.0 / length)
}

// Min returns a vector with the minimum components of two vectors. A NaN
// component loses to a number.
func (v Vector3) Min(other Vector3) Vector3 {
	return Vector3{
		X: minNum(v.X, other.X),
		Y: minNum(v.Y, other.Y),
		Z: minNum(v.Z, other.Z),
	}
}

// Max returns a vector with the maximum components of two vectors. A NaN
// component loses to a number.
func (v Vector3) Max(other Vector3) Vector3 {
	return Vector3{
		X: maxNum(v.X, other.X),
		Y: maxNum(v.Y, other.Y),
		Z: maxNum(v.Z, other.Z),
	}
}

// MaxComponent returns the largest non-NaN component
func (v Vector3) MaxComponent() float32 {
	return maxNum(maxNum(v.X, v.Y), v.Z)
}

func isNaN(f float32) bool {
	return f != f
}

// minNum is min that ignores a NaN operand; it is NaN only if both are.
func minNum(a, b float32) float32 {
	switch {
	case isNaN(a):
		return b
	case isNaN(b):
		return a
	}
	return min(a, b)
}

func maxNum(a, b float32) float32 {
	switch {
	case isNaN(a):
		return b
	case isNaN(b):
		return a
	}
	return max(a, b)
}
