// Package math provides the small vector types shared by the course builder.
// Components are float64 meters; X is lateral, Z runs from tee toward green.
package math

import "math"

// Vec2 is a point or direction on the ground plane (X, Z).
type Vec2 struct {
	X, Z float64
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Z - other.Z}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Z * s}
}

// Dot returns the dot product.
func (v Vec2) Dot(other Vec2) float64 {
	return v.X*other.X + v.Z*other.Z
}

// Cross returns the scalar 2D cross product. Positive when other lies
// counter-clockwise from v with X as the first axis and Z as the second.
func (v Vec2) Cross(other Vec2) float64 {
	return v.X*other.Z - v.Z*other.X
}

// Length returns the magnitude.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Z)
}

// Normalize returns a unit vector.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Z / l}
}

// Distance returns the distance to another point.
func (v Vec2) Distance(other Vec2) float64 {
	return v.Sub(other).Length()
}

// Vec3 returns the point lifted to height y.
func (v Vec2) Vec3(y float64) Vec3 {
	return Vec3{X: v.X, Y: y, Z: v.Z}
}
