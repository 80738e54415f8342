package core

import "math"

// Vec2 is a point or direction in the horizontal (x, z) plane.
type Vec2 struct {
	X float64
	Z float64
}

// Vec3 is a point in world space. Y is elevation.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Z + o.Z} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Z - o.Z} }

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Z * s} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Z) }

// Normalized returns v scaled to unit length, or the zero vector when v is
// too short to carry a direction.
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l < 1e-12 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Z / l}
}

// Perp returns the horizontal-plane perpendicular of v (v crossed with up).
func (v Vec2) Perp() Vec2 { return Vec2{-v.Z, v.X} }

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Len returns the Euclidean length of v.
func (v Vec3) Len() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Horizontal returns the (x, z) projection of v.
func (v Vec3) Horizontal() Vec2 { return Vec2{v.X, v.Z} }

// Lerp returns the linear interpolation between a and b at parameter t.
func Lerp(a, b, t float64) float64 { return a + (b-a)*t }

// LerpVec3 interpolates componentwise between a and b at parameter t.
func LerpVec3(a, b Vec3, t float64) Vec3 {
	return Vec3{Lerp(a.X, b.X, t), Lerp(a.Y, b.Y, t), Lerp(a.Z, b.Z, t)}
}

// Clamp limits v to the closed interval [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
