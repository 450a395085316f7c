// Package gamemath contains the deterministic movement kernel shared by
// client-side prediction and the authoritative server. It must produce
// bit-identical results on both sides, so it has zero dependencies beyond
// the standard library.
package gamemath

import "math"

// Vec3 is a 3D vector. X/Z span the ground plane, Y is up.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Dist returns the Euclidean distance between two points.
func Dist(a, b Vec3) float64 {
	return a.Sub(b).Length()
}

// Lerp interpolates component-wise between a and b by t.
func Lerp(a, b Vec3, t float64) Vec3 {
	return Vec3{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
	}
}

// LerpScalar interpolates between a and b by t.
func LerpScalar(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpAngle interpolates between two angles (radians) along the shortest arc.
func LerpAngle(a, b, t float64) float64 {
	diff := math.Mod(b-a, 2*math.Pi)
	if diff > math.Pi {
		diff -= 2 * math.Pi
	} else if diff < -math.Pi {
		diff += 2 * math.Pi
	}
	return a + diff*t
}

// Clamp01 clamps t to [0, 1].
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
