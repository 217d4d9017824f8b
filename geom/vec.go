// SPDX-License-Identifier: MIT
// Package geom holds the small amount of geometry the engines need to hand a
// renderer: a 3D vector, easing curves, and deterministic layouts for rows
// (linked lists, sort arrays) and binary trees.
//
// Positions are display attributes only. Engines recompute them after every
// structural change and never read them back to make algorithmic decisions.
package geom

import "math"

// Vec3 is a point in scene space. Y grows upward.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns v+o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns v-o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Scale returns v*k.
func (v Vec3) Scale(k float64) Vec3 {
	return Vec3{X: v.X * k, Y: v.Y * k, Z: v.Z * k}
}

// Lerp interpolates linearly between a (t=0) and b (t=1).
func Lerp(a, b Vec3, t float64) Vec3 {
	return a.Add(b.Sub(a).Scale(t))
}

// EaseInOut is the cubic ease-in-out curve on [0,1]; inputs outside the
// interval are clamped.
func EaseInOut(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	case t < 0.5:
		return 4 * t * t * t
	default:
		f := -2*t + 2
		return 1 - f*f*f/2
	}
}

// Arc returns the vertical offset of a hop of the given height at progress t:
// zero at both ends, height at the midpoint.
func Arc(height, t float64) float64 {
	return height * math.Sin(math.Pi*t)
}
