// SPDX-License-Identifier: MIT

package geom

import "math"

// TreeLayout positions binary-tree nodes top-down: the root sits at Origin and
// a child at depth d is offset Width/2^d horizontally from its parent and one
// LevelHeight lower. The result always looks balanced regardless of the
// tree's real shape.
type TreeLayout struct {
	Width       float64
	LevelHeight float64
	Origin      Vec3
}

// DefaultTreeLayout is the layout both tree engines use unless overridden.
var DefaultTreeLayout = TreeLayout{Width: 16, LevelHeight: 2.5, Origin: Vec3{Y: 6}}

// Root returns the root position.
func (l TreeLayout) Root() Vec3 { return l.Origin }

// Child returns the position of a child at childDepth (root is depth 0)
// below parent. right selects the right-hand side.
func (l TreeLayout) Child(parent Vec3, childDepth int, right bool) Vec3 {
	off := l.Width / math.Pow(2, float64(childDepth))
	if !right {
		off = -off
	}
	return Vec3{X: parent.X + off, Y: parent.Y - l.LevelHeight, Z: parent.Z}
}

// Row returns the position of slot i in a centered horizontal row of n slots
// spaced apart.
func Row(i, n int, spacing float64) Vec3 {
	center := float64(n-1) / 2
	return Vec3{X: (float64(i) - center) * spacing}
}
