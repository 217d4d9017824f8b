// SPDX-License-Identifier: MIT
// Package: algoviz/builder
//
// impl_wheel.go: Wheel(n): a Star(n) whose n-1 leaves also form a cycle.
//
// Contract:
//   • n ≥ MinWheelNodes so the rim is a real cycle (≥3 nodes).
//
// Complexity: O(n).

package builder

import "github.com/katalvlaran/algoviz/core"

// Wheel returns a Constructor for a wheel on n nodes in total.
func Wheel(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < MinWheelNodes {
			return wrapf(MethodWheel, ErrTooFewVertices, "n=%d < %d", n, MinWheelNodes)
		}
		return spokes(g, cfg, MethodWheel, n-1, true)
	}
}
