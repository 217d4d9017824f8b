// SPDX-License-Identifier: MIT
// Package: algoviz/builder
//
// impl_cycle.go: Cycle(n): n nodes on a ring, i→(i+1) mod n.
//
// Contract:
//   • n ≥ MinCycleNodes (a 2-cycle would duplicate an undirected edge).
//
// Complexity: O(n).

package builder

import (
	"github.com/katalvlaran/algoviz/core"
	"github.com/katalvlaran/algoviz/geom"
)

// Cycle returns a Constructor for a simple cycle of n nodes.
func Cycle(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < MinCycleNodes {
			return wrapf(MethodCycle, ErrTooFewVertices, "n=%d < %d", n, MinCycleNodes)
		}
		r := ringRadius(n, cfg.spacing)
		pos := make([]geom.Vec3, n)
		for i := range pos {
			pos[i] = ring(i, n, r, cfg.origin)
		}
		ids := addNodes(g, cfg, 0, pos)
		for i := 0; i < n; i++ {
			if err := connect(g, MethodCycle, ids[i], ids[(i+1)%n]); err != nil {
				return err
			}
		}
		return nil
	}
}
