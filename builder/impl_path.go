// SPDX-License-Identifier: MIT
// Package: algoviz/builder
//
// impl_path.go: Path(n): a horizontal row of n nodes joined i→i+1.
//
// Contract:
//   • n ≥ MinPathNodes.
//   • Directed graphs keep the left-to-right orientation.
//
// Complexity: O(n).

package builder

import (
	"github.com/katalvlaran/algoviz/core"
	"github.com/katalvlaran/algoviz/geom"
)

// Path returns a Constructor for a path of n nodes.
func Path(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < MinPathNodes {
			return wrapf(MethodPath, ErrTooFewVertices, "n=%d < %d", n, MinPathNodes)
		}
		pos := make([]geom.Vec3, n)
		for i := range pos {
			pos[i] = cfg.origin.Add(geom.Row(i, n, cfg.spacing))
		}
		ids := addNodes(g, cfg, 0, pos)
		for i := 0; i+1 < n; i++ {
			if err := connect(g, MethodPath, ids[i], ids[i+1]); err != nil {
				return err
			}
		}
		return nil
	}
}
