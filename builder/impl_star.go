// SPDX-License-Identifier: MIT
// Package: algoviz/builder
//
// impl_star.go: Star(n): a center (first node) with n-1 leaves on a ring.
// Spokes point outward from the center.
//
// Complexity: O(n).

package builder

import (
	"github.com/katalvlaran/algoviz/core"
	"github.com/katalvlaran/algoviz/geom"
)

// Star returns a Constructor for a star on n nodes in total.
func Star(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < MinStarNodes {
			return wrapf(MethodStar, ErrTooFewVertices, "n=%d < %d", n, MinStarNodes)
		}
		return spokes(g, cfg, MethodStar, n-1, false)
	}
}

// spokes adds a center node plus k leaves on a ring, connects center→leaf,
// and optionally closes the rim.
func spokes(g *core.Graph, cfg builderConfig, method string, k int, rim bool) error {
	r := ringRadius(k, cfg.spacing)
	pos := make([]geom.Vec3, k+1)
	pos[0] = cfg.origin
	for i := 0; i < k; i++ {
		pos[i+1] = ring(i, k, r, cfg.origin)
	}
	ids := addNodes(g, cfg, 0, pos)
	for i := 1; i <= k; i++ {
		if err := connect(g, method, ids[0], ids[i]); err != nil {
			return err
		}
	}
	if !rim {
		return nil
	}
	for i := 1; i <= k; i++ {
		next := i%k + 1
		if err := connect(g, method, ids[i], ids[next]); err != nil {
			return err
		}
	}
	return nil
}
