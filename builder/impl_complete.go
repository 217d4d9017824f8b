// SPDX-License-Identifier: MIT
// Package: algoviz/builder
//
// impl_complete.go: Complete(n) and CompleteBipartite(n1, n2).
//
// Complete places n nodes on a ring and adds i→j for every i<j, so a directed
// graph built this way is acyclic. CompleteBipartite places the left part in a
// column at -spacing·2 and the right part at +spacing·2, edges left→right.
//
// Complexity: O(n²) and O(n1·n2).

package builder

import (
	"github.com/katalvlaran/algoviz/core"
	"github.com/katalvlaran/algoviz/geom"
)

// Complete returns a Constructor for K_n.
func Complete(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < MinCompleteNodes {
			return wrapf(MethodComplete, ErrTooFewVertices, "n=%d < %d", n, MinCompleteNodes)
		}
		r := ringRadius(n, cfg.spacing)
		pos := make([]geom.Vec3, n)
		for i := range pos {
			pos[i] = ring(i, n, r, cfg.origin)
		}
		ids := addNodes(g, cfg, 0, pos)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if err := connect(g, MethodComplete, ids[i], ids[j]); err != nil {
					return err
				}
			}
		}
		return nil
	}
}

// CompleteBipartite returns a Constructor for K_{n1,n2}.
func CompleteBipartite(n1, n2 int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n1 < MinPartitionSize || n2 < MinPartitionSize {
			return wrapf(MethodBipartite, ErrTooFewVertices, "n1=%d n2=%d < %d", n1, n2, MinPartitionSize)
		}
		column := func(n int, x float64) []geom.Vec3 {
			pos := make([]geom.Vec3, n)
			for i := range pos {
				p := geom.Row(i, n, cfg.spacing)
				pos[i] = cfg.origin.Add(geom.Vec3{X: x, Y: -p.X})
			}
			return pos
		}
		left := addNodes(g, cfg, 0, column(n1, -2*cfg.spacing))
		right := addNodes(g, cfg, n1, column(n2, 2*cfg.spacing))
		for _, u := range left {
			for _, v := range right {
				if err := connect(g, MethodBipartite, u, v); err != nil {
					return err
				}
			}
		}
		return nil
	}
}
