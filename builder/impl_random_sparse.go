// SPDX-License-Identifier: MIT
// Package: algoviz/builder
//
// impl_random_sparse.go: RandomSparse(n, p): Erdős–Rényi G(n,p) on a ring.
//
// Contract:
//   • n ≥ MinRandomNodes; p ∈ [0,1].
//   • p in (0,1) requires cfg.rng (WithSeed/WithRand); p=0 and p=1 do not.
//   • Pairs are sampled in (i<j) order, one draw each, so a fixed seed yields
//     a fixed graph.
//
// Complexity: O(n²).

package builder

import (
	"github.com/katalvlaran/algoviz/core"
	"github.com/katalvlaran/algoviz/geom"
)

// RandomSparse returns a Constructor that includes each pair with
// probability p.
func RandomSparse(n int, p float64) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < MinRandomNodes {
			return wrapf(MethodRandomSparse, ErrTooFewVertices, "n=%d < %d", n, MinRandomNodes)
		}
		if p < 0 || p > 1 {
			return wrapf(MethodRandomSparse, ErrInvalidProbability, "p=%.4f", p)
		}
		if p > 0 && p < 1 && cfg.rng == nil {
			return wrapf(MethodRandomSparse, ErrNeedRandSource, "p=%.4f", p)
		}
		r := ringRadius(n, cfg.spacing)
		pos := make([]geom.Vec3, n)
		for i := range pos {
			pos[i] = ring(i, n, r, cfg.origin)
		}
		ids := addNodes(g, cfg, 0, pos)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				include := p == 1
				if p > 0 && p < 1 {
					include = cfg.rng.Float64() < p
				}
				if !include {
					continue
				}
				if err := connect(g, MethodRandomSparse, ids[i], ids[j]); err != nil {
					return err
				}
			}
		}
		return nil
	}
}
