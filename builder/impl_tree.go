// SPDX-License-Identifier: MIT
// Package: algoviz/builder
//
// impl_tree.go: BinaryTree(n): a complete binary tree in heap order.
// Node i has children 2i+1 and 2i+2; edges point from parent to child and
// positions come from geom.TreeLayout centered on cfg.origin.
//
// Complexity: O(n).

package builder

import (
	"github.com/katalvlaran/algoviz/core"
	"github.com/katalvlaran/algoviz/geom"
)

// BinaryTree returns a Constructor for a complete binary tree of n nodes.
func BinaryTree(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < MinTreeNodes {
			return wrapf(MethodTree, ErrTooFewVertices, "n=%d < %d", n, MinTreeNodes)
		}
		layout := geom.TreeLayout{
			Width:       cfg.spacing * 3,
			LevelHeight: cfg.spacing,
			Origin:      cfg.origin,
		}
		pos := make([]geom.Vec3, n)
		depth := make([]int, n)
		pos[0] = layout.Root()
		for i := 1; i < n; i++ {
			parent := (i - 1) / 2
			depth[i] = depth[parent] + 1
			pos[i] = layout.Child(pos[parent], depth[i], i%2 == 0)
		}
		ids := addNodes(g, cfg, 0, pos)
		for i := 1; i < n; i++ {
			if err := connect(g, MethodTree, ids[(i-1)/2], ids[i]); err != nil {
				return err
			}
		}
		return nil
	}
}
