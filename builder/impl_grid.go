// SPDX-License-Identifier: MIT
// Package: algoviz/builder
//
// impl_grid.go: Grid(rows, cols): a 4-connected lattice, row-major ids.
// Edges run rightward and downward.
//
// Complexity: O(rows·cols).

package builder

import (
	"github.com/katalvlaran/algoviz/core"
	"github.com/katalvlaran/algoviz/geom"
)

// Grid returns a Constructor for a rows×cols lattice.
func Grid(rows, cols int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if rows < MinGridDim || cols < MinGridDim {
			return wrapf(MethodGrid, ErrTooFewVertices, "rows=%d cols=%d < %d", rows, cols, MinGridDim)
		}
		pos := make([]geom.Vec3, 0, rows*cols)
		for r := 0; r < rows; r++ {
			// Row 0 is on top.
			y := (float64(rows-1)/2 - float64(r)) * cfg.spacing
			for c := 0; c < cols; c++ {
				p := geom.Row(c, cols, cfg.spacing)
				p.Y = y
				pos = append(pos, cfg.origin.Add(p))
			}
		}
		ids := addNodes(g, cfg, 0, pos)
		at := func(r, c int) string { return ids[r*cols+c] }
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				if c+1 < cols {
					if err := connect(g, MethodGrid, at(r, c), at(r, c+1)); err != nil {
						return err
					}
				}
				if r+1 < rows {
					if err := connect(g, MethodGrid, at(r, c), at(r+1, c)); err != nil {
						return err
					}
				}
			}
		}
		return nil
	}
}
