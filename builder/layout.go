// SPDX-License-Identifier: MIT
// Package: algoviz/builder
//
// layout.go: shared placement helpers. Positions are display-only; every
// constructor lays its nodes out around cfg.origin.

package builder

import (
	"math"

	"github.com/katalvlaran/algoviz/core"
	"github.com/katalvlaran/algoviz/geom"
)

// ringRadius returns a radius that keeps n nodes on a circle roughly
// spacing apart, never smaller than spacing.
func ringRadius(n int, spacing float64) float64 {
	r := spacing * float64(n) / (2 * math.Pi)
	if r < spacing {
		return spacing
	}
	return r
}

// ring returns slot i of n on a circle of radius r in the XY plane,
// starting at the top and running clockwise.
func ring(i, n int, r float64, origin geom.Vec3) geom.Vec3 {
	theta := math.Pi/2 - 2*math.Pi*float64(i)/float64(n)
	return origin.Add(geom.Vec3{X: r * math.Cos(theta), Y: r * math.Sin(theta)})
}

// addNodes creates one node per position, numbering values from base through
// cfg.valueFn, and returns the generated ids in order.
func addNodes(g *core.Graph, cfg builderConfig, base int, pos []geom.Vec3) []string {
	ids := make([]string, len(pos))
	for i, p := range pos {
		ids[i] = g.AddNode(cfg.valueFn(base+i), p)
	}
	return ids
}

// connect adds edge u→v, wrapping any core error with method context.
func connect(g *core.Graph, method, u, v string) error {
	if _, err := g.AddEdge(u, v); err != nil {
		return wrapf(method, err, "edge %s-%s", u, v)
	}
	return nil
}
