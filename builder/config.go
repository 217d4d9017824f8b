// SPDX-License-Identifier: MIT
// Package: algoviz/builder
//
// config.go: resolved, immutable configuration shared by all constructors.

package builder

import (
	"math/rand"

	"github.com/katalvlaran/algoviz/geom"
)

// DefaultSpacing is the distance between neighboring nodes in a layout.
const DefaultSpacing = 3.0

// builderConfig is resolved once per BuildGraph call.
type builderConfig struct {
	// spacing is the distance between adjacent nodes in rows, grids and rings.
	spacing float64

	// origin is the center of every layout.
	origin geom.Vec3

	// valueFn maps a node's creation index (0-based) to its value.
	valueFn func(i int) int

	// rng drives stochastic constructors; nil unless WithSeed/WithRand.
	rng *rand.Rand
}

func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		spacing: DefaultSpacing,
		valueFn: func(i int) int { return i + 1 },
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
