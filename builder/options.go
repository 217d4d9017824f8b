// SPDX-License-Identifier: MIT
// Package: algoviz/builder
//
// options.go: functional options. Option constructors panic on values that
// can only come from a programming error; constructors never panic.

package builder

import (
	"math/rand"

	"github.com/katalvlaran/algoviz/geom"
)

// BuilderOption mutates builderConfig before any constructor runs.
type BuilderOption func(*builderConfig)

// WithSpacing sets the distance between neighboring nodes. Panics if s <= 0.
func WithSpacing(s float64) BuilderOption {
	if s <= 0 {
		panic("builder: WithSpacing(s<=0)")
	}
	return func(c *builderConfig) { c.spacing = s }
}

// WithOrigin centers every layout on o.
func WithOrigin(o geom.Vec3) BuilderOption {
	return func(c *builderConfig) { c.origin = o }
}

// WithValues sets the node value function. Panics on nil.
func WithValues(fn func(i int) int) BuilderOption {
	if fn == nil {
		panic("builder: WithValues(nil)")
	}
	return func(c *builderConfig) { c.valueFn = fn }
}

// WithRand sets the RNG used by stochastic constructors. Panics on nil.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) { c.rng = r }
}

// WithSeed is WithRand(rand.New(rand.NewSource(seed))).
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}
