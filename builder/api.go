// SPDX-License-Identifier: MIT
// Package: algoviz/builder
//
// api.go: public entry points: the Constructor type, the BuildGraph
// orchestrator and the Preset lookup used by the server and the CLI.
//
// Design contract:
//   - One orchestrator: BuildGraph(gopts, bopts, cons...). Creates g, resolves cfg, runs cons in order.
//   - Functional options (BuilderOption) resolve into an immutable builderConfig.
//   - Determinism: same inputs/options/seed and constructor order ⇒ identical graphs.
//   - Constructors never panic; they return sentinel errors wrapped with method context.

package builder

import (
	"math"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/algoviz/core"
)

// Constructor adds a topology to g using the resolved builderConfig.
// Node ids are generated by core, so constructors track the ids they create.
type Constructor func(g *core.Graph, cfg builderConfig) error

// BuildGraph creates a new core.Graph with graph options gopts, resolves the
// builder configuration from bopts, and applies all constructors in order.
// The first constructor error aborts the build; no partial graph is returned.
func BuildGraph(gopts []core.GraphOption, bopts []BuilderOption, cons ...Constructor) (*core.Graph, error) {
	g := core.NewGraph(gopts...)
	if err := Apply(g, bopts, cons...); err != nil {
		return nil, err
	}
	return g, nil
}

// Apply runs constructors against an existing graph. It is how the graph
// explorer loads a preset into the graph it already publishes.
func Apply(g *core.Graph, bopts []BuilderOption, cons ...Constructor) error {
	cfg := newBuilderConfig(bopts...)
	for i, fn := range cons {
		if fn == nil {
			return errors.Wrapf(ErrConstructFailed, "BuildGraph: nil constructor at index %d", i)
		}
		if err := fn(g, cfg); err != nil {
			return errors.Wrap(err, "BuildGraph")
		}
	}
	return nil
}

var presets = map[string]func(n int) Constructor{
	"path":     Path,
	"cycle":    Cycle,
	"star":     Star,
	"wheel":    Wheel,
	"complete": Complete,
	"tree":     BinaryTree,
	"grid": func(n int) Constructor {
		side := int(math.Round(math.Sqrt(float64(n))))
		if side < MinGridDim {
			side = MinGridDim
		}
		return Grid(side, side)
	},
	"bipartite": func(n int) Constructor { return CompleteBipartite(n/2, n-n/2) },
	"random":    func(n int) Constructor { return RandomSparse(n, DefaultRandomProbability) },
}

// PresetNames lists the names Preset accepts, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset resolves a named topology of roughly n nodes. "grid" rounds n to
// the nearest square; "random" needs WithSeed or WithRand at build time.
func Preset(name string, n int) (Constructor, error) {
	mk, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, errors.WithHintf(
			errors.Wrapf(ErrUnknownPreset, "%s: %q", MethodPreset, name),
			"known presets: %s", strings.Join(PresetNames(), ", "))
	}
	if n > MaxVertices {
		return nil, wrapf(MethodPreset, ErrTooManyVertices, "n=%d > %d", n, MaxVertices)
	}
	return mk(n), nil
}
