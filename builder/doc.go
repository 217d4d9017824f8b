// SPDX-License-Identifier: MIT

// Package builder assembles ready-made graphs for the graph explorer: paths,
// cycles, stars, wheels, grids, complete and complete-bipartite graphs,
// complete binary trees and Erdős–Rényi random graphs. Every constructor also
// lays its nodes out in scene space so a renderer can draw the result as is.
//
// Components:
//
//   - Constructor: func(*core.Graph, builderConfig) error, one per topology.
//   - BuildGraph / Apply: run constructors in order on a new or existing graph.
//   - BuilderOption: WithSpacing, WithOrigin, WithValues, WithSeed, WithRand.
//   - Preset: name lookup ("path", "grid", "random", ...) for the server and CLI.
//
// Edges follow a canonical orientation (left to right, parent to child,
// center to rim, lower index to higher), which matters only once the graph
// is directed.
//
// Errors are sentinels (ErrTooFewVertices, ErrInvalidProbability,
// ErrNeedRandSource, ErrUnknownPreset, ...) wrapped with the constructor
// name; branch on them with errors.Is.
package builder
