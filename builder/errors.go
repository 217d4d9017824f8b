// SPDX-License-Identifier: MIT
// Package: algoviz/builder
//
// errors.go: sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables (package-level) are exposed.
//   • Callers use errors.Is(err, ErrX) to branch on semantics.
//   • Constructors attach method context with errors.Wrapf.

package builder

import "github.com/cockroachdb/errors"

// ErrTooFewVertices indicates that a numeric parameter (e.g., n, rows, cols)
// is smaller than the allowed minimum for the requested constructor.
var ErrTooFewVertices = errors.New("builder: parameter too small")

// ErrTooManyVertices indicates a preset larger than MaxVertices.
var ErrTooManyVertices = errors.New("builder: parameter too large")

// ErrInvalidProbability indicates that a probability value is outside the
// closed interval [0,1].
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrNeedRandSource indicates that a stochastic constructor requires a
// *rand.Rand in the resolved builderConfig (WithSeed/WithRand).
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates that a constructor could not complete, e.g.
// a nil constructor was passed to BuildGraph or core rejected an edge.
var ErrConstructFailed = errors.New("builder: construction failed")

// ErrUnknownPreset is returned by Preset for an unrecognized name.
var ErrUnknownPreset = errors.New("builder: unknown preset")

// wrapf attaches method context to err.
func wrapf(method string, err error, format string, args ...any) error {
	return errors.Wrapf(err, "%s: "+format, append([]any{method}, args...)...)
}
