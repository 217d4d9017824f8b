// SPDX-License-Identifier: MIT
// Package: algoviz/builder
//
// constants.go: minimum sizes and method tokens used in error context.

package builder

// Minimum parameter values per constructor.
const (
	MinPathNodes     = 1
	MinCycleNodes    = 3
	MinStarNodes     = 2
	MinWheelNodes    = 4
	MinGridDim       = 1
	MinCompleteNodes = 1
	MinPartitionSize = 1
	MinTreeNodes     = 1
	MinRandomNodes   = 1
)

// MaxVertices caps Preset sizes; a scene with more nodes is unreadable.
const MaxVertices = 64

// DefaultRandomProbability is the edge probability Preset uses for "random".
const DefaultRandomProbability = 0.3

// Method tokens prefix wrapped errors.
const (
	MethodPath         = "Path"
	MethodCycle        = "Cycle"
	MethodStar         = "Star"
	MethodWheel        = "Wheel"
	MethodGrid         = "Grid"
	MethodComplete     = "Complete"
	MethodBipartite    = "CompleteBipartite"
	MethodTree         = "BinaryTree"
	MethodRandomSparse = "RandomSparse"
	MethodPreset       = "Preset"
)
