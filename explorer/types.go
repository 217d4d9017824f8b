// SPDX-License-Identifier: MIT

package explorer

import (
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/algoviz/anim"
	"github.com/katalvlaran/algoviz/core"
)

// Topic is the Sink topic the engine publishes under.
const Topic = "graph"

// StepDelay is the base pause after every visible traversal step.
const StepDelay = 700 * time.Millisecond

// Mode names the traversal that is (or was last) running.
type Mode string

const (
	ModeNone Mode = ""
	ModeBFS  Mode = "bfs"
	ModeDFS  Mode = "dfs"
)

// StepKind tags a DFS history record.
type StepKind string

const (
	StepEnter StepKind = "enter"
	StepExit  StepKind = "exit"
)

// Step is one DFS history record.
type Step struct {
	Kind   StepKind `json:"kind"`
	NodeID string   `json:"node"`
	Depth  int      `json:"depth"`
}

// Snapshot is a read-only copy of the graph and the traversal feed.
type Snapshot struct {
	Directed  bool        `json:"directed"`
	Nodes     []core.Node `json:"nodes"`
	Edges     []core.Edge `json:"edges"`
	Mode      Mode        `json:"mode"`
	Queue     []string    `json:"queue"`
	Stack     []string    `json:"stack"`
	History   []Step      `json:"history"`
	Visited   []string    `json:"visited"`
	Status    anim.Status `json:"status"`
	Animating bool        `json:"animating"`
}

// Option configures an Explorer.
type Option func(*Explorer)

// WithPacer shares a Pacer (speed, pause) with other engines.
func WithPacer(p *anim.Pacer) Option {
	return func(e *Explorer) {
		if p != nil {
			e.pacer = p
		}
	}
}

// WithSink sets the render boundary.
func WithSink(s anim.Sink) Option {
	return func(e *Explorer) {
		if s != nil {
			e.sink = s
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(log *zap.Logger) Option {
	return func(e *Explorer) {
		if log != nil {
			e.log = log
		}
	}
}

// WithStepDelay overrides StepDelay.
func WithStepDelay(d time.Duration) Option {
	return func(e *Explorer) {
		if d >= 0 {
			e.delay = d
		}
	}
}

// WithGraph starts the explorer on g instead of an empty undirected graph.
func WithGraph(g *core.Graph) Option {
	return func(e *Explorer) {
		if g != nil {
			e.graph = g
		}
	}
}
