// Package dfs defines types and options for depth-first search traversal,
// including cancellation, enter/tree-edge/backtrack/exit hooks, depth
// limiting, neighbor filtering, full-graph (forest) traversal, and basic
// diagnostics.
package dfs

import (
	"context"

	"github.com/cockroachdb/errors"
)

// Vertex colors used by TopologicalSort.
const (
	White = iota // White: the vertex has not been visited yet.
	Gray         // Gray: the vertex is in the recursion stack (visiting).
	Black        // Black: the vertex and all its descendants have been fully explored.
)

var (
	// ErrGraphNil is returned when a nil *core.Graph is passed to DFS or
	// TopologicalSort.
	ErrGraphNil = errors.New("dfs: graph is nil")

	// ErrStartVertexNotFound indicates that the specified start vertex ID
	// does not exist in the graph.
	ErrStartVertexNotFound = errors.New("dfs: start vertex not found")

	// ErrCycleDetected indicates that a cycle was encountered during
	// TopologicalSort.
	ErrCycleDetected = errors.New("dfs: cycle detected")

	// ErrUndirected indicates TopologicalSort was called on an undirected graph.
	ErrUndirected = errors.New("dfs: topological sort requires a directed graph")
)

// Option configures optional behavior of DFS traversal.
// Use with DFS(g, startID, opts...).
type Option func(*DFSOptions)

// DFSOptions holds configurable parameters for DFS traversal.
//
// For each vertex the hooks fire as: OnEnter, then per unvisited neighbor
// OnTreeEdge, the recursive descent, OnBacktrack; finally OnExit. A hook
// returning an error aborts the traversal with that error.
type DFSOptions struct {
	// Ctx allows cancellation or timeouts; defaults to context.Background().
	Ctx context.Context

	// OnEnter is invoked when a vertex is discovered (pre-order).
	OnEnter func(id string, depth int) error

	// OnTreeEdge is invoked before descending from over edgeID into an
	// unvisited to.
	OnTreeEdge func(from, to, edgeID string, depth int) error

	// OnBacktrack is invoked after the descent into to has returned.
	OnBacktrack func(from, to, edgeID string) error

	// OnExit is invoked after all descendants of a vertex were explored
	// (post-order), before it is appended to Order.
	OnExit func(id string, depth int) error

	// MaxDepth, if non-negative, limits recursion to the given depth.
	// A depth of 0 visits only the start vertex. Default is -1 (no limit).
	MaxDepth int

	// FilterNeighbor, if non-nil, is called for each neighbor ID before recurse.
	// Return true to traverse into that neighbor, false to skip it.
	FilterNeighbor func(id string) bool

	// FullTraversal, if true, runs DFS from every unvisited vertex in the graph,
	// covering disconnected components (forest traversal). Default is false.
	FullTraversal bool
}

// DefaultOptions returns a DFSOptions struct with:
//   - Background context
//   - No hooks
//   - No depth limit (MaxDepth = -1)
//   - No neighbor filtering
//   - Single-source traversal (FullTraversal = false)
func DefaultOptions() DFSOptions {
	return DFSOptions{
		Ctx:      context.Background(),
		MaxDepth: -1,
	}
}

// WithContext returns an Option that sets the Context for DFS traversal.
// Passing a nil context has no effect (Background is retained).
func WithContext(ctx context.Context) Option {
	return func(o *DFSOptions) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnEnter installs fn as a pre-order hook.
func WithOnEnter(fn func(id string, depth int) error) Option {
	return func(o *DFSOptions) { o.OnEnter = fn }
}

// WithOnTreeEdge installs fn as the hook run before each descent.
func WithOnTreeEdge(fn func(from, to, edgeID string, depth int) error) Option {
	return func(o *DFSOptions) { o.OnTreeEdge = fn }
}

// WithOnBacktrack installs fn as the hook run after each descent returns.
func WithOnBacktrack(fn func(from, to, edgeID string) error) Option {
	return func(o *DFSOptions) { o.OnBacktrack = fn }
}

// WithOnExit installs fn as a post-order hook.
func WithOnExit(fn func(id string, depth int) error) Option {
	return func(o *DFSOptions) { o.OnExit = fn }
}

// WithMaxDepth returns an Option that limits traversal depth to limit.
// A limit of 0 means only the start vertex is visited.
func WithMaxDepth(limit int) Option {
	return func(o *DFSOptions) { o.MaxDepth = limit }
}

// WithFilterNeighbor returns an Option that filters neighbor IDs.
// If fn(id) == false, that neighbor is skipped and counted in SkippedNeighbors.
func WithFilterNeighbor(fn func(id string) bool) Option {
	return func(o *DFSOptions) { o.FilterNeighbor = fn }
}

// WithFullTraversal returns an Option that enables full-graph traversal.
// When set, DFS will restart from each unvisited vertex, covering disconnected components.
func WithFullTraversal() Option {
	return func(o *DFSOptions) { o.FullTraversal = true }
}

// DFSResult captures the outcome of a depth-first traversal.
type DFSResult struct {
	// Order records vertices in the sequence they finished (post-order).
	Order []string

	// Preorder records vertices in the sequence they were discovered.
	Preorder []string

	// Depth maps each vertex ID to its distance (#edges) from the root of
	// its DFS tree.
	Depth map[string]int

	// Parent maps each vertex ID to the ID of the vertex from which it was
	// first discovered. Roots do not appear.
	Parent map[string]string

	// Visited flags which vertices were reached during the traversal.
	Visited map[string]bool

	// SkippedNeighbors reports how many neighbors were skipped
	// due to FilterNeighbor returning false, aggregated across all trees.
	SkippedNeighbors int
}
