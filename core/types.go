// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Node, Edge, visual states, sentinel errors and the Graph constructor.
// Concurrency:
//   - A single sync.RWMutex guards nodes, edges and adjacency. Graphs here are
//     small (a few dozen nodes) and mutated by one user at a time.

package core

import (
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/algoviz/geom"
)

// Sentinel errors for graph mutation.
var (
	// ErrNodeNotFound indicates an operation referenced a node that does not exist.
	ErrNodeNotFound = errors.New("core: node not found")

	// ErrEdgeNotFound indicates an operation referenced an edge that does not exist.
	ErrEdgeNotFound = errors.New("core: edge not found")

	// ErrSelfLoop indicates an edge from a node to itself.
	ErrSelfLoop = errors.New("core: self-loop not allowed")

	// ErrDuplicateEdge indicates the pair is already connected (either
	// orientation when the graph is undirected).
	ErrDuplicateEdge = errors.New("core: edge already exists")
)

// NodeState is the visual state of a node during a traversal.
type NodeState string

const (
	NodeNormal    NodeState = "normal"
	NodeCurrent   NodeState = "current"
	NodeVisited   NodeState = "visited"
	NodeQueued    NodeState = "queued"
	NodeStack     NodeState = "stack"
	NodeCompleted NodeState = "completed"
)

// EdgeState is the visual state of an edge during a traversal.
type EdgeState string

const (
	EdgeNormal      EdgeState = "normal"
	EdgeHighlighted EdgeState = "highlighted"
	EdgeTraversed   EdgeState = "traversed"
)

// Node is a graph vertex. ID is generated ("n1", "n2", ...) and never reused.
type Node struct {
	ID       string    `json:"id"`
	Value    int       `json:"value"`
	Position geom.Vec3 `json:"position"`
	State    NodeState `json:"state"`
}

// Edge connects From to To. Whether it is one-way is decided by the graph's
// directed flag at query time, so toggling the flag never rewrites edges.
type Edge struct {
	ID    string    `json:"id"`
	From  string    `json:"from"`
	To    string    `json:"to"`
	State EdgeState `json:"state"`
}

// GraphOption configures a Graph before creation.
type GraphOption func(g *Graph)

// WithDirected sets the initial directed flag.
func WithDirected(directed bool) GraphOption {
	return func(g *Graph) { g.directed = directed }
}

// Graph is the in-memory graph the traversal engine animates.
//
// nodeOrder and edgeOrder keep creation order so that Nodes, Edges and
// Neighbors are deterministic. adjacency[nodeID] lists the IDs of incident
// edges in creation order regardless of orientation.
type Graph struct {
	mu       sync.RWMutex
	directed bool

	nextNodeID uint64
	nextEdgeID uint64

	nodes     map[string]*Node
	nodeOrder []string
	edges     map[string]*Edge
	edgeOrder []string
	adjacency map[string][]string
}

// NewGraph creates an empty undirected Graph.
// Complexity: O(1)
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		nodes:     make(map[string]*Node),
		edges:     make(map[string]*Edge),
		adjacency: make(map[string][]string),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}
