// Package core provides the thread-safe in-memory Graph that the traversal
// engine animates.
//
// The Graph G = (V,E) is deliberately small and visual:
//
//   - Nodes carry an int value, a 3D display position and a NodeState
//     (normal, current, visited, queued, stack, completed).
//   - Edges carry an EdgeState (normal, highlighted, traversed).
//   - IDs are generated ("n1", "n2", ... and "e1", "e2", ...) and never reused.
//   - The directed flag can be toggled at any time. Edges are stored once and
//     the flag is applied at query time, so toggling never rewrites edges.
//   - No self-loops and no duplicate edges (same ordered pair when directed,
//     either orientation when undirected).
//
// Determinism:
//
//	Nodes(), Edges() and Neighbors() report in creation order, so a BFS or
//	DFS over the same graph always produces the same visit order.
//
// Core Methods:
//
//	AddNode(value, pos) string          // O(1)
//	RemoveNode(id) error                // O(V+E), drops incident edges
//	MoveNode(id, pos) error             // O(1)
//	AddEdge(from, to) (string, error)   // O(deg)
//	RemoveEdge(id) error                // O(E)
//	Neighbors(id) ([]Neighbor, error)   // O(deg), creation order
//	SetDirected(bool) error             // O(E) when clearing the flag
//	SetNodeState / SetEdgeState / ResetStates
//	Clone() *Graph                      // O(V+E)
//
// Errors:
//
//	ErrNodeNotFound  - missing node
//	ErrEdgeNotFound  - missing edge
//	ErrSelfLoop      - from == to
//	ErrDuplicateEdge - pair already connected
package core
