// Package dfs provides depth-first search over core.Graph and a DFS-based
// topological sort.
//
// DFS(g, start, opts...) walks recursively from start (or every vertex, with
// WithFullTraversal) and reports post-order (Order), discovery order
// (Preorder), depths, parent links and visited flags.
//
// Hooks:
//
//   - OnEnter(id, depth)                 vertex discovered
//   - OnTreeEdge(from, to, edgeID, d)    about to descend into an unvisited neighbor
//   - OnBacktrack(from, to, edgeID)      descent returned
//   - OnExit(id, depth)                  all descendants explored
//
// Any hook may return an error to stop the walk; the traversal engine uses
// this to pause between steps and to honor cancellation. Enter/exit pairs
// nest properly: a vertex entered after u and before u exits is a
// descendant of u.
//
// Determinism:
//
//	Neighbors are taken in edge creation order, so the same graph always
//	yields the same orders.
//
// TopologicalSort(g) orders a directed graph so every edge points forward,
// returning ErrCycleDetected on a back edge and ErrUndirected for undirected
// graphs.
package dfs
