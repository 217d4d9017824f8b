// Package bfs provides breadth-first search over a core.Graph, returning
// unweighted shortest-path distances, parent links, and visit order.
//
// What
//
//   - Explore vertices in non-decreasing distance (edge count) from a start vertex.
//   - Returns a BFSResult containing:
//   - Order: visit sequence
//   - Depth: map from vertex → distance (edges) from start
//   - Parent: map from vertex → its predecessor in the BFS tree
//   - Pending: vertices still queued if the search stopped early
//   - A vertex is queued at most once and marked visited when it leaves the
//     queue, which is exactly what the traversal animation shows.
//   - Supports functional hooks at four stages, each able to abort with an
//     error (the animation engine pauses inside them):
//   - OnDequeue (a vertex leaves the queue)
//   - OnVisit   (the vertex is marked visited)
//   - OnEnqueue (a neighbor is discovered, with the edge used)
//   - OnDone    (all neighbors examined)
//   - Allows filtering of individual neighbor edges via WithFilterNeighbor.
//   - Honors MaxDepth limit (d>0) or explicit “no limit” (d==0).
//   - Respects the graph's directed flag through core.Neighbors.
//
// Determinism
//
//	core.Neighbors reports neighbors in edge creation order and BFS enqueues
//	them in that order, so the visit sequence is fully reproducible.
//
// Complexity (V = |Vertices|, E = |Edges|)
//
//   - Time:   O(V + E)
//   - Memory: O(V)
//
// Errors
//
//   - ErrGraphNil             if the graph pointer is nil.
//   - ErrStartVertexNotFound  if the start vertex does not exist.
//   - ErrOptionViolation      if invalid Option (e.g. negative MaxDepth).
//   - ErrNeighbors            if core.Neighbors fails for any vertex.
//   - the context error, or any hook error, returned unchanged.
package bfs
