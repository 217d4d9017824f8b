// SPDX-License-Identifier: MIT
//
// File: methods_edges.go
// Role: Edge lifecycle & queries: AddEdge/RemoveEdge/HasEdge/Edge/Edges/EdgeCount.
// Determinism:
//   - Edges() returns edges in creation order.
//   - IDs are "e" + decimal and monotonic; a removed ID is never reused.
// Concurrency:
//   - Mutations under the write lock; queries under the read lock.

package core

import (
	"strconv"

	"github.com/cockroachdb/errors"
)

const edgeIDPrefix = 'e'

// AddEdge connects from to to and returns the new edge's ID.
//
// Errors:
//   - ErrNodeNotFound if either endpoint is missing.
//   - ErrSelfLoop if from == to.
//   - ErrDuplicateEdge if the pair is already connected: same ordered pair
//     when directed, either orientation when undirected.
//
// Complexity: O(deg(from)).
func (g *Graph) AddEdge(from, to string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, id := range [2]string{from, to} {
		if _, ok := g.nodes[id]; !ok {
			return "", errors.Wrapf(ErrNodeNotFound, "%q", id)
		}
	}
	if from == to {
		return "", errors.WithHint(errors.Wrapf(ErrSelfLoop, "%q", from), "pick two different nodes")
	}
	if eid := g.findEdgeLocked(from, to); eid != "" {
		return "", errors.WithHintf(errors.Wrapf(ErrDuplicateEdge, "%s-%s", from, to), "edge %s already connects them", eid)
	}

	g.nextEdgeID++
	eid := string(strconv.AppendUint([]byte{edgeIDPrefix}, g.nextEdgeID, 10))
	g.edges[eid] = &Edge{ID: eid, From: from, To: to, State: EdgeNormal}
	g.edgeOrder = append(g.edgeOrder, eid)
	g.adjacency[from] = append(g.adjacency[from], eid)
	g.adjacency[to] = append(g.adjacency[to], eid)
	return eid, nil
}

// RemoveEdge deletes one edge.
// Complexity: O(E).
func (g *Graph) RemoveEdge(eid string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.edges[eid]; !ok {
		return errors.Wrapf(ErrEdgeNotFound, "%q", eid)
	}
	g.removeEdgeLocked(eid)
	return nil
}

func (g *Graph) removeEdgeLocked(eid string) {
	e := g.edges[eid]
	delete(g.edges, eid)
	g.edgeOrder = removeID(g.edgeOrder, eid)
	g.adjacency[e.From] = removeID(g.adjacency[e.From], eid)
	g.adjacency[e.To] = removeID(g.adjacency[e.To], eid)
}

// findEdgeLocked returns the ID of an edge connecting from to to under the
// current directed flag, or "".
func (g *Graph) findEdgeLocked(from, to string) string {
	for _, eid := range g.adjacency[from] {
		e := g.edges[eid]
		if e.From == from && e.To == to {
			return eid
		}
		if !g.directed && e.From == to && e.To == from {
			return eid
		}
	}
	return ""
}

// HasEdge reports whether to is reachable from from over one edge.
func (g *Graph) HasEdge(from, to string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.findEdgeLocked(from, to) != ""
}

// Edge returns a copy of the edge with the given ID.
func (g *Graph) Edge(eid string) (Edge, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.edges[eid]
	if !ok {
		return Edge{}, errors.Wrapf(ErrEdgeNotFound, "%q", eid)
	}
	return *e, nil
}

// Edges returns copies of all edges in creation order.
// Complexity: O(E).
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Edge, 0, len(g.edgeOrder))
	for _, eid := range g.edgeOrder {
		out = append(out, *g.edges[eid])
	}
	return out
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.edges)
}
