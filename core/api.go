// SPDX-License-Identifier: MIT
//
// File: api.go
// Role: Graph-wide flags, visual state and maintenance: Directed/SetDirected,
//       SetNodeState/SetEdgeState/ResetStates, Clear, Clone.

package core

import (
	"maps"

	"github.com/cockroachdb/errors"
)

// Directed reports the current directed flag.
func (g *Graph) Directed() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.directed
}

// SetDirected toggles the directed flag. Existing edges are kept as they
// are; only neighbor symmetry and the duplicate check for new edges change.
// Making a directed graph undirected fails with ErrDuplicateEdge while two
// edges join the same pair of nodes in opposite directions.
func (g *Graph) SetDirected(directed bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.directed && !directed {
		if a, b, ok := g.antiparallelLocked(); ok {
			return errors.WithHintf(
				errors.Wrapf(ErrDuplicateEdge, "%s and %s join the same nodes", a, b),
				"remove %s or %s before making the graph undirected", a, b)
		}
	}
	g.directed = directed
	return nil
}

// antiparallelLocked returns the first pair of edges, in creation order,
// that run between the same two nodes in opposite directions.
func (g *Graph) antiparallelLocked() (string, string, bool) {
	seen := make(map[[2]string]string, len(g.edgeOrder))
	for _, eid := range g.edgeOrder {
		e := g.edges[eid]
		if prev, ok := seen[[2]string{e.To, e.From}]; ok {
			return prev, eid, true
		}
		seen[[2]string{e.From, e.To}] = eid
	}
	return "", "", false
}

// SetNodeState sets the visual state of one node.
func (g *Graph) SetNodeState(id string, s NodeState) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok := g.nodes[id]
	if !ok {
		return errors.Wrapf(ErrNodeNotFound, "%q", id)
	}
	n.State = s
	return nil
}

// SetEdgeState sets the visual state of one edge.
func (g *Graph) SetEdgeState(eid string, s EdgeState) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	e, ok := g.edges[eid]
	if !ok {
		return errors.Wrapf(ErrEdgeNotFound, "%q", eid)
	}
	e.State = s
	return nil
}

// ResetStates puts every node and edge back to its normal state.
// Complexity: O(V + E).
func (g *Graph) ResetStates() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, n := range g.nodes {
		n.State = NodeNormal
	}
	for _, e := range g.edges {
		e.State = EdgeNormal
	}
}

// Clear removes all nodes and edges and restarts ID generation. The
// directed flag is kept.
func (g *Graph) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nodes = make(map[string]*Node)
	g.edges = make(map[string]*Edge)
	g.adjacency = make(map[string][]string)
	g.nodeOrder, g.edgeOrder = nil, nil
	g.nextNodeID, g.nextEdgeID = 0, 0
}

// Clone returns a deep copy. ID generation continues where g left off, so
// IDs added to the clone never collide with g's.
// Complexity: O(V + E).
func (g *Graph) Clone() *Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()
	c := NewGraph(WithDirected(g.directed))
	c.nextNodeID, c.nextEdgeID = g.nextNodeID, g.nextEdgeID
	for id, n := range g.nodes {
		cp := *n
		c.nodes[id] = &cp
	}
	for id, e := range g.edges {
		cp := *e
		c.edges[id] = &cp
	}
	c.nodeOrder = append([]string(nil), g.nodeOrder...)
	c.edgeOrder = append([]string(nil), g.edgeOrder...)
	c.adjacency = maps.Clone(g.adjacency)
	for id, ids := range c.adjacency {
		c.adjacency[id] = append([]string(nil), ids...)
	}
	return c
}
