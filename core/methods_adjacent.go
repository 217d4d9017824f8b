// SPDX-License-Identifier: MIT
//
// File: methods_adjacent.go
// Role: Neighborhood queries (Neighbors, NeighborIDs, Degree).
// Determinism:
//   - Neighbors are reported in edge creation order.

package core

import "github.com/cockroachdb/errors"

// Neighbor is one step out of a node: the node reached and the edge used.
type Neighbor struct {
	NodeID string
	EdgeID string
}

// Neighbors returns the nodes reachable from id over one edge.
//
// Policy:
//   - For an edge (a,b), b is a neighbor of a.
//   - a is a neighbor of b only while the graph is undirected.
//
// Complexity: O(deg(id)).
func (g *Graph) Neighbors(id string) ([]Neighbor, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if _, ok := g.nodes[id]; !ok {
		return nil, errors.Wrapf(ErrNodeNotFound, "%q", id)
	}
	var out []Neighbor
	for _, eid := range g.adjacency[id] {
		e := g.edges[eid]
		switch {
		case e.From == id:
			out = append(out, Neighbor{NodeID: e.To, EdgeID: eid})
		case !g.directed:
			out = append(out, Neighbor{NodeID: e.From, EdgeID: eid})
		}
	}
	return out, nil
}

// NeighborIDs returns only the node IDs of Neighbors(id).
func (g *Graph) NeighborIDs(id string) ([]string, error) {
	ns, err := g.Neighbors(id)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = n.NodeID
	}
	return out, nil
}

// Degree returns the number of incident edges regardless of orientation.
func (g *Graph) Degree(id string) (int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if _, ok := g.nodes[id]; !ok {
		return 0, errors.Wrapf(ErrNodeNotFound, "%q", id)
	}
	return len(g.adjacency[id]), nil
}
