// SPDX-License-Identifier: MIT
//
// File: methods_nodes.go
// Role: Node lifecycle & queries: AddNode/RemoveNode/MoveNode/SetNodeValue,
//       Node/HasNode/Nodes/NodeCount.
// Determinism:
//   - Nodes() returns nodes in creation order.
//   - IDs are "n" + decimal and monotonic; a removed ID is never reused.

package core

import (
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/algoviz/geom"
)

const nodeIDPrefix = 'n'

// AddNode creates a node with the given value and position and returns its ID.
// Complexity: O(1) amortized.
func (g *Graph) AddNode(value int, pos geom.Vec3) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nextNodeID++
	id := string(strconv.AppendUint([]byte{nodeIDPrefix}, g.nextNodeID, 10))
	g.nodes[id] = &Node{ID: id, Value: value, Position: pos, State: NodeNormal}
	g.nodeOrder = append(g.nodeOrder, id)
	return id
}

// RemoveNode deletes a node together with every incident edge.
// Complexity: O(V + E).
func (g *Graph) RemoveNode(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.nodes[id]; !ok {
		return errors.Wrapf(ErrNodeNotFound, "%q", id)
	}
	for _, eid := range append([]string(nil), g.adjacency[id]...) {
		g.removeEdgeLocked(eid)
	}
	delete(g.nodes, id)
	delete(g.adjacency, id)
	g.nodeOrder = removeID(g.nodeOrder, id)
	return nil
}

// MoveNode sets a node's display position.
func (g *Graph) MoveNode(id string, pos geom.Vec3) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok := g.nodes[id]
	if !ok {
		return errors.Wrapf(ErrNodeNotFound, "%q", id)
	}
	n.Position = pos
	return nil
}

// SetNodeValue replaces a node's value.
func (g *Graph) SetNodeValue(id string, value int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok := g.nodes[id]
	if !ok {
		return errors.Wrapf(ErrNodeNotFound, "%q", id)
	}
	n.Value = value
	return nil
}

// HasNode reports whether id exists.
func (g *Graph) HasNode(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.nodes[id]
	return ok
}

// Node returns a copy of the node with the given ID.
func (g *Graph) Node(id string) (Node, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, errors.Wrapf(ErrNodeNotFound, "%q", id)
	}
	return *n, nil
}

// Nodes returns copies of all nodes in creation order.
// Complexity: O(V).
func (g *Graph) Nodes() []Node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Node, 0, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		out = append(out, *g.nodes[id])
	}
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

func removeID(ids []string, id string) []string {
	for i, x := range ids {
		if x == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}
