// SPDX-License-Identifier: MIT

package explorer

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/katalvlaran/algoviz/anim"
	"github.com/katalvlaran/algoviz/builder"
	"github.com/katalvlaran/algoviz/core"
	"github.com/katalvlaran/algoviz/geom"
)

// mutate runs fn under the busy flag, so edits never race a traversal, and
// publishes the result. Errors become notices.
func (e *Explorer) mutate(op string, fn func(g *core.Graph) error) error {
	if !e.guard.TryAcquire() {
		return e.reject(op, anim.ErrBusy)
	}
	err := fn(e.Graph())
	e.guard.Release()
	if err != nil {
		return e.reject(op, err)
	}
	e.log.Debug("graph changed", zap.String("op", op))
	e.publish()
	return nil
}

// AddNode adds a node and returns its generated id.
func (e *Explorer) AddNode(value int, pos geom.Vec3) (string, error) {
	var id string
	err := e.mutate("addNode", func(g *core.Graph) error {
		id = g.AddNode(value, pos)
		return nil
	})
	return id, err
}

// RemoveNode removes a node and its incident edges.
func (e *Explorer) RemoveNode(id string) error {
	return e.mutate("removeNode", func(g *core.Graph) error { return g.RemoveNode(id) })
}

// MoveNode changes a node's display position.
func (e *Explorer) MoveNode(id string, pos geom.Vec3) error {
	return e.mutate("moveNode", func(g *core.Graph) error { return g.MoveNode(id, pos) })
}

// AddEdge connects from and to and returns the generated edge id.
func (e *Explorer) AddEdge(from, to string) (string, error) {
	var id string
	err := e.mutate("addEdge", func(g *core.Graph) error {
		var err error
		id, err = g.AddEdge(from, to)
		return err
	})
	return id, err
}

// RemoveEdge deletes one edge.
func (e *Explorer) RemoveEdge(eid string) error {
	return e.mutate("removeEdge", func(g *core.Graph) error { return g.RemoveEdge(eid) })
}

// SetDirected toggles the directed flag.
func (e *Explorer) SetDirected(directed bool) error {
	return e.mutate("setDirected", func(g *core.Graph) error { return g.SetDirected(directed) })
}

// Reset clears traversal states and the feed, keeping the graph.
func (e *Explorer) Reset() error {
	return e.mutate("reset", func(g *core.Graph) error {
		g.ResetStates()
		e.clearFeed()
		return nil
	})
}

// Clear removes every node and edge.
func (e *Explorer) Clear() error {
	return e.mutate("clear", func(g *core.Graph) error {
		g.Clear()
		e.clearFeed()
		return nil
	})
}

// LoadPreset replaces the graph with a builder preset of about n nodes,
// keeping the directed flag. seed drives the "random" preset.
func (e *Explorer) LoadPreset(name string, n int, seed int64) error {
	return e.mutate("preset", func(g *core.Graph) error {
		c, err := builder.Preset(name, n)
		if err != nil {
			return err
		}
		next, err := builder.BuildGraph(
			[]core.GraphOption{core.WithDirected(g.Directed())},
			[]builder.BuilderOption{builder.WithSeed(seed)},
			c)
		if err != nil {
			return errors.WithHint(err, "try a larger size for this preset")
		}
		e.mu.Lock()
		e.graph = next
		e.mu.Unlock()
		e.clearFeed()
		return nil
	})
}

func (e *Explorer) clearFeed() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mode = ModeNone
	e.queue, e.stack, e.history, e.order = nil, nil, nil, nil
	e.status = anim.Status{}
}
