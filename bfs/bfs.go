// Package bfs provides breadth-first search over a core.Graph,
// returning unweighted shortest-path distances, parent links, and visit order.
//
// BFS explores vertices in increasing distance from a start vertex,
// with optional hooks, depth limiting, and neighbor filtering.
package bfs

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/algoviz/core"
)

// ErrNeighbors is returned when fetching neighbors from the graph fails.
var ErrNeighbors = errors.New("bfs: neighbor iteration error")

// queueItem pairs a vertex ID with its BFS depth.
type queueItem struct {
	id    string
	depth int
}

// walker encapsulates mutable BFS state. A vertex is queued once; it
// becomes visited only when it leaves the queue.
type walker struct {
	graph   *core.Graph
	opts    BFSOptions
	ctx     context.Context
	queue   []queueItem
	queued  map[string]bool
	visited map[string]bool
	res     *BFSResult
}

// BFS runs breadth-first search on g starting from startID,
// applying any number of functional Options.
// Returns ErrGraphNil or ErrStartVertexNotFound for invalid input,
// ErrOptionViolation for bad options, ErrNeighbors for graph failures,
// the context error on cancellation, or any hook error.
// The partial result is returned alongside a non-nil error.
func BFS(g *core.Graph, startID string, opts ...Option) (*BFSResult, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !g.HasNode(startID) {
		return nil, errors.Wrapf(ErrStartVertexNotFound, "%q", startID)
	}

	n := g.NodeCount()
	w := &walker{
		graph:   g,
		opts:    o,
		ctx:     o.Ctx,
		queue:   make([]queueItem, 0, n),
		queued:  make(map[string]bool, n),
		visited: make(map[string]bool, n),
		res: &BFSResult{
			Order:  make([]string, 0, n),
			Depth:  make(map[string]int, n),
			Parent: make(map[string]string, n),
		},
	}

	w.push(startID, 0, "")
	err := w.loop()
	for _, it := range w.queue {
		w.res.Pending = append(w.res.Pending, it.id)
	}
	return w.res, err
}

func (w *walker) push(id string, d int, parent string) {
	w.queued[id] = true
	w.res.Depth[id] = d
	if parent != "" {
		w.res.Parent[id] = parent
	}
	w.queue = append(w.queue, queueItem{id: id, depth: d})
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		if err := w.ctx.Err(); err != nil {
			return err
		}

		item := w.queue[0]
		w.queue = w.queue[1:]
		delete(w.queued, item.id)
		if w.visited[item.id] {
			continue
		}
		if err := w.opts.OnDequeue(item.id, item.depth); err != nil {
			return err
		}

		w.visited[item.id] = true
		w.res.Order = append(w.res.Order, item.id)
		if err := w.opts.OnVisit(item.id, item.depth); err != nil {
			return err
		}
		if err := w.expand(item); err != nil {
			return err
		}
		if err := w.opts.OnDone(item.id, item.depth); err != nil {
			return err
		}
	}
	return nil
}

// expand enqueues every neighbor that is neither visited nor queued.
func (w *walker) expand(item queueItem) error {
	neighbors, err := w.graph.Neighbors(item.id)
	if err != nil {
		return errors.Wrapf(errors.Mark(err, ErrNeighbors), "neighbors of %q", item.id)
	}
	next := item.depth + 1
	if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
		return nil
	}
	for _, nb := range neighbors {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		if w.visited[nb.NodeID] || w.queued[nb.NodeID] {
			continue
		}
		if !w.opts.FilterNeighbor(item.id, nb.NodeID) {
			continue
		}
		w.push(nb.NodeID, next, item.id)
		if err := w.opts.OnEnqueue(item.id, nb.NodeID, nb.EdgeID, next); err != nil {
			return err
		}
	}
	return nil
}
