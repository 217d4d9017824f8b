// SPDX-License-Identifier: MIT

package explorer

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/katalvlaran/algoviz/anim"
	"github.com/katalvlaran/algoviz/bfs"
	"github.com/katalvlaran/algoviz/core"
	"github.com/katalvlaran/algoviz/dfs"
	"github.com/katalvlaran/algoviz/geom"
)

// Explorer is the animated graph traversal engine.
//
// The graph is guarded by its own lock; mu guards the pointer to it and the
// traversal feed (queue, stack, history, visit order, status). Only one
// traversal or mutation holds the busy flag at a time.
type Explorer struct {
	mu      sync.RWMutex
	graph   *core.Graph
	mode    Mode
	queue   []string
	stack   []string
	history []Step
	order   []string
	status  anim.Status
	cancel  context.CancelFunc

	guard anim.Guard
	pacer *anim.Pacer
	sink  anim.Sink
	log   *zap.Logger
	delay time.Duration
}

// New returns an explorer over an empty undirected graph.
func New(opts ...Option) *Explorer {
	e := &Explorer{
		graph: core.NewGraph(),
		pacer: anim.NewPacer(),
		sink:  anim.Discard,
		log:   zap.NewNop(),
		delay: StepDelay,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With(zap.String("engine", Topic))
	return e
}

// Pacer exposes the engine's pacer for pause and speed control.
func (e *Explorer) Pacer() *anim.Pacer { return e.pacer }

// Animating reports whether a traversal or mutation holds the busy flag.
func (e *Explorer) Animating() bool { return e.guard.Busy() }

// Graph returns the graph currently shown. Callers must not mutate it while
// a traversal runs; use the Explorer's mutation methods instead.
func (e *Explorer) Graph() *core.Graph {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.graph
}

// StartBFS runs an animated breadth-first search from start. It returns
// when the search completes, the context is cancelled or Stop is called.
func (e *Explorer) StartBFS(ctx context.Context, start string) error {
	return e.run(ctx, ModeBFS, start, func(ctx context.Context, g *core.Graph, s *anim.Session) error {
		res, err := bfs.BFS(g, start,
			bfs.WithContext(ctx),
			bfs.WithOnDequeue(func(id string, _ int) error {
				e.mu.Lock()
				if i := slices.Index(e.queue, id); i >= 0 {
					e.queue = slices.Delete(e.queue, i, i+1)
				}
				e.mu.Unlock()
				return nil
			}),
			bfs.WithOnVisit(func(id string, depth int) error {
				if err := g.SetNodeState(id, core.NodeCurrent); err != nil {
					return err
				}
				e.mu.Lock()
				e.order = append(e.order, id)
				e.mu.Unlock()
				return e.step(s, g, id, fmt.Sprintf("visit %s (distance %d)", id, depth))
			}),
			bfs.WithOnEnqueue(func(from, to, eid string, depth int) error {
				if err := paint(g, to, core.NodeQueued, eid, core.EdgeHighlighted); err != nil {
					return err
				}
				e.mu.Lock()
				e.queue = append(e.queue, to)
				e.mu.Unlock()
				return e.step(s, g, to, fmt.Sprintf("enqueue %s from %s", to, from))
			}),
			bfs.WithOnDone(func(id string, _ int) error {
				if err := g.SetNodeState(id, core.NodeVisited); err != nil {
					return err
				}
				e.publish()
				return nil
			}),
		)
		if res != nil {
			for _, id := range res.Pending {
				if serr := g.SetNodeState(id, core.NodeCompleted); serr != nil && err == nil {
					err = serr
				}
			}
		}
		return err
	})
}

// StartDFS runs an animated recursive depth-first search from start,
// recording enter and exit steps in the history.
func (e *Explorer) StartDFS(ctx context.Context, start string) error {
	return e.run(ctx, ModeDFS, start, func(ctx context.Context, g *core.Graph, s *anim.Session) error {
		_, err := dfs.DFS(g, start,
			dfs.WithContext(ctx),
			dfs.WithOnEnter(func(id string, depth int) error {
				if err := g.SetNodeState(id, core.NodeCurrent); err != nil {
					return err
				}
				e.mu.Lock()
				e.stack = append(e.stack, id)
				e.order = append(e.order, id)
				e.history = append(e.history, Step{Kind: StepEnter, NodeID: id, Depth: depth})
				e.mu.Unlock()
				return e.step(s, g, id, fmt.Sprintf("enter %s (depth %d)", id, depth))
			}),
			dfs.WithOnTreeEdge(func(from, to, eid string, _ int) error {
				if err := g.SetNodeState(from, core.NodeStack); err != nil {
					return err
				}
				if err := paint(g, to, core.NodeStack, eid, core.EdgeHighlighted); err != nil {
					return err
				}
				return e.step(s, g, to, fmt.Sprintf("explore %s -> %s", from, to))
			}),
			dfs.WithOnBacktrack(func(from, to, eid string) error {
				if err := paint(g, from, core.NodeCurrent, eid, core.EdgeTraversed); err != nil {
					return err
				}
				return e.step(s, g, from, fmt.Sprintf("back from %s to %s", to, from))
			}),
			dfs.WithOnExit(func(id string, depth int) error {
				if err := g.SetNodeState(id, core.NodeCompleted); err != nil {
					return err
				}
				e.mu.Lock()
				if n := len(e.stack); n > 0 && e.stack[n-1] == id {
					e.stack = e.stack[:n-1]
				}
				e.history = append(e.history, Step{Kind: StepExit, NodeID: id, Depth: depth})
				e.mu.Unlock()
				e.publish()
				return nil
			}),
		)
		return err
	})
}

// Stop cancels the running traversal, if any. It reports whether one was
// running. The traversal returns at its next suspension point.
func (e *Explorer) Stop() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel == nil {
		return false
	}
	e.cancel()
	e.cancel = nil
	return true
}

type traversal func(ctx context.Context, g *core.Graph, s *anim.Session) error

func (e *Explorer) run(ctx context.Context, mode Mode, start string, fn traversal) (err error) {
	op := string(mode)
	if !e.guard.TryAcquire() {
		return e.reject(op, anim.ErrBusy)
	}
	defer func() {
		e.guard.Release()
		e.publish()
	}()

	g := e.Graph()
	if !g.HasNode(start) {
		return e.reject(op, errors.WithHint(
			errors.Wrapf(core.ErrNodeNotFound, "start node %q", start),
			"pick one of the existing nodes as the start"))
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g.ResetStates()
	e.mu.Lock()
	e.mode = mode
	e.queue, e.stack, e.history, e.order = nil, nil, nil, nil
	e.status = anim.Status{}
	e.cancel = cancel
	e.mu.Unlock()

	log := e.log.With(zap.String("op", op), zap.String("start", start))
	log.Debug("traversal started")
	err = fn(runCtx, g, e.pacer.Begin(runCtx))

	e.mu.Lock()
	e.cancel = nil
	e.queue, e.stack = nil, nil
	visited := len(e.order)
	switch {
	case err == nil:
		e.status = anim.Status{Text: fmt.Sprintf("%s finished: visited %d nodes", mode, visited)}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		e.status = anim.Status{Text: fmt.Sprintf("%s stopped after %d nodes", mode, visited)}
	}
	e.mu.Unlock()

	switch {
	case err == nil:
		log.Debug("traversal finished", zap.Int("visited", visited))
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		log.Debug("traversal stopped", zap.Int("visited", visited))
		return err
	default:
		return e.reject(op, err)
	}
}

func (e *Explorer) reject(op string, err error) error {
	e.log.Debug("operation rejected", zap.String("op", op), zap.Error(err))
	e.sink.Notice(Topic, anim.NoticeFromError(err))
	return err
}

// step sets the caption next to node id, publishes and pauses.
func (e *Explorer) step(s *anim.Session, g *core.Graph, id, text string) error {
	var at geom.Vec3
	if n, err := g.Node(id); err == nil {
		at = n.Position.Add(geom.Vec3{Y: 1.2})
	}
	e.mu.Lock()
	e.status = anim.Status{Text: text, Anchor: at}
	e.mu.Unlock()
	e.publish()
	return s.Pause(e.delay)
}

// Snapshot returns a copy of the graph and the traversal feed.
func (e *Explorer) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Snapshot{
		Directed:  e.graph.Directed(),
		Nodes:     e.graph.Nodes(),
		Edges:     e.graph.Edges(),
		Mode:      e.mode,
		Queue:     slices.Clone(e.queue),
		Stack:     slices.Clone(e.stack),
		History:   slices.Clone(e.history),
		Visited:   slices.Clone(e.order),
		Status:    e.status,
		Animating: e.guard.Busy(),
	}
}

func (e *Explorer) publish() {
	e.sink.Frame(Topic, e.Snapshot())
}

// paint sets the state of a node and the edge that reached it.
func paint(g *core.Graph, id string, ns core.NodeState, eid string, es core.EdgeState) error {
	if err := g.SetNodeState(id, ns); err != nil {
		return err
	}
	return g.SetEdgeState(eid, es)
}
