// SPDX-License-Identifier: MIT

package linkedlist

import (
	"context"
	"fmt"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/algoviz/anim"
	"github.com/katalvlaran/algoviz/geom"
)

// List is a linked-list engine of one Kind. The nodes live in a single
// ordered slice; next/prev are derived from positions.
type List struct {
	kind Kind

	mu        sync.RWMutex
	nodes     []Node
	highlight uuid.UUID
	status    anim.Status

	guard anim.Guard
	pacer *anim.Pacer
	sink  anim.Sink
	log   *zap.Logger
	newID func() uuid.UUID
}

// New returns an empty list engine.
func New(kind Kind, opts ...Option) *List {
	l := &List{
		kind:  kind,
		pacer: anim.NewPacer(),
		sink:  anim.Discard,
		log:   zap.NewNop(),
		newID: uuid.New,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.log = l.log.With(zap.String("engine", "list"), zap.Stringer("kind", kind))
	return l
}

// Kind reports the variant.
func (l *List) Kind() Kind { return l.kind }

// Pacer exposes the engine's pacer for pause and speed control.
func (l *List) Pacer() *anim.Pacer { return l.pacer }

// Animating reports whether an operation is in flight.
func (l *List) Animating() bool { return l.guard.Busy() }

// InsertHead prepends v.
func (l *List) InsertHead(ctx context.Context, v int) error {
	return l.run(ctx, "insertHead", func(s *anim.Session) error {
		if err := l.checkRoom(); err != nil {
			return err
		}
		if err := l.walkToTail(s, "find tail to update its wrap-around pointer"); err != nil {
			return err
		}
		s.Commit()
		l.mu.Lock()
		n := Node{ID: l.newID(), Value: v}
		l.nodes = append([]Node{n}, l.nodes...)
		l.setStatusLocked(fmt.Sprintf("inserted %d at head", v), 0)
		l.mu.Unlock()
		l.publish()
		return nil
	})
}

// InsertTail appends v.
func (l *List) InsertTail(ctx context.Context, v int) error {
	return l.run(ctx, "insertTail", func(s *anim.Session) error {
		if err := l.checkRoom(); err != nil {
			return err
		}
		if err := l.walkToTail(s, "walk to the tail"); err != nil {
			return err
		}
		s.Commit()
		l.mu.Lock()
		l.nodes = append(l.nodes, Node{ID: l.newID(), Value: v})
		l.setStatusLocked(fmt.Sprintf("inserted %d at tail", v), len(l.nodes)-1)
		l.mu.Unlock()
		l.publish()
		return nil
	})
}

// DeleteHead removes the first node.
func (l *List) DeleteHead(ctx context.Context) error {
	return l.run(ctx, "deleteHead", func(s *anim.Session) error {
		if err := l.checkNonEmpty(); err != nil {
			return err
		}
		if err := l.walkToTail(s, "find tail to re-point it at the new head"); err != nil {
			return err
		}
		s.Commit()
		l.mu.Lock()
		v := l.nodes[0].Value
		l.nodes = append([]Node(nil), l.nodes[1:]...)
		l.setStatusLocked(fmt.Sprintf("deleted %d from head", v), 0)
		l.mu.Unlock()
		l.publish()
		return nil
	})
}

// DeleteTail removes the last node.
func (l *List) DeleteTail(ctx context.Context) error {
	return l.run(ctx, "deleteTail", func(s *anim.Session) error {
		if err := l.checkNonEmpty(); err != nil {
			return err
		}
		if err := l.walkToTail(s, "walk to the node before the tail"); err != nil {
			return err
		}
		s.Commit()
		l.mu.Lock()
		last := len(l.nodes) - 1
		v := l.nodes[last].Value
		l.nodes = l.nodes[:last]
		l.setStatusLocked(fmt.Sprintf("deleted %d from tail", v), last-1)
		l.mu.Unlock()
		l.publish()
		return nil
	})
}

// Reset empties the list. It is rejected while an operation is in flight.
func (l *List) Reset() error {
	if !l.guard.TryAcquire() {
		return l.reject("reset", anim.ErrBusy)
	}
	defer l.guard.Release()
	l.mu.Lock()
	l.nodes = nil
	l.highlight = uuid.Nil
	l.status = anim.Status{}
	l.mu.Unlock()
	l.publish()
	return nil
}

// Values returns the values head to tail.
func (l *List) Values() []int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]int, len(l.nodes))
	for i, n := range l.nodes {
		out[i] = n.Value
	}
	return out
}

// Len returns the number of nodes.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.nodes)
}

// Snapshot returns the render-facing state.
func (l *List) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	n := len(l.nodes)
	snap := Snapshot{
		Kind:      l.kind.String(),
		Nodes:     make([]NodeView, n),
		Status:    l.status,
		Animating: l.guard.Busy(),
	}
	for i, nd := range l.nodes {
		snap.Nodes[i] = NodeView{
			ID:          nd.ID,
			Value:       nd.Value,
			Position:    geom.Row(i, n, Spacing),
			Highlighted: nd.ID == l.highlight,
			Head:        i == 0,
			Tail:        i == n-1,
		}
	}
	for i := 0; i+1 < n; i++ {
		snap.Links = append(snap.Links, Link{From: l.nodes[i].ID, To: l.nodes[i+1].ID, Kind: LinkNext})
		if l.kind == Doubly {
			snap.Links = append(snap.Links, Link{From: l.nodes[i+1].ID, To: l.nodes[i].ID, Kind: LinkPrev})
		}
	}
	if l.kind == Circular && n > 0 {
		snap.Links = append(snap.Links, Link{From: l.nodes[n-1].ID, To: l.nodes[0].ID, Kind: LinkWrap})
	}
	return snap
}

// run wraps one operation with the busy flag, rejection notices and cleanup.
func (l *List) run(ctx context.Context, op string, fn func(s *anim.Session) error) error {
	if !l.guard.TryAcquire() {
		return l.reject(op, anim.ErrBusy)
	}
	defer l.guard.Release()

	l.log.Debug("operation started", zap.String("op", op))
	s := l.pacer.Begin(ctx)
	err := fn(s)

	l.mu.Lock()
	l.highlight = uuid.Nil
	if err != nil {
		l.status = anim.Status{}
	}
	l.mu.Unlock()
	l.publish()

	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			l.log.Debug("operation cancelled", zap.String("op", op))
			return err
		}
		return l.reject(op, err)
	}
	l.log.Debug("operation finished", zap.String("op", op), zap.Bool("fastForwarded", s.FastForwarded()))
	return nil
}

func (l *List) reject(op string, err error) error {
	l.log.Debug("operation rejected", zap.String("op", op), zap.Error(err))
	l.sink.Notice(Topic, anim.NoticeFromError(err))
	return err
}

// walkToTail simulates the O(n) pointer chase a singly-circular list needs
// before it can touch its tail. The other kinds return immediately.
func (l *List) walkToTail(s *anim.Session, why string) error {
	if l.kind != Circular {
		return nil
	}
	l.mu.RLock()
	ids := make([]uuid.UUID, len(l.nodes))
	for i, n := range l.nodes {
		ids[i] = n.ID
	}
	l.mu.RUnlock()

	for i, id := range ids {
		l.mu.Lock()
		l.highlight = id
		l.setStatusLocked(fmt.Sprintf("%s: visiting node %d of %d", why, i+1, len(ids)), i)
		l.mu.Unlock()
		l.publish()
		if err := s.Pause(TraversalDelay); err != nil {
			return err
		}
	}
	l.mu.Lock()
	l.highlight = uuid.Nil
	l.mu.Unlock()
	return nil
}

func (l *List) checkRoom() error {
	if l.Len() >= MaxLength {
		return errors.WithHintf(ErrFull, "the list holds at most %d nodes; delete one first", MaxLength)
	}
	return nil
}

func (l *List) checkNonEmpty() error {
	if l.Len() == 0 {
		return errors.WithHint(ErrEmpty, "insert a value before deleting")
	}
	return nil
}

func (l *List) setStatusLocked(text string, at int) {
	n := len(l.nodes)
	anchor := geom.Vec3{}
	if n > 0 && at >= 0 && at < n {
		anchor = geom.Row(at, n, Spacing)
	}
	anchor.Y += 1.5
	l.status = anim.Status{Text: text, Anchor: anchor}
}

func (l *List) publish() {
	l.sink.Frame(Topic, l.Snapshot())
}
