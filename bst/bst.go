// SPDX-License-Identifier: MIT

package bst

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/algoviz/anim"
	"github.com/katalvlaran/algoviz/geom"
)

// Tree is the animated binary-search-tree engine.
//
// Operations run in the caller's goroutine and suspend at every visited
// node. The tree is only mutated by the operation holding the busy flag;
// mu protects it against concurrent Snapshot readers.
type Tree struct {
	mu        sync.RWMutex
	root      *Node
	size      int
	highlight uuid.UUID
	status    anim.Status
	traversal []int

	guard  anim.Guard
	pacer  *anim.Pacer
	sink   anim.Sink
	log    *zap.Logger
	layout geom.TreeLayout
	delay  time.Duration
	newID  func() uuid.UUID
}

// New returns an empty tree engine.
func New(opts ...Option) *Tree {
	t := &Tree{
		pacer:  anim.NewPacer(),
		sink:   anim.Discard,
		log:    zap.NewNop(),
		layout: geom.DefaultTreeLayout,
		delay:  StepDelay,
		newID:  uuid.New,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.log = t.log.With(zap.String("engine", Topic))
	return t
}

// Pacer exposes the engine's pacer for pause and speed control.
func (t *Tree) Pacer() *anim.Pacer { return t.pacer }

// Animating reports whether an operation is in flight.
func (t *Tree) Animating() bool { return t.guard.Busy() }

// Insert descends from the root comparing v at every node and materializes a
// new node at the first empty slot. Equal values are rejected with
// ErrDuplicate and leave the tree unchanged.
func (t *Tree) Insert(ctx context.Context, v int) error {
	return t.run(ctx, "insert", v, func(s *anim.Session) error {
		var parent *Node
		cur := t.root
		for cur != nil {
			parent = cur
			switch {
			case v < cur.Value:
				t.show(cur, fmt.Sprintf("%d < %d: go left", v, cur.Value))
			case v > cur.Value:
				t.show(cur, fmt.Sprintf("%d > %d: go right", v, cur.Value))
			default:
				t.show(cur, fmt.Sprintf("%d is already in the tree", v))
			}
			if err := s.Pause(t.delay); err != nil {
				return err
			}
			switch {
			case v < cur.Value:
				cur = cur.Left
			case v > cur.Value:
				cur = cur.Right
			default:
				return errors.WithHint(errors.Wrapf(ErrDuplicate, "%d", v), "a binary search tree keeps each value once")
			}
		}

		s.Commit()
		t.mu.Lock()
		n := &Node{ID: t.newID(), Value: v}
		switch {
		case parent == nil:
			t.root = n
		case v < parent.Value:
			parent.Left = n
		default:
			parent.Right = n
		}
		t.size++
		t.relayoutLocked()
		t.highlight = n.ID
		t.setStatusLocked(fmt.Sprintf("inserted %d", v), n.Position)
		t.mu.Unlock()
		t.publish()
		return s.Pause(t.delay)
	})
}

// Delete removes v. Leaves are dropped, a single child is spliced into the
// node's slot, and a node with two children takes its in-order successor's
// value before the successor is deleted from the right subtree.
func (t *Tree) Delete(ctx context.Context, v int) error {
	return t.run(ctx, "delete", v, func(s *anim.Session) error {
		return t.remove(s, &t.root, v)
	})
}

func (t *Tree) remove(s *anim.Session, slot **Node, v int) error {
	n := *slot
	if n == nil {
		return errors.WithHint(errors.Wrapf(ErrNotFound, "%d", v), "search the tree to see which values it holds")
	}
	switch {
	case v < n.Value:
		t.show(n, fmt.Sprintf("%d < %d: go left", v, n.Value))
	case v > n.Value:
		t.show(n, fmt.Sprintf("%d > %d: go right", v, n.Value))
	default:
		t.show(n, fmt.Sprintf("found %d", v))
	}
	if err := s.Pause(t.delay); err != nil {
		return err
	}
	switch {
	case v < n.Value:
		return t.remove(s, &n.Left, v)
	case v > n.Value:
		return t.remove(s, &n.Right, v)
	}

	s.Commit()
	switch {
	case n.Left == nil && n.Right == nil:
		t.show(n, fmt.Sprintf("%d is a leaf: remove it", n.Value))
		if err := s.Pause(t.delay); err != nil {
			return err
		}
		t.mu.Lock()
		*slot = nil
		t.size--
		t.relayoutLocked()
		t.mu.Unlock()
		t.publish()
		return s.Pause(t.delay)

	case n.Left == nil || n.Right == nil:
		child := n.Left
		if child == nil {
			child = n.Right
		}
		t.show(n, fmt.Sprintf("%d has one child: splice %d into its place", n.Value, child.Value))
		if err := s.Pause(t.delay); err != nil {
			return err
		}
		t.mu.Lock()
		child.Position = n.Position
		*slot = child
		t.size--
		t.highlight = child.ID
		t.mu.Unlock()
		t.publish()
		if err := s.Pause(t.delay); err != nil {
			return err
		}
		t.mu.Lock()
		t.relayoutLocked()
		t.mu.Unlock()
		t.publish()
		return nil

	default:
		succ := n.Right
		for succ.Left != nil {
			t.show(succ, fmt.Sprintf("looking for the successor of %d: go left", n.Value))
			if err := s.Pause(t.delay); err != nil {
				return err
			}
			succ = succ.Left
		}
		t.show(succ, fmt.Sprintf("%d has two children: successor is %d", n.Value, succ.Value))
		if err := s.Pause(t.delay); err != nil {
			return err
		}
		t.mu.Lock()
		n.Value = succ.Value
		t.highlight = n.ID
		t.setStatusLocked(fmt.Sprintf("copy %d up, then delete it from the right subtree", succ.Value), n.Position)
		t.mu.Unlock()
		t.publish()
		if err := s.Pause(t.delay); err != nil {
			return err
		}
		return t.remove(s, &n.Right, succ.Value)
	}
}

// Search descends looking for v and reports whether it was found.
func (t *Tree) Search(ctx context.Context, v int) (bool, error) {
	found := false
	err := t.run(ctx, "search", v, func(s *anim.Session) error {
		cur := t.root
		for cur != nil {
			switch {
			case v == cur.Value:
				t.show(cur, fmt.Sprintf("found %d", v))
				found = true
				return s.Pause(t.delay)
			case v < cur.Value:
				t.show(cur, fmt.Sprintf("%d < %d: go left", v, cur.Value))
			default:
				t.show(cur, fmt.Sprintf("%d > %d: go right", v, cur.Value))
			}
			if err := s.Pause(t.delay); err != nil {
				return err
			}
			if v < cur.Value {
				cur = cur.Left
			} else {
				cur = cur.Right
			}
		}
		t.mu.Lock()
		t.highlight = uuid.Nil
		t.setStatusLocked(fmt.Sprintf("%d is not in the tree", v), t.layout.Root())
		t.mu.Unlock()
		t.publish()
		return s.Pause(t.delay)
	})
	return found, err
}

// Traverse walks the tree in the given order, appending each value to the
// result as it is emitted. The partial result is visible in Snapshot while
// the walk is running.
func (t *Tree) Traverse(ctx context.Context, order Order) ([]int, error) {
	if order < Preorder || order > Postorder {
		return nil, t.reject("traverse", errors.Wrapf(ErrUnknownOrder, "%d", int(order)))
	}
	var out []int
	err := t.run(ctx, "traverse", int(order), func(s *anim.Session) error {
		t.mu.Lock()
		t.traversal = []int{}
		t.mu.Unlock()
		if err := t.walk(s, t.root, order); err != nil {
			return err
		}
		t.mu.RLock()
		out = append([]int(nil), t.traversal...)
		t.mu.RUnlock()
		return nil
	})
	return out, err
}

func (t *Tree) walk(s *anim.Session, n *Node, order Order) error {
	if n == nil {
		return nil
	}
	if order == Preorder {
		if err := t.emit(s, n, order); err != nil {
			return err
		}
	}
	if err := t.walk(s, n.Left, order); err != nil {
		return err
	}
	if order == Inorder {
		if err := t.emit(s, n, order); err != nil {
			return err
		}
	}
	if err := t.walk(s, n.Right, order); err != nil {
		return err
	}
	if order == Postorder {
		return t.emit(s, n, order)
	}
	return nil
}

func (t *Tree) emit(s *anim.Session, n *Node, order Order) error {
	t.mu.Lock()
	t.traversal = append(t.traversal, n.Value)
	t.highlight = n.ID
	t.setStatusLocked(fmt.Sprintf("%s: visit %d", order, n.Value), n.Position)
	t.mu.Unlock()
	t.publish()
	return s.Pause(t.delay)
}

// Reset empties the tree.
func (t *Tree) Reset() error {
	if !t.guard.TryAcquire() {
		return t.reject("reset", anim.ErrBusy)
	}
	defer t.guard.Release()
	t.mu.Lock()
	t.root = nil
	t.size = 0
	t.highlight = uuid.Nil
	t.status = anim.Status{}
	t.traversal = nil
	t.mu.Unlock()
	t.publish()
	return nil
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.size
}

// Height returns the number of nodes on the longest root-to-leaf path.
func (t *Tree) Height() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return height(t.root)
}

func height(n *Node) int {
	if n == nil {
		return 0
	}
	return 1 + max(height(n.Left), height(n.Right))
}

// Values returns the values in order, without animation.
func (t *Tree) Values() []int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []int
	var rec func(*Node)
	rec = func(n *Node) {
		if n == nil {
			return
		}
		rec(n.Left)
		out = append(out, n.Value)
		rec(n.Right)
	}
	rec(t.root)
	return out
}

// Check verifies the ordering invariant: every value in a node's left
// subtree is smaller and every value in its right subtree is larger.
func (t *Tree) Check() error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	count := 0
	var rec func(n *Node, lo, hi *int) error
	rec = func(n *Node, lo, hi *int) error {
		if n == nil {
			return nil
		}
		count++
		if (lo != nil && n.Value <= *lo) || (hi != nil && n.Value >= *hi) {
			return errors.AssertionFailedf("bst: node %d violates ordering", n.Value)
		}
		if err := rec(n.Left, lo, &n.Value); err != nil {
			return err
		}
		return rec(n.Right, &n.Value, hi)
	}
	if err := rec(t.root, nil, nil); err != nil {
		return err
	}
	if count != t.size {
		return errors.AssertionFailedf("bst: size %d but %d reachable nodes", t.size, count)
	}
	return nil
}

// Snapshot returns the render-facing state.
func (t *Tree) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	snap := Snapshot{
		Nodes:     make([]NodeView, 0, t.size),
		Status:    t.status,
		Traversal: append([]int(nil), t.traversal...),
		Animating: t.guard.Busy(),
	}
	if t.root != nil {
		snap.Root = t.root.ID
	}
	var rec func(*Node)
	rec = func(n *Node) {
		if n == nil {
			return
		}
		v := NodeView{ID: n.ID, Value: n.Value, Position: n.Position, Highlighted: n.ID == t.highlight}
		if n.Left != nil {
			v.Left = n.Left.ID
		}
		if n.Right != nil {
			v.Right = n.Right.ID
		}
		snap.Nodes = append(snap.Nodes, v)
		rec(n.Left)
		rec(n.Right)
	}
	rec(t.root)
	return snap
}

// String renders the tree sideways, left child first, for logs and tests:
//
//	5
//	├── 3
//	└── 8
func (t *Tree) String() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.root == nil {
		return "(empty)\n"
	}
	var b strings.Builder
	b.WriteString(strconv.Itoa(t.root.Value))
	b.WriteByte('\n')
	writeChildren(&b, t.root, "")
	return b.String()
}

func writeChildren(b *strings.Builder, n *Node, prefix string) {
	if n.Left == nil && n.Right == nil {
		return
	}
	for i, c := range [2]*Node{n.Left, n.Right} {
		conn, ext := "├── ", "│   "
		if i == 1 {
			conn, ext = "└── ", "    "
		}
		if c == nil {
			b.WriteString(prefix + conn + "nil\n")
			continue
		}
		b.WriteString(prefix + conn + strconv.Itoa(c.Value) + "\n")
		writeChildren(b, c, prefix+ext)
	}
}

// run wraps one operation with the busy flag, logging, notices and cleanup.
func (t *Tree) run(ctx context.Context, op string, arg int, fn func(s *anim.Session) error) error {
	if !t.guard.TryAcquire() {
		return t.reject(op, anim.ErrBusy)
	}
	defer t.guard.Release()

	log := t.log.With(zap.String("op", op), zap.Int("value", arg))
	log.Debug("operation started")
	s := t.pacer.Begin(ctx)
	err := fn(s)

	t.mu.Lock()
	t.highlight = uuid.Nil
	t.status = anim.Status{}
	t.mu.Unlock()
	t.publish()

	switch {
	case err == nil:
		log.Debug("operation finished", zap.Bool("fastForwarded", s.FastForwarded()))
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		log.Debug("operation cancelled")
		return err
	default:
		return t.reject(op, err)
	}
}

func (t *Tree) reject(op string, err error) error {
	t.log.Debug("operation rejected", zap.String("op", op), zap.Error(err))
	t.sink.Notice(Topic, anim.NoticeFromError(err))
	return err
}

// show highlights n and sets the caption next to it.
func (t *Tree) show(n *Node, text string) {
	t.mu.Lock()
	t.highlight = n.ID
	t.setStatusLocked(text, n.Position)
	t.mu.Unlock()
	t.publish()
}

func (t *Tree) setStatusLocked(text string, at geom.Vec3) {
	at.Y += 1.2
	t.status = anim.Status{Text: text, Anchor: at}
}

// relayoutLocked recomputes every position top-down.
func (t *Tree) relayoutLocked() {
	var rec func(n *Node, pos geom.Vec3, depth int)
	rec = func(n *Node, pos geom.Vec3, depth int) {
		if n == nil {
			return
		}
		n.Position = pos
		rec(n.Left, t.layout.Child(pos, depth+1, false), depth+1)
		rec(n.Right, t.layout.Child(pos, depth+1, true), depth+1)
	}
	rec(t.root, t.layout.Root(), 0)
}

func (t *Tree) publish() {
	t.sink.Frame(Topic, t.Snapshot())
}
