// SPDX-License-Identifier: MIT

package rbtree

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/algoviz/anim"
	"github.com/katalvlaran/algoviz/bst"
	"github.com/katalvlaran/algoviz/geom"
)

// Tree is the animated red-black tree engine.
//
// Nodes live in an arena addressed by index; slot 0 is the shared BLACK nil
// leaf, so every child and parent link is a valid index and delete-fixup
// can read the color and parent of a nil x.
//
// Only the operation holding the busy flag writes the arena. It reads
// without locking and takes mu for writes so Snapshot readers never see a
// half-applied step.
type Tree struct {
	mu        sync.RWMutex
	nodes     []node
	free      []index
	root      index
	size      int
	highlight index
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
		nodes:  make([]node, 1),
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

func (t *Tree) left(i index) index   { return t.nodes[i].left }
func (t *Tree) right(i index) index  { return t.nodes[i].right }
func (t *Tree) parent(i index) index { return t.nodes[i].parent }
func (t *Tree) color(i index) Color  { return t.nodes[i].color }

func (t *Tree) label(i index) string {
	if i == nilIndex {
		return "nil"
	}
	return strconv.Itoa(t.nodes[i].value)
}

func (t *Tree) allocLocked(v int) index {
	n := node{id: t.newID(), value: v, color: Red}
	if k := len(t.free); k > 0 {
		i := t.free[k-1]
		t.free = t.free[:k-1]
		t.nodes[i] = n
		return i
	}
	t.nodes = append(t.nodes, n)
	return index(len(t.nodes) - 1)
}

func (t *Tree) releaseLocked(i index) {
	t.nodes[i] = node{}
	t.free = append(t.free, i)
}

// Insert adds v as a RED leaf and restores the red-black invariants.
func (t *Tree) Insert(ctx context.Context, v int) error {
	return t.run(ctx, "insert", v, func(s *anim.Session) error {
		parent := nilIndex
		cur := t.root
		for cur != nilIndex {
			parent = cur
			cv := t.nodes[cur].value
			switch {
			case v < cv:
				t.show(cur, fmt.Sprintf("%d < %d: go left", v, cv))
			case v > cv:
				t.show(cur, fmt.Sprintf("%d > %d: go right", v, cv))
			default:
				t.show(cur, fmt.Sprintf("%d is already in the tree", v))
			}
			if err := s.Pause(t.delay); err != nil {
				return err
			}
			switch {
			case v < cv:
				cur = t.left(cur)
			case v > cv:
				cur = t.right(cur)
			default:
				return errors.WithHint(errors.Wrapf(ErrDuplicate, "%d", v), "a red-black tree keeps each value once")
			}
		}

		s.Commit()
		var z index
		if err := t.step(s, func() index {
			z = t.allocLocked(v)
			t.nodes[z].parent = parent
			switch {
			case parent == nilIndex:
				t.root = z
			case v < t.nodes[parent].value:
				t.nodes[parent].left = z
			default:
				t.nodes[parent].right = z
			}
			t.size++
			return z
		}, fmt.Sprintf("inserted %d as a RED leaf", v)); err != nil {
			return err
		}
		return t.insertFixup(s, z)
	})
}

func (t *Tree) insertFixup(s *anim.Session, z index) error {
	for t.color(t.parent(z)) == Red {
		p := t.parent(z)
		g := t.parent(p)
		onLeft := p == t.left(g)
		u := t.left(g)
		if onLeft {
			u = t.right(g)
		}

		if t.color(u) == Red {
			text := fmt.Sprintf("uncle %s is RED: recolor", t.label(u))
			if err := t.step(s, func() index {
				t.nodes[p].color = Black
				t.nodes[u].color = Black
				t.nodes[g].color = Red
				return g
			}, text); err != nil {
				return err
			}
			z = g
			continue
		}

		// Triangle: rotate z's parent so z, p and g line up.
		if onLeft && z == t.right(p) {
			text := fmt.Sprintf("uncle %s is BLACK and %d is an inner child: rotate left at %d", t.label(u), t.nodes[z].value, t.nodes[p].value)
			if err := t.step(s, func() index { t.leftRotateLocked(p); return p }, text); err != nil {
				return err
			}
			z = p
			p = t.parent(z)
		} else if !onLeft && z == t.left(p) {
			text := fmt.Sprintf("uncle %s is BLACK and %d is an inner child: rotate right at %d", t.label(u), t.nodes[z].value, t.nodes[p].value)
			if err := t.step(s, func() index { t.rightRotateLocked(p); return p }, text); err != nil {
				return err
			}
			z = p
			p = t.parent(z)
		}

		dir := "right"
		if !onLeft {
			dir = "left"
		}
		text := fmt.Sprintf("uncle %s is BLACK: color %d BLACK, %d RED, rotate %s at %d",
			t.label(u), t.nodes[p].value, t.nodes[g].value, dir, t.nodes[g].value)
		if err := t.step(s, func() index {
			t.nodes[p].color = Black
			t.nodes[g].color = Red
			if onLeft {
				t.rightRotateLocked(g)
			} else {
				t.leftRotateLocked(g)
			}
			return p
		}, text); err != nil {
			return err
		}
	}

	if t.color(t.root) == Red {
		r := t.root
		return t.step(s, func() index {
			t.nodes[r].color = Black
			return r
		}, fmt.Sprintf("root %d must be BLACK", t.nodes[r].value))
	}
	return nil
}

// leftRotateLocked promotes x's right child into x's place.
func (t *Tree) leftRotateLocked(x index) {
	if x == nilIndex || t.nodes[x].right == nilIndex {
		panic(errors.AssertionFailedf("rbtree: left rotation at %s without a right child", t.label(x)))
	}
	y := t.nodes[x].right
	t.nodes[x].right = t.nodes[y].left
	if t.nodes[y].left != nilIndex {
		t.nodes[t.nodes[y].left].parent = x
	}
	t.replaceChildLocked(t.nodes[x].parent, x, y)
	t.nodes[y].left = x
	t.nodes[x].parent = y
}

// rightRotateLocked promotes x's left child into x's place.
func (t *Tree) rightRotateLocked(x index) {
	if x == nilIndex || t.nodes[x].left == nilIndex {
		panic(errors.AssertionFailedf("rbtree: right rotation at %s without a left child", t.label(x)))
	}
	y := t.nodes[x].left
	t.nodes[x].left = t.nodes[y].right
	if t.nodes[y].right != nilIndex {
		t.nodes[t.nodes[y].right].parent = x
	}
	t.replaceChildLocked(t.nodes[x].parent, x, y)
	t.nodes[y].right = x
	t.nodes[x].parent = y
}

// replaceChildLocked points p's link to old at repl (the root link when p is
// nil) and sets repl's parent. repl may be the sentinel.
func (t *Tree) replaceChildLocked(p, old, repl index) {
	switch {
	case p == nilIndex:
		t.root = repl
	case t.nodes[p].left == old:
		t.nodes[p].left = repl
	default:
		t.nodes[p].right = repl
	}
	t.nodes[repl].parent = p
}

// transplantLocked replaces the subtree rooted at u with the one rooted at v.
func (t *Tree) transplantLocked(u, v index) {
	t.replaceChildLocked(t.nodes[u].parent, u, v)
}

// Delete removes v and restores the red-black invariants.
func (t *Tree) Delete(ctx context.Context, v int) error {
	return t.run(ctx, "delete", v, func(s *anim.Session) error {
		z, err := t.locate(s, v)
		if err != nil {
			return err
		}
		if z == nilIndex {
			return errors.WithHint(errors.Wrapf(ErrNotFound, "%d", v), "search the tree to see which values it holds")
		}

		s.Commit()
		removed := t.color(z)
		var x index
		switch {
		case t.left(z) == nilIndex || t.right(z) == nilIndex:
			x = t.right(z)
			side := "left"
			if x == nilIndex {
				x = t.left(z)
				side = "right"
			}
			text := fmt.Sprintf("%d has no %s child: replace it with %s", v, side, t.label(x))
			if x == nilIndex {
				text = fmt.Sprintf("%d is a leaf: remove it", v)
			}
			if err := t.step(s, func() index {
				t.transplantLocked(z, x)
				t.releaseLocked(z)
				t.size--
				return x
			}, text); err != nil {
				return err
			}

		default:
			y := t.right(z)
			for t.left(y) != nilIndex {
				t.show(y, fmt.Sprintf("looking for the successor of %d: go left", v))
				if err := s.Pause(t.delay); err != nil {
					return err
				}
				y = t.left(y)
			}
			removed = t.color(y)
			x = t.right(y)
			text := fmt.Sprintf("%d has two children: successor %d takes its place and color", v, t.nodes[y].value)
			if err := t.step(s, func() index {
				if t.nodes[y].parent == z {
					t.nodes[x].parent = y
				} else {
					t.transplantLocked(y, x)
					t.nodes[y].right = t.nodes[z].right
					t.nodes[t.nodes[y].right].parent = y
				}
				t.transplantLocked(z, y)
				t.nodes[y].left = t.nodes[z].left
				t.nodes[t.nodes[y].left].parent = y
				t.nodes[y].color = t.nodes[z].color
				t.releaseLocked(z)
				t.size--
				return y
			}, text); err != nil {
				return err
			}
		}

		if removed == Black {
			return t.deleteFixup(s, x)
		}
		return nil
	})
}

// deleteFixup resolves the extra BLACK carried by x. x may be the sentinel,
// whose parent link was set by the transplant.
func (t *Tree) deleteFixup(s *anim.Session, x index) error {
	for x != t.root && t.color(x) == Black {
		p := t.parent(x)
		onLeft := x == t.left(p)
		sibling := func() index {
			w := t.left(p)
			if onLeft {
				w = t.right(p)
			}
			if w == nilIndex {
				panic(errors.AssertionFailedf("rbtree: %s has no sibling under %s during delete fixup", t.label(x), t.label(p)))
			}
			return w
		}
		// near and far are w's children closest to and away from x.
		near := func(w index) index {
			if onLeft {
				return t.left(w)
			}
			return t.right(w)
		}
		far := func(w index) index {
			if onLeft {
				return t.right(w)
			}
			return t.left(w)
		}
		toward := func(at index) {
			if onLeft {
				t.leftRotateLocked(at)
			} else {
				t.rightRotateLocked(at)
			}
		}
		away := func(at index) {
			if onLeft {
				t.rightRotateLocked(at)
			} else {
				t.leftRotateLocked(at)
			}
		}
		dir := func(towardX bool) string {
			if towardX == onLeft {
				return "left"
			}
			return "right"
		}

		w := sibling()
		if t.color(w) == Red {
			text := fmt.Sprintf("sibling %d is RED: recolor and rotate %s at %d", t.nodes[w].value, dir(true), t.nodes[p].value)
			if err := t.step(s, func() index {
				t.nodes[w].color = Black
				t.nodes[p].color = Red
				toward(p)
				return w
			}, text); err != nil {
				return err
			}
			w = sibling()
		}

		if t.color(near(w)) == Black && t.color(far(w)) == Black {
			text := fmt.Sprintf("both children of sibling %d are BLACK: color it RED and move up to %d", t.nodes[w].value, t.nodes[p].value)
			if err := t.step(s, func() index {
				t.nodes[w].color = Red
				return p
			}, text); err != nil {
				return err
			}
			x = p
			continue
		}

		if t.color(far(w)) == Black {
			n := near(w)
			text := fmt.Sprintf("far child of sibling %d is BLACK: recolor and rotate %s at %d", t.nodes[w].value, dir(false), t.nodes[w].value)
			if err := t.step(s, func() index {
				t.nodes[n].color = Black
				t.nodes[w].color = Red
				away(w)
				return n
			}, text); err != nil {
				return err
			}
			w = sibling()
		}

		f := far(w)
		text := fmt.Sprintf("far child %d of sibling %d is RED: rotate %s at %d", t.nodes[f].value, t.nodes[w].value, dir(true), t.nodes[p].value)
		if err := t.step(s, func() index {
			t.nodes[w].color = t.nodes[p].color
			t.nodes[p].color = Black
			t.nodes[f].color = Black
			toward(p)
			return w
		}, text); err != nil {
			return err
		}
		x = t.root
	}

	if t.color(x) == Red {
		return t.step(s, func() index {
			t.nodes[x].color = Black
			return x
		}, fmt.Sprintf("color %d BLACK", t.nodes[x].value))
	}
	t.mu.Lock()
	t.nodes[x].color = Black
	t.mu.Unlock()
	return nil
}

// locate descends to v, highlighting every node on the way. It returns the
// sentinel when v is absent.
func (t *Tree) locate(s *anim.Session, v int) (index, error) {
	cur := t.root
	for cur != nilIndex {
		cv := t.nodes[cur].value
		switch {
		case v == cv:
			t.show(cur, fmt.Sprintf("found %d", v))
		case v < cv:
			t.show(cur, fmt.Sprintf("%d < %d: go left", v, cv))
		default:
			t.show(cur, fmt.Sprintf("%d > %d: go right", v, cv))
		}
		if err := s.Pause(t.delay); err != nil {
			return nilIndex, err
		}
		switch {
		case v == cv:
			return cur, nil
		case v < cv:
			cur = t.left(cur)
		default:
			cur = t.right(cur)
		}
	}
	return nilIndex, nil
}

// Search descends looking for v and reports whether it was found.
func (t *Tree) Search(ctx context.Context, v int) (bool, error) {
	found := false
	err := t.run(ctx, "search", v, func(s *anim.Session) error {
		i, err := t.locate(s, v)
		if err != nil {
			return err
		}
		if i != nilIndex {
			found = true
			return nil
		}
		t.mu.Lock()
		t.highlight = nilIndex
		t.setStatusLocked(fmt.Sprintf("%d is not in the tree", v), t.layout.Root())
		t.mu.Unlock()
		t.publish()
		return s.Pause(t.delay)
	})
	return found, err
}

// Traverse walks the tree in the given order, appending each value to the
// result as it is emitted.
func (t *Tree) Traverse(ctx context.Context, order bst.Order) ([]int, error) {
	if order < bst.Preorder || order > bst.Postorder {
		return nil, t.reject("traverse", errors.Wrapf(bst.ErrUnknownOrder, "%d", int(order)))
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

func (t *Tree) walk(s *anim.Session, i index, order bst.Order) error {
	if i == nilIndex {
		return nil
	}
	if order == bst.Preorder {
		if err := t.emit(s, i, order); err != nil {
			return err
		}
	}
	if err := t.walk(s, t.left(i), order); err != nil {
		return err
	}
	if order == bst.Inorder {
		if err := t.emit(s, i, order); err != nil {
			return err
		}
	}
	if err := t.walk(s, t.right(i), order); err != nil {
		return err
	}
	if order == bst.Postorder {
		return t.emit(s, i, order)
	}
	return nil
}

func (t *Tree) emit(s *anim.Session, i index, order bst.Order) error {
	t.mu.Lock()
	n := t.nodes[i]
	t.traversal = append(t.traversal, n.value)
	t.highlight = i
	t.setStatusLocked(fmt.Sprintf("%s: visit %d", order, n.value), n.pos)
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
	t.nodes = make([]node, 1)
	t.free = nil
	t.root = nilIndex
	t.size = 0
	t.highlight = nilIndex
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

// Values returns the values in order, without animation.
func (t *Tree) Values() []int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []int
	var rec func(index)
	rec = func(i index) {
		if i == nilIndex {
			return
		}
		rec(t.nodes[i].left)
		out = append(out, t.nodes[i].value)
		rec(t.nodes[i].right)
	}
	rec(t.root)
	return out
}

// Snapshot returns the render-facing state.
func (t *Tree) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	snap := Snapshot{
		Root:      t.nodes[t.root].id,
		Nodes:     make([]NodeView, 0, t.size),
		Status:    t.status,
		Traversal: append([]int(nil), t.traversal...),
		Animating: t.guard.Busy(),
	}
	var rec func(index)
	rec = func(i index) {
		if i == nilIndex {
			return
		}
		n := t.nodes[i]
		color := "black"
		if n.color == Red {
			color = "red"
		}
		snap.Nodes = append(snap.Nodes, NodeView{
			ID:          n.id,
			Value:       n.value,
			Color:       color,
			Position:    n.pos,
			Left:        t.nodes[n.left].id,
			Right:       t.nodes[n.right].id,
			Parent:      t.nodes[n.parent].id,
			Highlighted: i == t.highlight,
		})
		rec(n.left)
		rec(n.right)
	}
	rec(t.root)
	return snap
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
	t.highlight = nilIndex
	t.status = anim.Status{}
	t.mu.Unlock()
	t.publish()

	switch {
	case err == nil:
		log.Debug("operation finished", zap.Int("size", t.Len()), zap.Bool("fastForwarded", s.FastForwarded()))
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

// step applies one structural change under the lock, recomputes the layout,
// captions the node returned by mutate and pauses.
func (t *Tree) step(s *anim.Session, mutate func() index, text string) error {
	t.mu.Lock()
	focus := mutate()
	t.relayoutLocked()
	t.highlight = focus
	at := t.layout.Root()
	if focus != nilIndex {
		at = t.nodes[focus].pos
	}
	t.setStatusLocked(text, at)
	t.mu.Unlock()
	t.publish()
	return s.Pause(t.delay)
}

// show highlights i and sets the caption next to it.
func (t *Tree) show(i index, text string) {
	t.mu.Lock()
	t.highlight = i
	t.setStatusLocked(text, t.nodes[i].pos)
	t.mu.Unlock()
	t.publish()
}

func (t *Tree) setStatusLocked(text string, at geom.Vec3) {
	at.Y += 1.2
	t.status = anim.Status{Text: text, Anchor: at}
}

// relayoutLocked recomputes every position top-down.
func (t *Tree) relayoutLocked() {
	var rec func(i index, pos geom.Vec3, depth int)
	rec = func(i index, pos geom.Vec3, depth int) {
		if i == nilIndex {
			return
		}
		t.nodes[i].pos = pos
		rec(t.nodes[i].left, t.layout.Child(pos, depth+1, false), depth+1)
		rec(t.nodes[i].right, t.layout.Child(pos, depth+1, true), depth+1)
	}
	rec(t.root, t.layout.Root(), 0)
}

func (t *Tree) publish() {
	t.sink.Frame(Topic, t.Snapshot())
}
