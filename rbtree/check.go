// SPDX-License-Identifier: MIT

package rbtree

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Check verifies the red-black invariants (BLACK root, no RED node with a
// RED child, equal BLACK count on every root-to-nil path), BST ordering,
// parent links and the node count.
func (t *Tree) Check() error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.nodes[nilIndex].color != Black {
		return errors.AssertionFailedf("rbtree: nil leaf is %s", t.nodes[nilIndex].color)
	}
	if t.color(t.root) != Black {
		return errors.AssertionFailedf("rbtree: root %s is RED", t.label(t.root))
	}
	if t.root != nilIndex && t.parent(t.root) != nilIndex {
		return errors.AssertionFailedf("rbtree: root %s has a parent", t.label(t.root))
	}
	count := 0
	var rec func(i index, lo, hi *int) (int, error)
	rec = func(i index, lo, hi *int) (int, error) {
		if i == nilIndex {
			return 1, nil
		}
		count++
		n := t.nodes[i]
		if (lo != nil && n.value <= *lo) || (hi != nil && n.value >= *hi) {
			return 0, errors.AssertionFailedf("rbtree: node %d violates ordering", n.value)
		}
		for _, c := range [2]index{n.left, n.right} {
			if c == nilIndex {
				continue
			}
			if t.nodes[c].parent != i {
				return 0, errors.AssertionFailedf("rbtree: child %d does not point back at %d", t.nodes[c].value, n.value)
			}
			if n.color == Red && t.nodes[c].color == Red {
				return 0, errors.AssertionFailedf("rbtree: RED node %d has RED child %d", n.value, t.nodes[c].value)
			}
		}
		lh, err := rec(n.left, lo, &n.value)
		if err != nil {
			return 0, err
		}
		rh, err := rec(n.right, &n.value, hi)
		if err != nil {
			return 0, err
		}
		if lh != rh {
			return 0, errors.AssertionFailedf("rbtree: black heights %d and %d differ under %d", lh, rh, n.value)
		}
		if n.color == Black {
			lh++
		}
		return lh, nil
	}
	if _, err := rec(t.root, nil, nil); err != nil {
		return err
	}
	if count != t.size {
		return errors.AssertionFailedf("rbtree: size %d but %d reachable nodes", t.size, count)
	}
	return nil
}

// BlackHeight returns the number of BLACK nodes on the leftmost root-to-leaf
// path, not counting the nil leaf. On a valid tree every path agrees.
func (t *Tree) BlackHeight() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	h := 0
	for i := t.root; i != nilIndex; i = t.nodes[i].left {
		if t.nodes[i].color == Black {
			h++
		}
	}
	return h
}

// Height returns the number of nodes on the longest root-to-leaf path.
func (t *Tree) Height() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var rec func(index) int
	rec = func(i index) int {
		if i == nilIndex {
			return 0
		}
		return 1 + max(rec(t.nodes[i].left), rec(t.nodes[i].right))
	}
	return rec(t.root)
}

// String renders the tree sideways, left child first, with each node's
// color:
//
//	20(B)
//	├── 10(R)
//	└── 30(R)
func (t *Tree) String() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.root == nilIndex {
		return "(empty)\n"
	}
	var b strings.Builder
	b.WriteString(t.caption(t.root))
	b.WriteByte('\n')
	t.writeChildren(&b, t.root, "")
	return b.String()
}

func (t *Tree) caption(i index) string {
	c := "B"
	if t.nodes[i].color == Red {
		c = "R"
	}
	return strconv.Itoa(t.nodes[i].value) + "(" + c + ")"
}

func (t *Tree) writeChildren(b *strings.Builder, i index, prefix string) {
	n := t.nodes[i]
	if n.left == nilIndex && n.right == nilIndex {
		return
	}
	for k, c := range [2]index{n.left, n.right} {
		conn, ext := "├── ", "│   "
		if k == 1 {
			conn, ext = "└── ", "    "
		}
		if c == nilIndex {
			b.WriteString(prefix + conn + "nil\n")
			continue
		}
		b.WriteString(prefix + conn + t.caption(c) + "\n")
		t.writeChildren(b, c, prefix+ext)
	}
}
