// SPDX-License-Identifier: MIT

package bst

import (
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/algoviz/anim"
	"github.com/katalvlaran/algoviz/geom"
)

// Topic is the Sink topic the engine publishes under.
const Topic = "bst"

// StepDelay is the base pause at every visited node.
const StepDelay = 600 * time.Millisecond

// Sentinel errors for learner-facing rejections.
var (
	// ErrDuplicate is returned when inserting a value already in the tree.
	ErrDuplicate = errors.New("bst: value already in tree")

	// ErrNotFound is returned when deleting a value that is not in the tree.
	ErrNotFound = errors.New("bst: value not found")

	// ErrUnknownOrder is returned by ParseOrder.
	ErrUnknownOrder = errors.New("bst: unknown traversal order")
)

// Order selects a depth-first traversal.
type Order int

const (
	Preorder Order = iota
	Inorder
	Postorder
)

func (o Order) String() string {
	switch o {
	case Preorder:
		return "preorder"
	case Inorder:
		return "inorder"
	case Postorder:
		return "postorder"
	default:
		return fmt.Sprintf("Order(%d)", int(o))
	}
}

// ParseOrder maps "preorder", "inorder" or "postorder" to an Order.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "preorder", "pre":
		return Preorder, nil
	case "inorder", "in":
		return Inorder, nil
	case "postorder", "post":
		return Postorder, nil
	}
	return 0, errors.Wrapf(ErrUnknownOrder, "%q", s)
}

// Node is a tree node. Children are owned by their parent.
type Node struct {
	ID       uuid.UUID
	Value    int
	Left     *Node
	Right    *Node
	Position geom.Vec3
}

// NodeView is the render-facing view of a node. Left and Right are uuid.Nil
// for absent children.
type NodeView struct {
	ID          uuid.UUID `json:"id"`
	Value       int       `json:"value"`
	Position    geom.Vec3 `json:"position"`
	Left        uuid.UUID `json:"left"`
	Right       uuid.UUID `json:"right"`
	Highlighted bool      `json:"highlighted"`
}

// Snapshot is a read-only copy of the tree's visual state. Nodes are in
// preorder.
type Snapshot struct {
	Root      uuid.UUID   `json:"root"`
	Nodes     []NodeView  `json:"nodes"`
	Status    anim.Status `json:"status"`
	Traversal []int       `json:"traversal"`
	Animating bool        `json:"animating"`
}

// Option configures a Tree.
type Option func(*Tree)

// WithPacer shares a Pacer (speed, pause) with other engines.
func WithPacer(p *anim.Pacer) Option {
	return func(t *Tree) {
		if p != nil {
			t.pacer = p
		}
	}
}

// WithSink sets the render boundary.
func WithSink(s anim.Sink) Option {
	return func(t *Tree) {
		if s != nil {
			t.sink = s
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(log *zap.Logger) Option {
	return func(t *Tree) {
		if log != nil {
			t.log = log
		}
	}
}

// WithLayout overrides geom.DefaultTreeLayout.
func WithLayout(l geom.TreeLayout) Option {
	return func(t *Tree) { t.layout = l }
}

// WithStepDelay overrides StepDelay.
func WithStepDelay(d time.Duration) Option {
	return func(t *Tree) {
		if d >= 0 {
			t.delay = d
		}
	}
}

// WithIDSource overrides uuid.New.
func WithIDSource(fn func() uuid.UUID) Option {
	return func(t *Tree) {
		if fn != nil {
			t.newID = fn
		}
	}
}
