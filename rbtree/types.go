// SPDX-License-Identifier: MIT

package rbtree

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/algoviz/anim"
	"github.com/katalvlaran/algoviz/geom"
)

// Topic is the Sink topic the engine publishes under.
const Topic = "rbtree"

// StepDelay is the base pause after every comparison, recolor and rotation.
const StepDelay = 600 * time.Millisecond

var (
	// ErrDuplicate is returned when inserting a value already in the tree.
	ErrDuplicate = errors.New("rbtree: value already in tree")

	// ErrNotFound is returned when deleting a value that is not in the tree.
	ErrNotFound = errors.New("rbtree: value not found")
)

// Color is a node color. The zero value is Black so the sentinel needs no
// initialization.
type Color uint8

const (
	Black Color = iota
	Red
)

func (c Color) String() string {
	switch c {
	case Black:
		return "BLACK"
	case Red:
		return "RED"
	default:
		return fmt.Sprintf("Color(%d)", uint8(c))
	}
}

// index addresses a node in the arena. Index 0 is the sentinel nil leaf.
type index uint32

const nilIndex index = 0

type node struct {
	id     uuid.UUID
	value  int
	color  Color
	left   index
	right  index
	parent index
	pos    geom.Vec3
}

// NodeView is the render-facing view of a node. Left, Right and Parent are
// uuid.Nil where the link points at the nil leaf.
type NodeView struct {
	ID          uuid.UUID `json:"id"`
	Value       int       `json:"value"`
	Color       string    `json:"color"`
	Position    geom.Vec3 `json:"position"`
	Left        uuid.UUID `json:"left"`
	Right       uuid.UUID `json:"right"`
	Parent      uuid.UUID `json:"parent"`
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
