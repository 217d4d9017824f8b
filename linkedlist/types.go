// SPDX-License-Identifier: MIT

package linkedlist

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

// Topic is the Sink topic list engines publish under.
const Topic = "list"

const (
	// TraversalDelay is the pause spent on each node while the circular
	// variant walks to its tail.
	TraversalDelay = 400 * time.Millisecond

	// Spacing is the horizontal distance between neighbouring nodes.
	Spacing = 3.0

	// MaxLength caps the list so it stays on screen.
	MaxLength = 12
)

// Sentinel errors.
var (
	// ErrEmpty is returned when deleting from an empty list.
	ErrEmpty = errors.New("linkedlist: list is empty")

	// ErrFull is returned when inserting into a list of MaxLength nodes.
	ErrFull = errors.New("linkedlist: list is full")

	// ErrUnknownKind is returned by ParseKind.
	ErrUnknownKind = errors.New("linkedlist: unknown list kind")
)

// Kind selects the linked-list variant.
type Kind int

const (
	Singly Kind = iota
	Doubly
	Circular
)

func (k Kind) String() string {
	switch k {
	case Singly:
		return "singly"
	case Doubly:
		return "doubly"
	case Circular:
		return "circular"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps "singly", "doubly" or "circular" to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "singly", "single", "sll":
		return Singly, nil
	case "doubly", "double", "dll":
		return Doubly, nil
	case "circular", "csll":
		return Circular, nil
	}
	return 0, errors.Wrapf(ErrUnknownKind, "%q", s)
}

// Node is one list element. Adjacency is positional: the node after index i
// is index i+1.
type Node struct {
	ID    uuid.UUID
	Value int
}

// LinkKind labels an arrow drawn between two nodes.
type LinkKind string

const (
	LinkNext LinkKind = "next"
	LinkPrev LinkKind = "prev"
	LinkWrap LinkKind = "wrap" // circular tail → head
)

// Link is an arrow in a Snapshot.
type Link struct {
	From uuid.UUID `json:"from"`
	To   uuid.UUID `json:"to"`
	Kind LinkKind  `json:"kind"`
}

// NodeView is the render-facing view of one node.
type NodeView struct {
	ID          uuid.UUID `json:"id"`
	Value       int       `json:"value"`
	Position    geom.Vec3 `json:"position"`
	Highlighted bool      `json:"highlighted"`
	Head        bool      `json:"head"`
	Tail        bool      `json:"tail"`
}

// Snapshot is a read-only copy of the list's visual state.
type Snapshot struct {
	Kind      string      `json:"kind"`
	Nodes     []NodeView  `json:"nodes"`
	Links     []Link      `json:"links"`
	Status    anim.Status `json:"status"`
	Animating bool        `json:"animating"`
}

// Option configures a List.
type Option func(*List)

// WithPacer shares a Pacer (speed, pause) with other engines.
func WithPacer(p *anim.Pacer) Option {
	return func(l *List) {
		if p != nil {
			l.pacer = p
		}
	}
}

// WithSink sets the render boundary.
func WithSink(s anim.Sink) Option {
	return func(l *List) {
		if s != nil {
			l.sink = s
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(log *zap.Logger) Option {
	return func(l *List) {
		if log != nil {
			l.log = log
		}
	}
}

// WithIDSource overrides uuid.New, mostly for deterministic tests.
func WithIDSource(fn func() uuid.UUID) Option {
	return func(l *List) {
		if fn != nil {
			l.newID = fn
		}
	}
}
