// SPDX-License-Identifier: MIT

package server

import (
	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/algoviz/geom"
)

// Engine names accepted in Command.Engine.
const (
	EngineAnim   = "anim"
	EngineList   = "list"
	EngineBST    = "bst"
	EngineRBTree = "rbtree"
	EngineGraph  = "graph"
	EngineSort   = "sort"
)

var (
	ErrBadCommand    = errors.New("server: malformed command")
	ErrUnknownEngine = errors.New("server: unknown engine")
	ErrUnknownOp     = errors.New("server: unknown operation")
	ErrMissingField  = errors.New("server: missing field")
	ErrStopped       = errors.New("server: operation stopped")
)

// Command is one control message from a websocket client. Only the fields
// the operation needs are read.
type Command struct {
	ID     string `json:"id,omitempty"`
	Engine string `json:"engine"`
	Op     string `json:"op"`

	Value  *int   `json:"value,omitempty"`
	Values []int  `json:"values,omitempty"`
	Kind   string `json:"kind,omitempty"`
	Order  string `json:"order,omitempty"`

	Algorithm string  `json:"algorithm,omitempty"`
	Speed     float64 `json:"speed,omitempty"`

	Node     string     `json:"node,omitempty"`
	From     string     `json:"from,omitempty"`
	To       string     `json:"to,omitempty"`
	Edge     string     `json:"edge,omitempty"`
	Directed *bool      `json:"directed,omitempty"`
	Position *geom.Vec3 `json:"position,omitempty"`

	Preset string `json:"preset,omitempty"`
	Size   int    `json:"size,omitempty"`
	Seed   int64  `json:"seed,omitempty"`
}

// Reply answers a Command. Animated operations reply when they finish.
type Reply struct {
	ID     string `json:"id,omitempty"`
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
	Hint   string `json:"hint,omitempty"`
	Result any    `json:"result,omitempty"`
}

func (c Command) value() (int, error) {
	if c.Value == nil {
		return 0, missing("value", `{"engine":"`+c.Engine+`","op":"`+c.Op+`","value":5}`)
	}
	return *c.Value, nil
}

func (c Command) position() geom.Vec3 {
	if c.Position == nil {
		return geom.Vec3{}
	}
	return *c.Position
}

func missing(field, example string) error {
	return errors.WithHintf(errors.Wrapf(ErrMissingField, "%q", field), "for example %s", example)
}
