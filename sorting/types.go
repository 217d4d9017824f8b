// SPDX-License-Identifier: MIT

package sorting

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/algoviz/anim"
	"github.com/katalvlaran/algoviz/geom"
)

// Topic is the Sink topic the engine publishes under.
const Topic = "sort"

const (
	// MinValue and MaxValue bound element values (bar heights).
	MinValue = 1
	MaxValue = 100

	// MaxElements caps the array so every bar stays readable.
	MaxElements = 40

	// StepFrames is the number of frames each step is animated over.
	StepFrames = 20

	// StepDelay is the base duration of one step; each frame waits
	// StepDelay/StepFrames.
	StepDelay = 500 * time.Millisecond

	// Spacing is the horizontal distance between slots.
	Spacing = 1.5

	// LiftHeight raises a lifted insertion key above the row.
	LiftHeight = 3.0

	// LevelDrop lowers merge-sort sub-ranges per recursion level.
	LevelDrop = 2.5

	// SwapArc is the height of the hop swapped elements make.
	SwapArc = 2.0
)

// Sentinel errors for learner-facing rejections.
var (
	// ErrValueRange is returned for a value outside [MinValue, MaxValue].
	ErrValueRange = errors.New("sorting: value out of range")

	// ErrTooMany is returned when loading more than MaxElements values.
	ErrTooMany = errors.New("sorting: too many elements")

	// ErrUnknownAlgorithm is returned by ParseAlgorithm and Generate.
	ErrUnknownAlgorithm = errors.New("sorting: unknown algorithm")

	// ErrUnknownElement is returned by Replay for a step that names an
	// element which is not in the order.
	ErrUnknownElement = errors.New("sorting: step references unknown element")

	// ErrBadRange is returned by Replay for an out-of-bounds slot or range.
	ErrBadRange = errors.New("sorting: step slot out of range")
)

// Algorithm names a comparison sort.
type Algorithm string

const (
	Bubble    Algorithm = "bubble"
	Selection Algorithm = "selection"
	Insertion Algorithm = "insertion"
	Merge     Algorithm = "merge"
	Quick     Algorithm = "quick"
)

// Algorithms lists every supported algorithm.
func Algorithms() []Algorithm {
	return []Algorithm{Bubble, Selection, Insertion, Merge, Quick}
}

// ParseAlgorithm maps a name such as "quick" or "Merge" to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	a := Algorithm(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Algorithms() {
		if a == known {
			return a, nil
		}
	}
	names := make([]string, 0, 5)
	for _, known := range Algorithms() {
		names = append(names, string(known))
	}
	return "", errors.WithHintf(errors.Wrapf(ErrUnknownAlgorithm, "%q", s),
		"choose one of: %s", strings.Join(names, ", "))
}

// Element is a value with a stable identity. Steps refer to elements by ID
// so equal values stay distinguishable.
type Element struct {
	ID    uuid.UUID `json:"id"`
	Value int       `json:"value"`
}

// ValidateValues checks the count and range of values to load.
func ValidateValues(values []int) error {
	if len(values) > MaxElements {
		return errors.WithHintf(errors.Wrapf(ErrTooMany, "%d values", len(values)),
			"at most %d elements fit on screen", MaxElements)
	}
	for i, v := range values {
		if v < MinValue || v > MaxValue {
			return errors.WithHintf(errors.Wrapf(ErrValueRange, "value %d at position %d", v, i),
				"values must be between %d and %d", MinValue, MaxValue)
		}
	}
	return nil
}

// Role is the transient highlight of an element.
type Role string

const (
	RoleNone    Role = ""
	RoleCompare Role = "compare"
	RoleMin     Role = "min"
	RolePivot   Role = "pivot"
	RoleLifted  Role = "lifted"
	RoleMoving  Role = "moving"
)

// ElementView is the render-facing view of an element.
type ElementView struct {
	ID       uuid.UUID `json:"id"`
	Value    int       `json:"value"`
	Slot     int       `json:"slot"`
	Position geom.Vec3 `json:"position"`
	Role     Role      `json:"role"`
	Sorted   bool      `json:"sorted"`
}

// Snapshot is a read-only copy of the array's visual state, in slot order.
type Snapshot struct {
	Algorithm   Algorithm     `json:"algorithm"`
	Elements    []ElementView `json:"elements"`
	Step        int           `json:"step"`
	Steps       int           `json:"steps"`
	Comparisons int           `json:"comparisons"`
	Writes      int           `json:"writes"`
	Status      anim.Status   `json:"status"`
	Animating   bool          `json:"animating"`
}

// Option configures an Engine.
type Option func(*Engine)

// WithPacer shares a Pacer (speed, pause) with other engines.
func WithPacer(p *anim.Pacer) Option {
	return func(e *Engine) {
		if p != nil {
			e.pacer = p
		}
	}
}

// WithSink sets the render boundary.
func WithSink(s anim.Sink) Option {
	return func(e *Engine) {
		if s != nil {
			e.sink = s
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithStepDelay overrides StepDelay.
func WithStepDelay(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.delay = d
		}
	}
}

// WithStepFrames overrides StepFrames. Values below 1 are ignored.
func WithStepFrames(n int) Option {
	return func(e *Engine) {
		if n >= 1 {
			e.frames = n
		}
	}
}

// WithIDSource overrides uuid.New.
func WithIDSource(fn func() uuid.UUID) Option {
	return func(e *Engine) {
		if fn != nil {
			e.newID = fn
		}
	}
}
