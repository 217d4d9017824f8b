// SPDX-License-Identifier: MIT

package sorting

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/algoviz/anim"
)

// Engine is the animated sort engine: an array of elements, a Player and
// the busy flag. Load, Randomize, Start and Reset are rejected with
// anim.ErrBusy while a sort is playing.
type Engine struct {
	mu     sync.RWMutex
	loaded []Element

	guard  anim.Guard
	pacer  *anim.Pacer
	sink   anim.Sink
	log    *zap.Logger
	delay  time.Duration
	frames int
	newID  func() uuid.UUID
	player *Player
}

// New returns an engine with an empty array.
func New(opts ...Option) *Engine {
	e := &Engine{
		pacer:  anim.NewPacer(),
		sink:   anim.Discard,
		log:    zap.NewNop(),
		delay:  StepDelay,
		frames: StepFrames,
		newID:  uuid.New,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With(zap.String("engine", Topic))
	e.player = NewPlayer(e.pacer, e.frames, e.delay, e.publish)
	return e
}

// Pacer exposes the engine's pacer for pause and speed control.
func (e *Engine) Pacer() *anim.Pacer { return e.pacer }

// Animating reports whether a sort is playing.
func (e *Engine) Animating() bool { return e.guard.Busy() }

// Load replaces the array with fresh elements for values.
func (e *Engine) Load(values []int) error {
	if !e.guard.TryAcquire() {
		return e.reject("load", anim.ErrBusy)
	}
	if err := ValidateValues(values); err != nil {
		e.guard.Release()
		return e.reject("load", err)
	}
	elems := make([]Element, len(values))
	for i, v := range values {
		elems[i] = Element{ID: e.newID(), Value: v}
	}
	e.mu.Lock()
	e.loaded = elems
	e.mu.Unlock()
	e.player.Load(elems)
	e.guard.Release()
	e.log.Debug("array loaded", zap.Ints("values", values))
	e.publish()
	return nil
}

// Randomize loads n values drawn uniformly from [MinValue, MaxValue] with
// the given seed.
func (e *Engine) Randomize(n int, seed int64) error {
	if n < 0 || n > MaxElements {
		return e.reject("randomize", errors.WithHintf(
			errors.Wrapf(ErrTooMany, "%d elements", n), "pick between 0 and %d elements", MaxElements))
	}
	r := rand.New(rand.NewSource(seed))
	values := make([]int, n)
	for i := range values {
		values[i] = MinValue + r.Intn(MaxValue-MinValue+1)
	}
	return e.Load(values)
}

// Start sorts the current array with alg, animating every step. It
// returns when the array is sorted, the context is cancelled, or the
// algorithm is unknown.
func (e *Engine) Start(ctx context.Context, alg Algorithm) error {
	if !e.guard.TryAcquire() {
		return e.reject("start", anim.ErrBusy)
	}
	defer func() {
		e.guard.Release()
		e.publish()
	}()

	steps, err := Generate(alg, e.player.Elements())
	if err != nil {
		return e.reject("start", err)
	}
	log := e.log.With(zap.String("op", "start"), zap.String("algorithm", string(alg)))
	log.Debug("sort started", zap.Int("steps", len(steps)))
	e.player.prepare(alg, len(steps))

	switch err := e.player.Play(ctx, steps); {
	case err == nil:
		log.Debug("sort finished")
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		log.Debug("sort cancelled")
		return err
	default:
		return e.reject("start", err)
	}
}

// Reset restores the array as it was last loaded, unsorted.
func (e *Engine) Reset() error {
	if !e.guard.TryAcquire() {
		return e.reject("reset", anim.ErrBusy)
	}
	e.mu.RLock()
	elems := e.loaded
	e.mu.RUnlock()
	e.player.Load(elems)
	e.guard.Release()
	e.publish()
	return nil
}

// Values returns the values in their current slot order.
func (e *Engine) Values() []int {
	elems := e.player.Elements()
	out := make([]int, len(elems))
	for i, el := range elems {
		out[i] = el.Value
	}
	return out
}

// Snapshot returns a copy of the array's visual state.
func (e *Engine) Snapshot() Snapshot {
	s := e.player.Snapshot()
	s.Animating = e.guard.Busy()
	return s
}

func (e *Engine) reject(op string, err error) error {
	e.log.Debug("operation rejected", zap.String("op", op), zap.Error(err))
	e.sink.Notice(Topic, anim.NoticeFromError(err))
	return err
}

func (e *Engine) publish() {
	e.sink.Frame(Topic, e.Snapshot())
}
