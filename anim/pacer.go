// SPDX-License-Identifier: MIT
//
// File: pacer.go
// Role: the suspension point between animation steps.
// Policy:
//   - Wait(ctx, base) sleeps base/speed; while paused it blocks until Resume.
//   - Pause is an explicit signal (a channel closed on Resume), never a poll.
//   - Every blocking path honors ctx so shutdown never leaks timers.

package anim

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
)

// Speed bounds. SetSpeed clamps into [MinSpeed, MaxSpeed].
const (
	MinSpeed     = 0.1
	MaxSpeed     = 10.0
	DefaultSpeed = 1.0
)

// ErrBadSpeed is returned when a non-positive or NaN speed multiplier is supplied.
var ErrBadSpeed = errors.New("anim: speed multiplier must be positive")

// SleepFunc blocks for d or until ctx is done, returning ctx.Err() in the
// latter case.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Instant never blocks. It is meant for tests and headless runs: pausing and
// cancellation still behave exactly as with a real clock.
func Instant(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

func timerSleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Pacer is the speed-adjustable, pausable delay every engine awaits between
// visible steps. A single Pacer may be shared by several engines; all of its
// methods are safe for concurrent use.
type Pacer struct {
	mu     sync.Mutex
	speed  float64
	paused bool
	resume chan struct{} // closed while running, open while paused
	sleep  SleepFunc
}

// PacerOption configures a Pacer at construction.
type PacerOption func(*Pacer)

// WithSleep replaces the timer-based sleep. Nil is ignored.
func WithSleep(fn SleepFunc) PacerOption {
	return func(p *Pacer) {
		if fn != nil {
			p.sleep = fn
		}
	}
}

// WithSpeed sets the initial speed multiplier. Invalid values are ignored.
func WithSpeed(s float64) PacerOption {
	return func(p *Pacer) {
		if s > 0 && !math.IsNaN(s) {
			p.speed = clampSpeed(s)
		}
	}
}

// NewPacer returns a running (unpaused) Pacer at DefaultSpeed.
func NewPacer(opts ...PacerOption) *Pacer {
	p := &Pacer{
		speed:  DefaultSpeed,
		resume: make(chan struct{}),
		sleep:  timerSleep,
	}
	close(p.resume)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Wait suspends the caller for base/speed. If the pacer is paused, before or
// during the delay, Wait additionally blocks until Resume is called.
// It returns ctx.Err() as soon as ctx is done.
func (p *Pacer) Wait(ctx context.Context, base time.Duration) error {
	if err := p.awaitRunning(ctx); err != nil {
		return err
	}
	if err := p.sleep(ctx, p.scale(base)); err != nil {
		return err
	}
	// a pause requested mid-delay holds the caller here, before the next step
	return p.awaitRunning(ctx)
}

func (p *Pacer) awaitRunning(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	ch := p.resume
	p.mu.Unlock()
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pacer) scale(base time.Duration) time.Duration {
	p.mu.Lock()
	s := p.speed
	p.mu.Unlock()
	return time.Duration(float64(base) / s)
}

// Pause makes subsequent (and in-flight) Waits block until Resume.
func (p *Pacer) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.paused {
		p.paused = true
		p.resume = make(chan struct{})
	}
}

// Resume releases every Wait blocked on a pause.
func (p *Pacer) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.paused {
		p.paused = false
		close(p.resume)
	}
}

// Toggle flips the pause state and reports whether the pacer is now paused.
func (p *Pacer) Toggle() bool {
	if p.Paused() {
		p.Resume()
		return false
	}
	p.Pause()
	return true
}

// Paused reports the pause state.
func (p *Pacer) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// SetSpeed changes the multiplier applied to every later delay. Values are
// clamped into [MinSpeed, MaxSpeed].
func (p *Pacer) SetSpeed(s float64) error {
	if !(s > 0) || math.IsNaN(s) {
		return errors.Wrapf(ErrBadSpeed, "got %v", s)
	}
	p.mu.Lock()
	p.speed = clampSpeed(s)
	p.mu.Unlock()
	return nil
}

// Speed returns the current multiplier.
func (p *Pacer) Speed() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.speed
}

func clampSpeed(s float64) float64 {
	return math.Min(MaxSpeed, math.Max(MinSpeed, s))
}
