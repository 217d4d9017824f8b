// SPDX-License-Identifier: MIT

package anim

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
)

// ErrBusy is returned by every mutating entry point while another animated
// operation of the same engine is in flight.
var ErrBusy = errors.New("anim: another animation is in progress")

// Guard is the per-engine isAnimating flag. It is advisory: engines call
// TryAcquire on entry and Release when the operation finishes.
type Guard struct {
	busy atomic.Bool
}

// TryAcquire sets the flag and reports true if it was clear.
func (g *Guard) TryAcquire() bool { return g.busy.CompareAndSwap(false, true) }

// Release clears the flag.
func (g *Guard) Release() { g.busy.Store(false) }

// Busy reports whether an operation holds the flag.
func (g *Guard) Busy() bool { return g.busy.Load() }

// Session paces a single tree or list operation. Before Commit, a cancelled
// context aborts the operation (nothing has been mutated yet). After Commit
// the structural change is underway and must finish, so cancellation turns
// every remaining pause into a no-op instead.
type Session struct {
	ctx       context.Context
	pacer     *Pacer
	committed bool
	skipped   bool
}

// Begin opens a Session bound to ctx.
func (p *Pacer) Begin(ctx context.Context) *Session {
	return &Session{ctx: ctx, pacer: p}
}

// Pause waits for the scaled delay. It only returns an error before Commit.
func (s *Session) Pause(base time.Duration) error {
	if s.skipped {
		return nil
	}
	err := s.pacer.Wait(s.ctx, base)
	if err != nil && s.committed {
		s.skipped = true
		return nil
	}
	return err
}

// Commit marks the point after which the operation can no longer abort.
func (s *Session) Commit() { s.committed = true }

// FastForwarded reports whether pauses were skipped because the context was
// cancelled after Commit.
func (s *Session) FastForwarded() bool { return s.skipped }

// Context returns the session's context.
func (s *Session) Context() context.Context { return s.ctx }
