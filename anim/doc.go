// Package anim provides the pieces every animated engine shares: the
// step-timing primitive (Pacer), the busy flag (Guard), the per-operation
// pacing handle (Session) and the render boundary (Sink, Notice, Status).
//
// What
//
//   - Pacer.Wait(ctx, base) suspends for base/speed, blocks indefinitely while
//     paused, and returns ctx.Err() on cancellation.
//   - Guard rejects a second operation while one is in flight (ErrBusy).
//   - Session distinguishes the abortable part of an operation (before
//     Commit) from the part that must run to completion (after Commit).
//   - Sink receives read-only snapshots and learner notices.
//
// Concurrency
//
//	Engines run each operation in the caller's goroutine. Pause, Resume and
//	SetSpeed may be called from any goroutine; a single Pacer can drive
//	several engines.
//
// Usage
//
//	p := anim.NewPacer(anim.WithSpeed(2))
//	go func() { time.Sleep(time.Second); p.Pause() }()
//	if err := p.Wait(ctx, 500*time.Millisecond); err != nil {
//		// ctx cancelled
//	}
package anim
