// SPDX-License-Identifier: MIT

package anim

import (
	"strings"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/algoviz/geom"
)

// Sink is the render boundary. Engines publish a fresh read-only snapshot
// after every visible change and a Notice for every rejected operation.
// Implementations must not block for long and must not retain the snapshot
// beyond encoding it.
type Sink interface {
	Frame(topic string, snapshot any)
	Notice(topic string, n Notice)
}

// Discard drops everything.
var Discard Sink = discardSink{}

type discardSink struct{}

func (discardSink) Frame(string, any)     {}
func (discardSink) Notice(string, Notice) {}

// Level grades a Notice.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notice is a transient, non-blocking message for the learner.
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

// NoticeFromError turns a rejected-operation error into a warning Notice,
// carrying any hints attached with errors.WithHint.
func NoticeFromError(err error) Notice {
	return Notice{
		Level:   LevelWarning,
		Message: err.Error(),
		Hint:    strings.Join(errors.GetAllHints(err), "\n"),
	}
}

// Status is the caption shown next to the structure, e.g. "5 < 8: go left".
type Status struct {
	Text   string    `json:"text"`
	Anchor geom.Vec3 `json:"anchor"`
}

// Recorder is a Sink that keeps everything it receives. It is handy in tests
// and in the CLI, where frames are replayed to the terminal afterwards.
type Recorder struct {
	mu      sync.Mutex
	frames  []RecordedFrame
	notices []Notice
}

// RecordedFrame is one frame captured by a Recorder.
type RecordedFrame struct {
	Topic    string
	Snapshot any
}

// Frame implements Sink.
func (r *Recorder) Frame(topic string, snapshot any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, RecordedFrame{Topic: topic, Snapshot: snapshot})
}

// Notice implements Sink.
func (r *Recorder) Notice(_ string, n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

// Frames returns a copy of the captured frames.
func (r *Recorder) Frames() []RecordedFrame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RecordedFrame(nil), r.frames...)
}

// Notices returns a copy of the captured notices.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}
