// SPDX-License-Identifier: MIT

package feed

import (
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/katalvlaran/algoviz/anim"
)

// FrameRate is the default cap on frames per second per topic.
const FrameRate = 60

// Message types on the wire.
const (
	TypeFrame  = "frame"
	TypeNotice = "notice"
	TypeReply  = "reply"
)

// Envelope is every message the hub sends.
type Envelope struct {
	Type  string `json:"type"`
	Topic string `json:"topic,omitempty"`
	Data  any    `json:"data"`
}

// Observer is told about hub events; *metrics.Metrics satisfies it.
type Observer interface {
	Coalesced(topic string)
	ClientConnected()
	ClientDisconnected()
}

type nopObserver struct{}

func (nopObserver) Coalesced(string)    {}
func (nopObserver) ClientConnected()    {}
func (nopObserver) ClientDisconnected() {}

// Hub fans engine output out to subscribers. It implements anim.Sink.
//
// Frames are throttled per topic: when frames arrive faster than the frame
// rate, only the newest pending frame of a topic is kept and it is sent as
// soon as the limiter allows, so the last frame of an animation is never
// lost. Notices are never throttled.
type Hub struct {
	mu     sync.RWMutex
	subs   map[*subscriber]struct{}
	topics map[string]*topicState
	closed bool

	rate     rate.Limit
	log      *zap.Logger
	observer Observer
	handler  Handler
}

type subscriber struct {
	send chan []byte
}

type topicState struct {
	limiter *rate.Limiter
	pending []byte
	timer   *time.Timer
}

// Option configures a Hub.
type Option func(*Hub)

// WithFrameRate caps frames per second per topic. Zero or less disables
// throttling.
func WithFrameRate(fps float64) Option {
	return func(h *Hub) {
		if fps <= 0 {
			h.rate = rate.Inf
			return
		}
		h.rate = rate.Limit(fps)
	}
}

// WithLogger sets the structured logger.
func WithLogger(log *zap.Logger) Option {
	return func(h *Hub) {
		if log != nil {
			h.log = log
		}
	}
}

// WithObserver reports coalesced frames and client counts.
func WithObserver(o Observer) Option {
	return func(h *Hub) {
		if o != nil {
			h.observer = o
		}
	}
}

// WithHandler sets the handler for commands read from websocket clients.
func WithHandler(hd Handler) Option {
	return func(h *Hub) { h.handler = hd }
}

// NewHub returns a hub with no subscribers.
func NewHub(opts ...Option) *Hub {
	h := &Hub{
		subs:     make(map[*subscriber]struct{}),
		topics:   make(map[string]*topicState),
		rate:     rate.Limit(FrameRate),
		log:      zap.NewNop(),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Subscribe registers a receiver of encoded envelopes. Messages that do not
// fit in the buffer are dropped for that subscriber. The returned function
// unsubscribes and closes the channel; it is safe to call more than once.
func (h *Hub) Subscribe(buf int) (<-chan []byte, func()) {
	s := &subscriber{send: make(chan []byte, buf)}
	h.mu.Lock()
	if h.closed {
		close(s.send)
	} else {
		h.subs[s] = struct{}{}
	}
	h.mu.Unlock()

	var once sync.Once
	return s.send, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if _, ok := h.subs[s]; ok {
				delete(h.subs, s)
				close(s.send)
			}
		})
	}
}

// Frame implements anim.Sink.
func (h *Hub) Frame(topic string, snapshot any) {
	msg, ok := h.encode(Envelope{Type: TypeFrame, Topic: topic, Data: snapshot})
	if !ok {
		return
	}
	h.mu.Lock()
	ts := h.topics[topic]
	if ts == nil {
		ts = &topicState{limiter: rate.NewLimiter(h.rate, 1)}
		h.topics[topic] = ts
	}
	if ts.timer == nil && ts.limiter.Allow() {
		h.mu.Unlock()
		h.broadcast(msg)
		return
	}
	if ts.pending != nil {
		h.observer.Coalesced(topic)
	}
	ts.pending = msg
	if ts.timer == nil && !h.closed {
		delay := ts.limiter.Reserve().Delay()
		ts.timer = time.AfterFunc(delay, func() { h.flush(topic) })
	}
	h.mu.Unlock()
}

// flush sends the pending frame of topic.
func (h *Hub) flush(topic string) {
	h.mu.Lock()
	ts := h.topics[topic]
	msg := ts.pending
	ts.pending, ts.timer = nil, nil
	h.mu.Unlock()
	if msg != nil {
		h.broadcast(msg)
	}
}

// Notice implements anim.Sink.
func (h *Hub) Notice(topic string, n anim.Notice) {
	if msg, ok := h.encode(Envelope{Type: TypeNotice, Topic: topic, Data: n}); ok {
		h.broadcast(msg)
	}
}

// Publish sends an arbitrary envelope to every subscriber at once.
func (h *Hub) Publish(env Envelope) {
	if msg, ok := h.encode(env); ok {
		h.broadcast(msg)
	}
}

func (h *Hub) encode(env Envelope) ([]byte, bool) {
	msg, err := json.Marshal(env)
	if err != nil {
		h.log.Warn("cannot encode message", zap.String("type", env.Type), zap.String("topic", env.Topic), zap.Error(err))
		return nil, false
	}
	return msg, true
}

func (h *Hub) broadcast(msg []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.subs {
		select {
		case s.send <- msg:
		default:
			h.log.Debug("subscriber buffer full, message dropped")
		}
	}
}

// Clients returns the number of subscribers.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close stops pending flushes and closes every subscription.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for _, ts := range h.topics {
		if ts.timer != nil {
			ts.timer.Stop()
		}
	}
	for s := range h.subs {
		delete(h.subs, s)
		close(s.send)
	}
}
