// SPDX-License-Identifier: MIT

// Package metrics counts what the engines show and what the server is asked
// to do, and exposes the counts to prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/algoviz/anim"
)

// Outcome labels for Metrics.Command.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeStopped  = "stopped"
)

// Metrics holds the collectors. Each instance has its own registry so tests
// and multiple servers never collide.
type Metrics struct {
	reg *prometheus.Registry

	frames    *prometheus.CounterVec
	notices   *prometheus.CounterVec
	commands  *prometheus.CounterVec
	coalesced *prometheus.CounterVec
	clients   prometheus.Gauge
}

// New creates and registers all collectors, plus the Go runtime collectors.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		frames: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "algoviz_frames_total",
				Help: "Number of snapshots published by the engines",
			},
			[]string{"topic"},
		),
		notices: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "algoviz_notices_total",
				Help: "Number of notices published by the engines",
			},
			[]string{"topic", "level"},
		),
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "algoviz_commands_total",
				Help: "Number of commands handled, by engine, operation and outcome",
			},
			[]string{"engine", "op", "outcome"},
		),
		coalesced: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "algoviz_frames_coalesced_total",
				Help: "Number of frames replaced by a newer one before being sent",
			},
			[]string{"topic"},
		),
		clients: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "algoviz_feed_clients",
				Help: "Number of connected websocket clients",
			},
		),
	}
	m.reg.MustRegister(
		m.frames, m.notices, m.commands, m.coalesced, m.clients,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// Registry exposes the registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Command counts one handled command.
func (m *Metrics) Command(engine, op, outcome string) {
	m.commands.WithLabelValues(engine, op, outcome).Inc()
}

// Coalesced counts a frame dropped in favor of a newer one.
func (m *Metrics) Coalesced(topic string) {
	m.coalesced.WithLabelValues(topic).Inc()
}

// ClientConnected and ClientDisconnected track the websocket client count.
func (m *Metrics) ClientConnected()    { m.clients.Inc() }
func (m *Metrics) ClientDisconnected() { m.clients.Dec() }

// Sink wraps next so every frame and notice passing through is counted.
func (m *Metrics) Sink(next anim.Sink) anim.Sink {
	if next == nil {
		next = anim.Discard
	}
	return &sink{m: m, next: next}
}

type sink struct {
	m    *Metrics
	next anim.Sink
}

func (s *sink) Frame(topic string, snapshot any) {
	s.m.frames.WithLabelValues(topic).Inc()
	s.next.Frame(topic, snapshot)
}

func (s *sink) Notice(topic string, n anim.Notice) {
	s.m.notices.WithLabelValues(topic, string(n.Level)).Inc()
	s.next.Notice(topic, n)
}
