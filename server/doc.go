// SPDX-License-Identifier: MIT

// Package server exposes every visualization engine over one websocket.
//
// Clients receive frame and notice envelopes from the feed hub and send
// JSON commands such as
//
//	{"id":"1","engine":"rbtree","op":"insert","value":5}
//	{"engine":"anim","op":"pause"}
//	{"engine":"graph","op":"bfs","node":"n1"}
//	{"engine":"sort","op":"sort","algorithm":"merge"}
//
// Each command gets exactly one reply envelope. Animated operations reply
// when they finish or are stopped; rejected commands carry the error and
// any hint. Prometheus metrics are served at /metrics.
package server
