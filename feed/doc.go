// SPDX-License-Identifier: MIT

// Package feed connects the engines to a browser renderer over websockets.
//
// Hub implements anim.Sink: every frame and notice is JSON-encoded once in
// an Envelope and fanned out to all subscribers. Frames are throttled per
// topic with a rate.Limiter and coalesced to the newest one, which is always
// delivered. ServeWS attaches a websocket client to the hub and passes the
// commands it sends to a Handler.
package feed
