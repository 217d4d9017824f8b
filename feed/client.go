// SPDX-License-Identifier: MIT

package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Websocket limits, after the gorilla chat example.
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
	sendBuffer     = 256
)

// Handler executes one command read from a client. reply sends a message
// to that client only and may be called from any goroutine, also after
// Handle has returned.
type Handler interface {
	Handle(ctx context.Context, raw []byte, reply func(v any))
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, raw []byte, reply func(v any))

// Handle implements Handler.
func (f HandlerFunc) Handle(ctx context.Context, raw []byte, reply func(v any)) {
	f(ctx, raw, reply)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// The feed serves a local visualizer; any page may connect.
	CheckOrigin: func(*http.Request) bool { return true },
}

// client is one websocket connection.
type client struct {
	hub     *Hub
	conn    *websocket.Conn
	id      string
	log     *zap.Logger
	replies chan []byte
	done    chan struct{}
}

// ServeWS upgrades the request and streams every hub message to the
// connection. Commands read from it go to the hub's Handler; ctx bounds
// the operations they start.
func (h *Hub) ServeWS(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	c := &client{
		hub:     h,
		conn:    conn,
		id:      uuid.NewString(),
		replies: make(chan []byte, sendBuffer),
		done:    make(chan struct{}),
	}
	c.log = h.log.With(zap.String("client_id", c.id))
	msgs, unsubscribe := h.Subscribe(sendBuffer)
	h.observer.ClientConnected()
	c.log.Debug("client connected", zap.String("remote", r.RemoteAddr))

	go c.writePump(ctx, msgs)
	go func() {
		c.readPump(ctx)
		close(c.done)
		unsubscribe()
		h.observer.ClientDisconnected()
		c.log.Debug("client disconnected")
	}()
}

// readPump reads commands until the connection fails.
func (c *client) readPump(ctx context.Context) {
	defer c.conn.Close()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNoStatusReceived,
			) {
				c.log.Warn("websocket read error", zap.Error(err))
			}
			return
		}
		if c.hub.handler == nil {
			continue
		}
		c.hub.handler.Handle(ctx, raw, c.reply)
	}
}

// reply queues v for this client. Replies for a closed client are dropped.
func (c *client) reply(v any) {
	msg, err := json.Marshal(Envelope{Type: TypeReply, Data: v})
	if err != nil {
		c.log.Warn("cannot encode reply", zap.Error(err))
		return
	}
	select {
	case c.replies <- msg:
	case <-c.done:
	default:
		c.log.Debug("reply buffer full, reply dropped")
	}
}

// writePump is the only writer on the connection.
func (c *client) writePump(ctx context.Context, msgs <-chan []byte) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	write := func(msg []byte) bool {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			c.log.Debug("websocket write error", zap.Error(err))
			return false
		}
		return true
	}

	for {
		select {
		case <-ctx.Done():
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
			return
		case <-c.done:
			return
		case msg, ok := <-msgs:
			if !ok {
				_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if !write(msg) {
				return
			}
		case msg := <-c.replies:
			if !write(msg) {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
