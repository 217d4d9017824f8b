// SPDX-License-Identifier: MIT

package server_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/algoviz/anim"
	"github.com/katalvlaran/algoviz/server"
)

type envelope struct {
	Type  string          `json:"type"`
	Topic string          `json:"topic"`
	Data  json.RawMessage `json:"data"`
}

func get(t *testing.T, url string) string {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestServer_Routes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := server.New(server.Config{FrameRate: -1, Sleep: anim.Instant}, nil)
	defer s.Hub().Close()
	srv := httptest.NewServer(s.Handler(ctx))
	defer srv.Close()

	assert.Equal(t, "ok\n", get(t, srv.URL+"/healthz"))

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return s.Hub().Clients() == 1 }, time.Second, time.Millisecond)

	require.NoError(t, conn.WriteJSON(map[string]any{
		"id": "a", "engine": "sort", "op": "load", "values": []int{3, 1, 2},
	}))

	var reply, frame *envelope
	for reply == nil || frame == nil {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var env envelope
		require.NoError(t, conn.ReadJSON(&env))
		switch env.Type {
		case "reply":
			reply = &env
		case "frame":
			frame = &env
		}
	}
	assert.JSONEq(t, `{"id":"a","ok":true}`, string(reply.Data))
	assert.Equal(t, "sort", frame.Topic)
	assert.Equal(t, []int{3, 1, 2}, s.Engines().Sorter.Values())

	body := get(t, srv.URL+"/metrics")
	assert.Contains(t, body, `algoviz_commands_total{engine="sort",op="load",outcome="ok"} 1`)
	assert.Contains(t, body, `algoviz_frames_total{topic="sort"}`)
	assert.Contains(t, body, "algoviz_feed_clients 1")
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := server.New(server.Config{Addr: "127.0.0.1:0", Sleep: anim.Instant}, nil)

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	var addr string
	select {
	case a := <-s.Ready():
		addr = a.String()
	case <-time.After(2 * time.Second):
		t.Fatal("server did not start")
	}
	assert.Equal(t, "ok\n", get(t, "http://"+addr+"/healthz"))

	// An animation blocked on a paused pacer must not hold up shutdown.
	require.NoError(t, s.Engines().Sorter.Load([]int{2, 1}))
	s.Engines().Pacer.Pause()
	s.Dispatcher().Handle(ctx, []byte(`{"engine":"sort","op":"sort","algorithm":"bubble"}`), func(any) {})
	require.Eventually(t, s.Engines().Sorter.Animating, time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.False(t, s.Engines().Sorter.Animating())
}
