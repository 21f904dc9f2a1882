package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHubClient(h *Hub) *Client {
	return &Client{hub: h, Send: make(chan []byte, 4)}
}

func TestHubBroadcastsToRegisteredClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := newHubClient(hub)
	hub.Register <- client

	hub.Broadcast <- []byte(`{"action":"event"}`)

	select {
	case msg := <-client.Send:
		assert.JSONEq(t, `{"action":"event"}`, string(msg))
	case <-time.After(2 * time.Second):
		t.Fatal("client did not receive broadcast")
	}
}

func TestHubUnregisterClosesSendChannel(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := newHubClient(hub)
	hub.Register <- client
	hub.Unregister <- client

	select {
	case _, open := <-client.Send:
		require.False(t, open, "send channel must be closed on unregister")
	case <-time.After(2 * time.Second):
		t.Fatal("send channel was not closed")
	}
}

func TestHubStopDisconnectsClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := newHubClient(hub)
	hub.Register <- client

	hub.Stop()

	select {
	case _, open := <-client.Send:
		require.False(t, open, "send channel must be closed on hub stop")
	case <-time.After(2 * time.Second):
		t.Fatal("send channel was not closed")
	}
}
