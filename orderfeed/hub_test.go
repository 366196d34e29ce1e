package orderfeed

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"catashop/models"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send: make(chan []byte, 10),
	}

	hub.Register(client)

	event := models.OrderEvent{Type: "order-created", ReadableID: "A1B2C3", Total: 4000}
	data, _ := json.Marshal(event)
	hub.Broadcast(data)

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for event")
	}

	hub.Unregister(client)
}

func TestUnregisterAfterStopDoesNotBlock(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{Send: make(chan []byte, 1)}
	hub.Register(client)
	hub.Stop()

	done := make(chan struct{})
	go func() {
		hub.Unregister(client)
		hub.Register(&Client{Send: make(chan []byte, 1)})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("register/unregister blocked on a stopped hub")
	}
}

func TestRelayForwardsUntilClosed(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{Send: make(chan []byte, 10)}
	hub.Register(client)

	events := make(chan []byte, 1)
	done := make(chan struct{})
	go func() {
		Relay(context.Background(), hub, events)
		close(done)
	}()

	events <- []byte(`{"type":"order-sold"}`)

	select {
	case got := <-client.Send:
		if string(got) != `{"type":"order-sold"}` {
			t.Fatalf("unexpected payload %s", got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for relayed event")
	}

	close(events)
	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("relay should stop when the stream closes")
	}
}
