// Package orderfeed pushes order lifecycle events to connected admin
// dashboards over websockets. Events arrive via the Redis channel the mq
// package publishes on.
package orderfeed

import (
	"context"
	"log"
	"sync"
)

// Hub fans order events out to every connected admin client.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if h.clients[c] {
				delete(h.clients, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case data := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.Send <- data:
				default:
					close(c.Send)
					delete(h.clients, c)
				}
			}
			h.mu.Unlock()

		case <-h.done:
			h.mu.Lock()
			for c := range h.clients {
				close(c.Send)
				delete(h.clients, c)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Stop shuts the hub down and drops every client.
func (h *Hub) Stop() {
	close(h.done)
}

// Register attaches a client; a no-op once the hub has stopped.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

// Unregister detaches a client; a no-op once the hub has stopped, so late
// connection teardowns never block on a dead run loop.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Broadcast queues an event payload for every connected client.
func (h *Hub) Broadcast(data []byte) {
	select {
	case h.broadcast <- data:
	case <-h.done:
	}
}

// Len reports the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Relay forwards payloads from the Redis order-events subscription into the
// hub until ctx is done. Without Redis the subscription channel closes
// immediately and Relay just returns.
func Relay(ctx context.Context, hub *Hub, events <-chan []byte) {
	for {
		select {
		case payload, ok := <-events:
			if !ok {
				log.Println("order feed relay: event stream closed")
				return
			}
			hub.Broadcast(payload)
		case <-ctx.Done():
			return
		}
	}
}
