// Package mq publishes order lifecycle events to Redis. The admin live feed
// subscribes on the other end; without Redis every emit is a logged no-op.
package mq

import (
	"context"
	"encoding/json"
	"log"

	"catashop/models"
	"catashop/rdx"
)

// Channel is the Redis pub/sub channel for order events.
const Channel = "order-events"

// Emit publishes an order event. Best-effort: failures are logged and
// swallowed so no caller ever blocks on the feed.
func Emit(event models.OrderEvent) {
	if rdx.Conn == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("mq: marshal %s event: %v", event.Type, err)
		return
	}
	if err := rdx.Conn.Publish(context.Background(), Channel, data).Err(); err != nil {
		log.Printf("mq: publish %s event: %v", event.Type, err)
	}
}

// Subscribe returns a channel of raw event payloads. The caller owns the
// lifetime via ctx.
func Subscribe(ctx context.Context) <-chan []byte {
	out := make(chan []byte)
	if rdx.Conn == nil {
		close(out)
		return out
	}

	sub := rdx.Conn.Subscribe(ctx, Channel)
	go func() {
		defer close(out)
		defer sub.Close()
		for {
			select {
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}
				select {
				case out <- []byte(msg.Payload):
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
