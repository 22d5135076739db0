package orderfeed

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"dotshop/rdx"
)

const eventChannel = "order-events"

const (
	EventCreated = "order.created"
	EventPaid    = "order.paid"
	EventStatus  = "order.status"
)

// Event describes one order lifecycle change.
type Event struct {
	Type            string    `json:"type"`
	UserID          string    `json:"userid,omitempty"`
	RazorpayOrderID string    `json:"razorpayOrderId,omitempty"`
	OrderIDs        []string  `json:"orderIds,omitempty"`
	Status          string    `json:"status,omitempty"`
	At              time.Time `json:"at"`
}

// Publish pushes an event onto the redis channel. Best-effort; a feed miss
// never fails the request that produced it.
func Publish(evt Event) {
	if evt.At.IsZero() {
		evt.At = time.Now()
	}
	data, err := json.Marshal(evt)
	if err != nil {
		log.Printf("orderfeed: marshal error: %v", err)
		return
	}
	if err := rdx.RdxPublish(eventChannel, data); err != nil {
		log.Printf("orderfeed: publish error: %v", err)
	}
}

// StartWorker subscribes to the redis channel and forwards every event to
// the hub. Run in its own goroutine.
func StartWorker(hub *Hub) {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, eventChannel)
	ch := sub.Channel()

	log.Println("[orderfeed] listening for order events")

	for msg := range ch {
		hub.Broadcast([]byte(msg.Payload))
	}
}
