package orderfeed

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	// create fake client
	client := &Client{
		Send: make(chan []byte, 10),
	}

	// register client
	hub.register <- client

	// broadcast a test event
	ev := Event{Type: EventPaid, UserID: "u1", RazorpayOrderID: "order_1", At: time.Now()}
	data, _ := json.Marshal(ev)
	hub.broadcast <- data

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	// unregister client
	hub.unregister <- client
}

func TestHubStopClosesClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{Send: make(chan []byte, 1)}
	hub.register <- client

	hub.Stop()

	select {
	case _, ok := <-client.Send:
		if ok {
			t.Fatal("expected client channel to be closed")
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for channel close")
	}

	// Stop is idempotent
	hub.Stop()

	// Broadcast after stop must not block
	done := make(chan struct{})
	go func() {
		hub.Broadcast([]byte("late"))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("Broadcast blocked after Stop")
	}
}

func TestHubAddRemoveAfterStop(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{Send: make(chan []byte, 1)}
	if !hub.add(client) {
		t.Fatal("add before Stop should succeed")
	}

	hub.Stop()

	// a late connection must be refused, not blocked
	done := make(chan bool, 1)
	go func() {
		done <- hub.add(&Client{Send: make(chan []byte, 1)})
	}()
	select {
	case ok := <-done:
		if ok {
			t.Fatal("add after Stop should report false")
		}
	case <-time.After(1 * time.Second):
		t.Fatal("add blocked after Stop")
	}

	// detaching an already-dropped client must return promptly
	removed := make(chan struct{})
	go func() {
		hub.remove(client)
		close(removed)
	}()
	select {
	case <-removed:
	case <-time.After(1 * time.Second):
		t.Fatal("remove blocked after Stop")
	}
}
