package server

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestEventHub_PublishReachesSubscriber(t *testing.T) {
	hub := newEventHub()
	ts := httptest.NewServer(hub)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	// Give the server a moment to register the subscriber
	deadline := time.Now().Add(time.Second)
	for {
		hub.mu.Lock()
		n := len(hub.subs)
		hub.mu.Unlock()
		if n == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("subscriber never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	hub.Publish(EventLogin, "3001234567", "")

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev Event
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}

	if ev.Kind != EventLogin {
		t.Errorf("ev.Kind = %q, want %q", ev.Kind, EventLogin)
	}
	if ev.Phone != "3001234567" {
		t.Errorf("ev.Phone = %q, want %q", ev.Phone, "3001234567")
	}
	if ev.ID == "" {
		t.Error("ev.ID is empty")
	}
}

func TestEventHub_PublishWithoutSubscribers(t *testing.T) {
	hub := newEventHub()

	// Must not block or panic
	hub.Publish(EventMessage, "3001234567", "")
}
