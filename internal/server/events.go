package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/chipi-ai/chipi/internal/logging"
)

// Event is one debug event broadcast to /debug/events subscribers. Message
// bodies are never included, only metadata.
type Event struct {
	ID     string    `json:"id"`
	Time   time.Time `json:"time"`
	Kind   string    `json:"kind"`
	Phone  string    `json:"phone,omitempty"`
	Detail string    `json:"detail,omitempty"`
}

// Event kinds emitted by the handlers.
const (
	EventLogin      = "login"
	EventLoginFail  = "login_failed"
	EventRegister   = "register"
	EventMessage    = "message"
	EventAssistant  = "assistant_reply"
	EventValidation = "validation_failed"
)

// eventHub fans events out to connected websocket clients. Slow clients are
// dropped rather than blocking the handlers.
type eventHub struct {
	upgrader websocket.Upgrader

	mu   sync.Mutex
	subs map[*websocket.Conn]chan Event
}

func newEventHub() *eventHub {
	return &eventHub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Debug endpoint on a dev server; any origin may subscribe.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		subs: make(map[*websocket.Conn]chan Event),
	}
}

// Publish broadcasts an event to all subscribers. Non-blocking.
func (h *eventHub) Publish(kind, phone, detail string) {
	ev := Event{
		ID:     uuid.NewString(),
		Time:   time.Now().UTC(),
		Kind:   kind,
		Phone:  phone,
		Detail: detail,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, ch := range h.subs {
		select {
		case ch <- ev:
		default:
			// Subscriber is not keeping up; drop it.
			delete(h.subs, conn)
			close(ch)
		}
	}
}

// ServeHTTP upgrades the request to a websocket and streams events until the
// client disconnects.
func (h *eventHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("event subscriber upgrade failed", zap.Error(err))
		return
	}

	ch := make(chan Event, 32)
	h.mu.Lock()
	h.subs[conn] = ch
	h.mu.Unlock()

	logging.Debug("event subscriber connected", zap.String("remote", conn.RemoteAddr().String()))

	// Reader goroutine: we never expect client frames, but reading is how
	// we notice the peer closing.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	defer func() {
		h.mu.Lock()
		if _, ok := h.subs[conn]; ok {
			delete(h.subs, conn)
			close(ch)
		}
		h.mu.Unlock()
		conn.Close()
	}()

	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
