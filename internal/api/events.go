package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event types published after a learner's state changes
const (
	EventProgressUpdated = "progress.updated"
	EventProjectsUpdated = "projects.updated"
	EventLearningAdded   = "learnings.added"
)

const (
	subscriberBuffer = 16
	writeWait        = 10 * time.Second
	pingInterval     = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Event is a change notification for one learner
type Event struct {
	Type      string      `json:"type"`
	LearnerID string      `json:"learnerId"`
	At        time.Time   `json:"at"`
	Data      interface{} `json:"data,omitempty"`
}

// Hub fans learner events out to websocket subscribers
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[chan Event]struct{}
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a listener for learnerID. The returned func
// unsubscribes and closes the channel.
func (h *Hub) Subscribe(learnerID string) (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	if h.subs[learnerID] == nil {
		h.subs[learnerID] = make(map[chan Event]struct{})
	}
	h.subs[learnerID][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[learnerID], ch)
			if len(h.subs[learnerID]) == 0 {
				delete(h.subs, learnerID)
			}
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Publish delivers ev to every subscriber of its learner.
// Slow subscribers drop events rather than block the publisher.
func (h *Hub) Publish(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs[ev.LearnerID] {
		select {
		case ch <- ev:
		default:
			slog.Warn("dropping event for slow subscriber",
				"learner_id", ev.LearnerID,
				"type", ev.Type,
			)
		}
	}
}

// Subscribers returns the number of listeners for learnerID
func (h *Hub) Subscribers(learnerID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[learnerID])
}

func (s *Server) publish(r *http.Request, eventType string, data interface{}) {
	s.events.Publish(Event{
		Type:      eventType,
		LearnerID: LearnerFromContext(r.Context()),
		At:        s.now().UTC(),
		Data:      data,
	})
}

// handleEvents streams the learner's change events over a websocket
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	learnerID := LearnerFromContext(r.Context())

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade to websocket", "error", err)
		return
	}
	defer conn.Close()

	events, unsubscribe := s.events.Subscribe(learnerID)
	defer unsubscribe()

	slog.Info("events websocket connected", "learner_id", learnerID)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Client messages are ignored; reading detects the close.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					slog.Debug("websocket read error", "error", err)
				}
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("events websocket disconnected", "learner_id", learnerID)
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := writeEvent(conn, ev); err != nil {
				slog.Debug("websocket write error", "error", err)
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func writeEvent(conn *websocket.Conn, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, data)
}
