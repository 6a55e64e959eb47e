package feed

import (
	"encoding/json"
	"expvar"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/scamsentry/scamsentry-api/internal/domain/report"
)

// EventType for feed messages
type EventType string

const (
	// EventReportPublished fires when a report becomes publicly
	// visible, either on submission or on admin approval.
	EventReportPublished EventType = "report_published"
)

var (
	feedConnectionsGauge = expvar.NewInt("feed_connections")
	feedEventsSentTotal  = expvar.NewInt("feed_events_sent_total")
	feedEventsDropped    = expvar.NewInt("feed_events_dropped_total")
)

// Event is a single feed message.
type Event struct {
	Type   EventType          `json:"type"`
	Report *report.ScamReport `json:"report,omitempty"`
}

// Connection is one subscribed websocket client.
type Connection struct {
	Conn *websocket.Conn
	Send chan []byte
}

// Hub fans newly published reports out to every connected client.
// Clients are read-only subscribers; a slow client gets dropped events
// rather than blocking the rest.
type Hub struct {
	mu          sync.RWMutex
	connections map[*Connection]bool

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan []byte
	done       chan struct{}
}

// NewHub creates a feed hub. Call Run in a goroutine before serving.
func NewHub() *Hub {
	return &Hub{
		connections: make(map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		broadcast:   make(chan []byte, 64),
		done:        make(chan struct{}),
	}
}

// Run processes registrations and broadcasts until Shutdown.
func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.connections[conn] = true
			h.mu.Unlock()
			feedConnectionsGauge.Add(1)

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.connections[conn]; ok {
				delete(h.connections, conn)
				close(conn.Send)
				feedConnectionsGauge.Add(-1)
			}
			h.mu.Unlock()

		case data := <-h.broadcast:
			h.mu.RLock()
			for conn := range h.connections {
				select {
				case conn.Send <- data:
					feedEventsSentTotal.Add(1)
				default:
					feedEventsDropped.Add(1)
				}
			}
			h.mu.RUnlock()

		case <-h.done:
			h.mu.Lock()
			for conn := range h.connections {
				close(conn.Send)
				delete(h.connections, conn)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Register adds a client to the hub. A registration arriving after
// Shutdown closes the client instead of blocking forever on a run
// loop that already returned.
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.done:
		close(conn.Send)
	}
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// PublishReport broadcasts a newly visible report to all subscribers.
// Implements the report package's Publisher interface.
func (h *Hub) PublishReport(r *report.ScamReport) {
	data, err := json.Marshal(&Event{Type: EventReportPublished, Report: r})
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal feed event")
		return
	}

	select {
	case h.broadcast <- data:
	default:
		feedEventsDropped.Add(1)
		log.Warn().Msg("Feed broadcast queue full, dropping event")
	}
}

// ConnectionCount returns the number of subscribed clients.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// Shutdown disconnects every client and stops the run loop.
func (h *Hub) Shutdown() {
	close(h.done)
}
