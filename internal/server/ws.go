package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/handpong/internal/log"
)

const (
	clientBuffer = 16
	writeTimeout = 2 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

type client struct {
	send chan []byte
}

// Hub fans published snapshots out to websocket clients. New clients get
// the latest snapshot first. A client that falls behind misses frames.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	latest  []byte

	closed    chan struct{}
	closeOnce sync.Once
	logger    *slog.Logger
}

// NewHub creates an empty Hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		closed:  make(chan struct{}),
		logger:  log.Or(logger),
	}
}

// Publish encodes v as JSON, keeps it as the latest snapshot and queues it
// for every client.
func (h *Hub) Publish(v any) error {
	msg, err := json.Marshal(v)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.latest = msg
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
		}
	}
	h.mu.Unlock()
	return nil
}

// Latest returns the most recent snapshot, or nil before the first Publish.
func (h *Hub) Latest() []byte {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest
}

// Clients returns the number of connected websocket clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client. Later connections are refused.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.closed) })
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	select {
	case <-h.closed:
		http.Error(w, "Server shutting down", http.StatusServiceUnavailable)
		return
	default:
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	c := &client{send: make(chan []byte, clientBuffer)}

	h.mu.Lock()
	if h.latest != nil {
		c.send <- h.latest
	}
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, c)
		h.mu.Unlock()
	}()

	// Reads only detect the peer going away.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg := <-c.send:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.logger.Debug("websocket write failed", "error", err)
				return
			}
		case <-gone:
			return
		case <-h.closed:
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
				time.Now().Add(writeTimeout))
			return
		}
	}
}
