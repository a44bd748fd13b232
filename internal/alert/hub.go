// Package alert pushes HIGH-risk notifications to counselors: a websocket
// hub for connected dashboards and an optional MQTT channel for external
// on-call systems.
package alert

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"sosai/internal/domain"
)

type Hub struct {
	upgrader websocket.Upgrader
	logger   *slog.Logger

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			// The dashboard is served from a different origin; access
			// control matches the API's permissive CORS policy.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: logger,
		conns:  make(map[*websocket.Conn]struct{}),
	}
}

// HandleWS upgrades a dashboard connection and keeps it registered until the
// peer goes away. Inbound frames are drained and discarded; the channel is
// push-only.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("alert websocket upgrade failed", "error", err)
		return
	}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	total := len(h.conns)
	h.mu.Unlock()
	h.logger.Info("alert subscriber connected", "subscribers", total)

	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Broadcast sends the alert to every connected subscriber. The mutex is
// held across the writes: the websocket library allows at most one
// concurrent writer per connection, and both analyze handlers call this
// from their own request goroutines. Write failures drop the subscriber;
// delivery is best-effort.
func (h *Hub) Broadcast(a domain.ExpertAlert) {
	frame := expertAlertFrame{Event: "expertAlert", Data: a}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns {
		if err := c.WriteJSON(frame); err != nil {
			h.logger.Warn("alert broadcast failed, dropping subscriber", "error", err)
			delete(h.conns, c)
			c.Close()
		}
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.conns[conn]; ok {
		delete(h.conns, conn)
		conn.Close()
	}
	h.mu.Unlock()
}

func (h *Hub) Close() {
	h.mu.Lock()
	for c := range h.conns {
		c.Close()
	}
	h.conns = make(map[*websocket.Conn]struct{})
	h.mu.Unlock()
}

type expertAlertFrame struct {
	Event string             `json:"event"`
	Data  domain.ExpertAlert `json:"data"`
}
