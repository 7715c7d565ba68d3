package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/codebuildervaibhav/segment-scripter/internal/session"
)

// StreamHandler pushes session snapshots over a WebSocket
type StreamHandler struct{}

// NewStreamHandler creates a new stream handler
func NewStreamHandler() *StreamHandler {
	return &StreamHandler{}
}

// Upgrade rejects plain HTTP requests to the stream route
func (h *StreamHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handle sends the current snapshot, then one per state change, until the
// client goes away.
func (h *StreamHandler) Handle(c *websocket.Conn) {
	defer c.Close()

	s, ok := c.Locals(localsSession).(*session.Session)
	if !ok {
		log.Printf("WebSocket connection without session")
		return
	}

	updates, cancel := s.Subscribe()
	defer cancel()

	// Reads only detect the client closing; incoming messages are ignored.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := c.WriteJSON(s.Snapshot()); err != nil {
		log.Printf("WebSocket write error: %v", err)
		return
	}

	for {
		select {
		case snap, ok := <-updates:
			if !ok {
				return
			}
			if err := c.WriteJSON(snap); err != nil {
				log.Printf("WebSocket write error: %v", err)
				return
			}
		case <-closed:
			return
		}
	}
}
