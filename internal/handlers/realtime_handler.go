package handlers

import (
	"net/http"

	"github.com/gobook-app/backend/internal/realtime"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var validChannels = map[string]bool{
	"friends":       true,
	"posts":         true,
	"notifications": true,
}

// RealtimeHandler bridges the in-process topic hub to WebSocket clients.
type RealtimeHandler struct {
	hub      *realtime.Hub
	log      *zap.Logger
	upgrader websocket.Upgrader
}

// NewRealtimeHandler creates a new RealtimeHandler
func NewRealtimeHandler(hub *realtime.Hub, log *zap.Logger) *RealtimeHandler {
	return &RealtimeHandler{
		hub: hub,
		log: log,
		upgrader: websocket.Upgrader{
			// Browser clients connect cross-origin in development.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// RegisterRealtimeRoutes registers the WebSocket subscribe endpoint
func (h *RealtimeHandler) RegisterRealtimeRoutes(e *echo.Echo) {
	e.GET("/ws/:channel/:id", h.Subscribe)
}

// Subscribe upgrades the connection and streams every message published on the
// topic until the client disconnects. Offline clients receive nothing
// retroactively; they reconstruct state via the list endpoints.
func (h *RealtimeHandler) Subscribe(c echo.Context) error {
	channel := c.Param("channel")
	if !validChannels[channel] {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown channel")
	}
	topic := channel + "/" + c.Param("id")

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.String("topic", topic), zap.Error(err))
		return err
	}
	defer conn.Close()

	sub := h.hub.Subscribe(topic)
	defer h.hub.Unsubscribe(sub)
	h.log.Debug("subscriber connected", zap.String("topic", topic))

	// Reads are discarded; the socket is publish-only. The read loop exists to
	// detect the client going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return nil
		case msg, ok := <-sub.C():
			if !ok {
				return nil
			}
			if err := conn.WriteJSON(msg); err != nil {
				h.log.Debug("subscriber write failed", zap.String("topic", topic), zap.Error(err))
				return nil
			}
		}
	}
}
