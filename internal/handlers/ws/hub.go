// file: internal/handlers/ws/hub.go
package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"picnicquest/internal/events"
	"picnicquest/internal/middleware"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust for production
	},
}

const (
	writeWait    = 10 * time.Second
	clientBuffer = 16
	handlerID    = "ws_badge_notifier"
)

// Notification is pushed to a connected client when they earn a badge
type Notification struct {
	Type      string    `json:"type"`
	BadgeID   int64     `json:"badge_id"`
	BadgeName string    `json:"badge_name"`
	Icon      string    `json:"icon"`
	Level     int       `json:"level"`
	Timestamp time.Time `json:"timestamp"`
}

type client struct {
	conn *websocket.Conn
	send chan Notification
}

// Hub pushes badge notifications to connected clients. It subscribes to
// badge.earned events on the bus and fans out to the owning user's
// open connections.
type Hub struct {
	logger  *zap.Logger
	mu      sync.Mutex
	clients map[int64]map[*client]struct{}
}

// NewHub creates a hub and subscribes it to badge events
func NewHub(bus events.EventBus, logger *zap.Logger) (*Hub, error) {
	h := &Hub{
		logger:  logger,
		clients: make(map[int64]map[*client]struct{}),
	}

	handler := events.NewEventHandlerFunc(handlerID, func(ctx context.Context, event events.Event) error {
		earned, ok := event.(*events.BadgeEarnedEvent)
		if !ok {
			return nil
		}
		h.notify(earned)
		return nil
	})

	if err := bus.Subscribe(events.TypeBadgeEarned, handler); err != nil {
		return nil, err
	}
	return h, nil
}

// Serve upgrades the request and streams notifications until the client
// disconnects. The request must already be authenticated.
// GET /api/v1/ws/notifications
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{conn: conn, send: make(chan Notification, clientBuffer)}
	h.register(userID, c)
	h.logger.Info("WebSocket client connected", zap.Int64("user_id", userID))

	go h.writeLoop(userID, c)
	h.readLoop(userID, c)
}

func (h *Hub) register(userID int64, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*client]struct{})
	}
	h.clients[userID][c] = struct{}{}
}

func (h *Hub) unregister(userID int64, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.clients[userID]; ok {
		if _, ok := conns[c]; ok {
			delete(conns, c)
			close(c.send)
			if len(conns) == 0 {
				delete(h.clients, userID)
			}
		}
	}
}

// readLoop drains the connection so close frames are processed
func (h *Hub) readLoop(userID int64, c *client) {
	defer func() {
		h.unregister(userID, c)
		c.conn.Close()
		h.logger.Info("WebSocket client disconnected", zap.Int64("user_id", userID))
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(userID int64, c *client) {
	defer c.conn.Close()
	for notification := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(notification); err != nil {
			h.logger.Warn("WebSocket write failed",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			return
		}
	}
}

func (h *Hub) notify(event *events.BadgeEarnedEvent) {
	userID := event.GetUserID()
	if userID == nil {
		return
	}

	notification := Notification{
		Type:      "badge_earned",
		BadgeID:   event.BadgeID,
		BadgeName: event.BadgeName,
		Icon:      event.Icon,
		Level:     event.Level,
		Timestamp: event.GetTimestamp(),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients[*userID] {
		select {
		case c.send <- notification:
		default:
			// slow client, drop rather than block the bus worker
		}
	}
}
