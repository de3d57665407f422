package handlers

import (
	"encoding/json"
	"log"
	"strings"
	"sync"

	"github.com/ascend-app/ascend-api/internal/middleware"
	"github.com/ascend-app/ascend-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// Event types sent over WebSocket
const (
	EventPostCreated   = "post_created"
	EventReactionAdded = "reaction_added"
)

// WSEvent is the JSON message sent to connected clients
type WSEvent struct {
	Type   string      `json:"type"`
	Feed   string      `json:"feed"`
	UserID string      `json:"userId"`
	Data   interface{} `json:"data,omitempty"`
}

type connection struct {
	conn   *websocket.Conn
	userID uuid.UUID
}

// Hub manages WebSocket connections per feed scope.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*connection]bool // feed scope -> set of connections
}

var WS = &Hub{
	rooms: make(map[string]map[*connection]bool),
}

func (h *Hub) register(scope string, conn *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[scope] == nil {
		h.rooms[scope] = make(map[*connection]bool)
	}
	h.rooms[scope][conn] = true
	log.Printf("WS register: user %s joined %s feed (total: %d)", conn.userID, scope, len(h.rooms[scope]))
}

func (h *Hub) unregister(scope string, conn *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.rooms[scope]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.rooms, scope)
		}
	}
}

// Broadcast sends an event to every connection on a feed scope except the
// user who triggered it.
func (h *Hub) Broadcast(scope string, excludeUserID uuid.UUID, event WSEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conns, ok := h.rooms[scope]
	if !ok {
		return
	}

	msg, err := json.Marshal(event)
	if err != nil {
		log.Printf("WS broadcast marshal error: %v", err)
		return
	}

	for c := range conns {
		if c.userID == excludeUserID {
			continue
		}
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Printf("WS write error: %v", err)
		}
	}
}

// WebSocketUpgrade validates the upgrade request and its JWT. Tokens arrive
// via ?token= or the Authorization header for non-browser clients.
func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		tokenString := c.Query("token")
		if tokenString == "" {
			authHeader := c.Get("Authorization")
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				tokenString = ""
			}
		}

		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing authentication token",
			})
		}

		claims, err := middleware.ParseToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals("userId", claims.UserID)
		return c.Next()
	}
}

// HandleWebSocket serves one connection subscribed to a feed scope.
func HandleWebSocket(c *websocket.Conn) {
	scope := c.Params("type")
	if scope != models.FeedCircle && scope != models.FeedFollow {
		c.Close()
		return
	}

	userID, ok := c.Locals("userId").(uuid.UUID)
	if !ok {
		c.Close()
		return
	}

	conn := &connection{conn: c, userID: userID}
	WS.register(scope, conn)
	defer WS.unregister(scope, conn)

	// Drain client keepalives until the connection drops
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}
