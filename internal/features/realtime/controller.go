package realtime

import (
	"vfx-dashboard/internal/common/api"
	"vfx-dashboard/pkg/utils"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type WebSocketController struct {
	Hub    *Hub
	Logger *zap.Logger
}

func NewWebSocketController(hub *Hub, logger *zap.Logger) *WebSocketController {
	return &WebSocketController{Hub: hub, Logger: logger}
}

// Upgrade authenticates the websocket handshake. Browsers cannot set headers
// on websocket requests, so the token travels in the query string.
func (h *WebSocketController) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	claims, err := utils.ValidateToken(c.Query("token"))
	if err != nil {
		return api.Fail(c, fiber.StatusUnauthorized, "Invalid token")
	}
	c.Locals(utils.UserClaimsKey, claims)
	return c.Next()
}

func (h *WebSocketController) HandleWebSocket(c *websocket.Conn) {
	claims, ok := c.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	if !ok {
		_ = c.Close()
		return
	}

	client := h.Hub.Subscribe(claims.Organization)
	defer h.Hub.Unsubscribe(client)

	// Reader: the feed is one way, reads only detect the peer going away
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg, ok := <-client.Messages():
			if !ok {
				_ = c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "too slow"))
				return
			}
			if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.Logger.Debug("websocket write failed", zap.String("user_id", claims.UserID), zap.Error(err))
				return
			}
		case <-done:
			return
		}
	}
}
