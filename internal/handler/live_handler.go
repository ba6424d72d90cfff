package handler

import (
	"strings"

	"blog-admin-be/internal/pkg/logger"
	"blog-admin-be/internal/pkg/serverutils"
	internalWS "blog-admin-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type LiveHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewLiveHandler(hub *internalWS.Hub, log logger.ILogger) *LiveHandler {
	return &LiveHandler{
		hub:    hub,
		logger: log,
	}
}

// tokenFrom prefers the query param because browsers cannot set headers on
// a websocket handshake. Tooling can still send a bearer header.
func tokenFrom(c *fiber.Ctx) string {
	if token := c.Query("token"); token != "" {
		return token
	}
	if auth := c.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return auth[7:]
	}
	return ""
}

// ServeWs authenticates the handshake and hands the connection to the hub.
func (h *LiveHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := tokenFrom(c)
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Missing token (Query 'token' or Header 'Authorization')"))
	}

	claims, err := serverutils.ParseToken(tokenStr)
	if err != nil {
		h.logger.Warn("LIVE", "Invalid token in websocket handshake", map[string]interface{}{"error": err.Error()})
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid token"))
	}

	userIDStr, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid user ID format in token"))
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("LIVE", "Starting websocket session", map[string]interface{}{"user_id": userID.String()})
		internalWS.ServeWs(h.hub, conn, userID)
		h.logger.Info("LIVE", "Websocket session ended", map[string]interface{}{"user_id": userID.String()})
	})(c)
}

func (h *LiveHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws/live", h.ServeWs)
}
