package handler

import (
	"net/http"

	"github.com/Eursukkul/menulink/internal/middleware"
	"github.com/Eursukkul/menulink/internal/realtime"
	"github.com/Eursukkul/menulink/pkg/logger"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Dashboards are served from another origin and authenticate with a token,
// so the origin header is not checked.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

type RealtimeHandler struct {
	hub *realtime.Hub
}

func NewRealtimeHandler(hub *realtime.Hub) *RealtimeHandler {
	return &RealtimeHandler{hub: hub}
}

func (h *RealtimeHandler) RegisterRoutes(owned *echo.Group) {
	owned.GET("/realtime", h.Subscribe)
}

// Subscribe upgrades to a websocket that streams the restaurant's reservation
// events. client_id should match the X-Client-ID the same tab sends on writes
// so its own changes are not echoed back.
func (h *RealtimeHandler) Subscribe(c echo.Context) error {
	clientID := c.QueryParam("client_id")
	if clientID == "" {
		clientID = uuid.NewString()
	}
	client := realtime.NewClient(middleware.Restaurant(c).ID, clientID)
	h.hub.Register(client)

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.hub.Unregister(client)
		logger.Ctx(c.Request().Context()).Warn("websocket upgrade failed", zap.Error(err))
		return nil
	}
	h.hub.Serve(c.Request().Context(), conn, client)
	return nil
}
