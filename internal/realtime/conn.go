package realtime

import (
	"context"
	"time"

	"github.com/Eursukkul/menulink/pkg/logger"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMessage = 512
)

// Serve pumps client's messages to the upgraded connection and blocks until
// the client goes away. The client must be registered before the upgrade.
func (h *Hub) Serve(ctx context.Context, conn *websocket.Conn, client *Client) {
	log := logger.Ctx(ctx).With(zap.Uint("restaurant_id", client.RestaurantID), zap.String("client_id", client.ClientID))
	log.Debug("realtime client connected")

	done := make(chan struct{})
	go func() {
		defer close(done)
		readPump(conn)
	}()
	writePump(conn, client, done)

	// The hub may already have dropped the client; Unregister is a no-op then.
	h.Unregister(client)
	_ = conn.Close()
	log.Debug("realtime client disconnected")
}

// readPump discards client frames and keeps the pong deadline fresh. It
// returns when the connection fails.
func readPump(conn *websocket.Conn) {
	conn.SetReadLimit(maxMessage)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writePump(conn *websocket.Conn, client *Client, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case body, ok := <-client.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, body); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
