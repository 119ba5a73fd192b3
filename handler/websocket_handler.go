package handler

import (
	"github.com/gofiber/contrib/websocket"

	"campus-event-chat/config/logger"
	"campus-event-chat/middleware"
	"campus-event-chat/realtime"
)

type WebSocketHandler struct {
	*realtime.Router
	Log        *logger.AppLogger
	SendBuffer int
}

func NewWebSocketHandler(router *realtime.Router, log *logger.AppLogger, sendBuffer int) *WebSocketHandler {
	return &WebSocketHandler{Router: router, Log: log, SendBuffer: sendBuffer}
}

// HandleWebSocket runs one authenticated connection until it closes. The
// handshake was already verified by middleware.WebSocketUpgrade.
func (handler *WebSocketHandler) HandleWebSocket(c *websocket.Conn) {
	identity, ok := middleware.SocketIdentity(c)
	if !ok {
		handler.Log.WS.Warning.Warn().Msg("websocket without identity, closing")
		_ = c.Close()
		return
	}

	session := realtime.NewSession(c, identity, handler.SendBuffer, handler.Log.WS.Stream)
	handler.Router.Serve(session, c)
}
