package enum

// WsEvent names the realtime events exchanged over /ws.
type WsEvent string

const (
	// client -> server
	WsJoinRoom    WsEvent = "join_room"
	WsSendMessage WsEvent = "send_message"

	// server -> client
	WsRoomHistory  WsEvent = "room_history"
	WsNewMessage   WsEvent = "new_message"
	WsErrorMessage WsEvent = "error_message"
)
