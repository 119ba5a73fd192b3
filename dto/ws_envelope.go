package dto

import (
	"encoding/json"

	"campus-event-chat/enum"
)

// InboundEvent is what a client writes on /ws, e.g.
// {"event":"join_room","data":{"eventId":3}}.
type InboundEvent struct {
	Event enum.WsEvent    `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// OutboundEvent is every server push on /ws.
type OutboundEvent struct {
	Event enum.WsEvent `json:"event"`
	Data  interface{}  `json:"data"`
}
