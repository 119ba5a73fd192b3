package res

import "time"

// ChatResponse is one row of the conversation list. The pointer fields are
// null for an event without any message involving the caller.
type ChatResponse struct {
	EventID       uint       `json:"event_id"`
	EventTitle    string     `json:"event_title"`
	OtherUserID   *uint      `json:"other_user_id"`
	OtherUserName *string    `json:"other_user_name"`
	LastMessage   *string    `json:"last_message"`
	LastAt        *time.Time `json:"last_at"`
}

type ChatListResponse struct {
	Chats []ChatResponse `json:"chats"`
}
