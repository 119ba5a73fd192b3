package res

import "time"

type MessageResponse struct {
	ID         uint      `json:"id"`
	EventID    uint      `json:"event_id"`
	SenderID   uint      `json:"sender_id"`
	ReceiverID uint      `json:"receiver_id"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
	SenderName string    `json:"sender_name"`
}

type ThreadResponse struct {
	Messages []MessageResponse `json:"messages"`
}

type WsErrorResponse struct {
	Msg string `json:"msg"`
}
