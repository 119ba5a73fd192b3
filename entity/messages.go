package entity

import "time"

// Message is immutable once stored. ID is assigned by the database and grows
// with commit order; CreatedAt is set by the message store.
type Message struct {
	ID         uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	EventID    uint      `json:"event_id" gorm:"not null;index:idx_message_event_created,priority:1"`
	SenderID   uint      `json:"sender_id" gorm:"not null;index"`
	ReceiverID uint      `json:"receiver_id" gorm:"not null;index"`
	Message    string    `json:"message" gorm:"type:text;not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"not null;index:idx_message_event_created,priority:2"`

	Sender User `json:"-" gorm:"foreignKey:SenderID;references:ID"`
}
