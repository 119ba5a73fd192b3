package entity

import "time"

// Registration is unique per (event, user); re-registering is a no-op.
type Registration struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	EventID   uint      `json:"event_id" gorm:"not null;uniqueIndex:idx_registration_event_user"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_registration_event_user;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE;"`
}
