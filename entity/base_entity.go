package entity

import (
	"time"
)

type BaseEntity struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Models lists every table the application migrates.
func Models() []interface{} {
	return []interface{}{
		&User{},
		&Event{},
		&Registration{},
		&Message{},
		&Notification{},
	}
}
