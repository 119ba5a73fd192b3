package entity

import "campus-event-chat/enum"

type User struct {
	BaseEntity
	Name     string    `json:"name" gorm:"type:varchar(255);not null"`
	Email    string    `json:"email" gorm:"uniqueIndex;type:varchar(100);not null"`
	Password string    `json:"-" gorm:"type:varchar(255);not null"`
	Role     enum.Role `json:"role" gorm:"type:varchar(20);not null"`
}
