package req

import "campus-event-chat/enum"

type RegisterRequest struct {
	Name     string    `json:"name" validate:"required,min=2,max=255"`
	Email    string    `json:"email" validate:"required,email,max=100"`
	Password string    `json:"password" validate:"required,min=6"`
	Role     enum.Role `json:"role" validate:"required,oneof=student organizer"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
