package res

import "campus-event-chat/enum"

type UserResponse struct {
	ID    uint      `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  enum.Role `json:"role,omitempty"`
}

type RegisterResponse struct {
	ID    uint      `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  enum.Role `json:"role"`
}

type LoginResponse struct {
	Token string    `json:"token"`
	Role  enum.Role `json:"role"`
}
