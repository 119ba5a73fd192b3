package usecase

import (
	"context"

	"campus-event-chat/dto/res"
)

type UserUsecase interface {
	GetProfile(ctx context.Context, userID uint) (res.UserResponse, error)
}
