package usecase

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"campus-event-chat/apperror"
	"campus-event-chat/config/logger"
	"campus-event-chat/dto/res"
	"campus-event-chat/entity"
	"campus-event-chat/repository"
)

type UserUsecaseImpl struct {
	*repository.UserRepository
	*gorm.DB
	Log *logger.AppLogger
}

func NewUserUsecase(userRepository *repository.UserRepository, DB *gorm.DB, log *logger.AppLogger) UserUsecase {
	return &UserUsecaseImpl{UserRepository: userRepository, DB: DB, Log: log}
}

func (uc *UserUsecaseImpl) GetProfile(ctx context.Context, userID uint) (res.UserResponse, error) {
	var user entity.User
	err := uc.UserRepository.FindById(ctx, uc.DB, &user, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return res.UserResponse{}, apperror.NotFound("User not found")
	}
	if err != nil {
		uc.Log.Http.Error.Err(err).Uint("user_id", userID).Msg("failed to load profile")
		return res.UserResponse{}, apperror.Persistence("Server error", err)
	}

	uc.Log.Http.Trace.Debug().Uint("user_id", userID).Msg("profile loaded")
	return res.UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}, nil
}
