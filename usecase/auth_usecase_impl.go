package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"campus-event-chat/apperror"
	"campus-event-chat/dto/req"
	"campus-event-chat/dto/res"
	"campus-event-chat/entity"
	"campus-event-chat/repository"
	"campus-event-chat/security"
	"campus-event-chat/util"
)

type AuthUsecaseImpl struct {
	*repository.UserRepository
	*validator.Validate
	*gorm.DB
	*logrus.Logger
	*security.JWT
}

func NewAuthUsecase(userRepository *repository.UserRepository, validate *validator.Validate, DB *gorm.DB, logger *logrus.Logger, JWT *security.JWT) AuthUsecase {
	return &AuthUsecaseImpl{UserRepository: userRepository, Validate: validate, DB: DB, Logger: logger, JWT: JWT}
}

func (uc *AuthUsecaseImpl) LoginUser(ctx context.Context, request *req.LoginRequest) (res.LoginResponse, error) {
	request.Email = strings.ToLower(strings.TrimSpace(request.Email))

	// validate request
	if err := validateRequest(uc.Validate, request); err != nil {
		uc.Logger.WithError(err).Warn("invalid login request")
		return res.LoginResponse{}, err
	}

	// find by email
	user, err := uc.UserRepository.FindByEmail(ctx, uc.DB, request.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return res.LoginResponse{}, apperror.Validation("Invalid credentials")
	}
	if err != nil {
		uc.Logger.WithError(err).Errorf("failed to find user by email")
		return res.LoginResponse{}, apperror.Persistence("Server error", err)
	}

	// compare the password
	if err := util.ComparePassword(user.Password, request.Password); err != nil {
		return res.LoginResponse{}, apperror.Validation("Invalid credentials")
	}

	// generate token
	token, err := uc.JWT.GenerateToken(&user)
	if err != nil {
		uc.Logger.WithError(err).Errorf("failed to generate token for user=%d", user.ID)
		return res.LoginResponse{}, err
	}

	return res.LoginResponse{Token: token, Role: user.Role}, nil
}

func (uc *AuthUsecaseImpl) RegisterUser(ctx context.Context, request *req.RegisterRequest) (res.RegisterResponse, error) {
	request.Email = strings.ToLower(strings.TrimSpace(request.Email))
	request.Name = strings.TrimSpace(request.Name)

	// validate request
	if err := validateRequest(uc.Validate, request); err != nil {
		uc.Logger.WithError(err).Warn("invalid register request")
		return res.RegisterResponse{}, err
	}

	// start transaction
	trx := uc.DB.WithContext(ctx).Begin()
	defer trx.Rollback()

	exists, err := uc.UserRepository.ExistsByEmail(ctx, trx, request.Email)
	if err != nil {
		uc.Logger.WithError(err).Error("failed to check email")
		return res.RegisterResponse{}, apperror.Persistence("Server error", err)
	}
	if exists {
		return res.RegisterResponse{}, apperror.New(apperror.ErrConflict, "Email already exists")
	}

	hashPassword, err := util.HashPassword(request.Password)
	if err != nil {
		uc.Logger.WithError(err).Error("failed to hash password")
		return res.RegisterResponse{}, err
	}

	newUser := &entity.User{
		Name:     request.Name,
		Email:    request.Email,
		Password: hashPassword,
		Role:     request.Role,
	}

	// save to db
	if err := uc.UserRepository.Save(ctx, trx, newUser); err != nil {
		uc.Logger.WithError(err).Errorf("failed to save user : %v", err)
		return res.RegisterResponse{}, apperror.Persistence("Server error", err)
	}
	if err := trx.Commit().Error; err != nil {
		uc.Logger.WithError(err).Errorf("failed to commit user : %v", err)
		return res.RegisterResponse{}, apperror.Persistence("Server error", err)
	}

	return res.RegisterResponse{
		ID:    newUser.ID,
		Name:  newUser.Name,
		Email: newUser.Email,
		Role:  newUser.Role,
	}, nil
}
