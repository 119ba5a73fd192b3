package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"campus-event-chat/dto/req"
	"campus-event-chat/dto/res"
	"campus-event-chat/usecase"
)

type AuthHandler struct {
	usecase.AuthUsecase
	*logrus.Logger
}

func NewAuthHandler(authUseCase usecase.AuthUsecase, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{AuthUsecase: authUseCase, Logger: logger}
}

func (handler *AuthHandler) RegisterUser(ctx *fiber.Ctx) error {
	// parse request
	payload := new(req.RegisterRequest)
	if err := ctx.BodyParser(payload); err != nil {
		return bodyError(err)
	}
	// get from useCase
	registerResponse, err := handler.AuthUsecase.RegisterUser(ctx.UserContext(), payload)
	if err != nil {
		handler.Logger.WithError(err).Warn("Failed to register new user")
		return err
	}
	// response
	handler.Logger.Infof("Success register user with id: %d", registerResponse.ID)
	return ctx.Status(fiber.StatusCreated).JSON(res.CommonResponse[res.RegisterResponse]{
		Message:    "User registered successfully",
		StatusCode: fiber.StatusCreated,
		Data:       registerResponse,
	})
}

func (handler *AuthHandler) LoginUser(ctx *fiber.Ctx) error {
	// parse request
	payload := new(req.LoginRequest)
	if err := ctx.BodyParser(payload); err != nil {
		return bodyError(err)
	}
	// get from useCase
	loginResponse, err := handler.AuthUsecase.LoginUser(ctx.UserContext(), payload)
	if err != nil {
		handler.Logger.WithError(err).Warn("Failed to login")
		return err
	}
	// response
	return ctx.Status(fiber.StatusOK).JSON(res.CommonResponse[res.LoginResponse]{
		Message:    "Successfully to login",
		StatusCode: fiber.StatusOK,
		Data:       loginResponse,
	})
}
