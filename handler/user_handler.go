package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"campus-event-chat/dto/res"
	"campus-event-chat/middleware"
	"campus-event-chat/usecase"
)

type UserHandler struct {
	usecase.UserUsecase
	*logrus.Logger
}

func NewUserHandler(userUsecase usecase.UserUsecase, logger *logrus.Logger) *UserHandler {
	return &UserHandler{UserUsecase: userUsecase, Logger: logger}
}

func (handler *UserHandler) GetProfile(ctx *fiber.Ctx) error {
	identity, _ := middleware.CurrentIdentity(ctx)

	profile, err := handler.UserUsecase.GetProfile(ctx.UserContext(), identity.UserID)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusOK).JSON(res.CommonResponse[res.UserResponse]{
		Message:    "Successfully get profile",
		StatusCode: fiber.StatusOK,
		Data:       profile,
	})
}
