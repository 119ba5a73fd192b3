package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"

	"campus-event-chat/apperror"
	"campus-event-chat/dto/res"
)

var statusByKind = []struct {
	kind   error
	status int
}{
	{apperror.ErrMissingCredential, fiber.StatusUnauthorized},
	{apperror.ErrInvalidCredential, fiber.StatusForbidden},
	{apperror.ErrForbidden, fiber.StatusForbidden},
	{apperror.ErrValidation, fiber.StatusBadRequest},
	{apperror.ErrNotFound, fiber.StatusNotFound},
	{apperror.ErrConflict, fiber.StatusConflict},
}

// NewErrorHandler renders every error returned by a handler or middleware as a
// res.ErrorResponse.
func NewErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "internal server error"

		var fiberErr *fiber.Error
		var appErr *apperror.Error
		switch {
		case errors.As(err, &fiberErr):
			status, message = fiberErr.Code, fiberErr.Message
		case errors.As(err, &appErr):
			message = appErr.Message
			for _, m := range statusByKind {
				if errors.Is(appErr.Kind, m.kind) {
					status = m.status
					break
				}
			}
		}

		if status >= fiber.StatusInternalServerError {
			log.WithError(err).Errorf("%s %s failed", ctx.Method(), ctx.Path())
		}
		return ctx.Status(status).JSON(res.ErrorResponse{
			Status:     utils.StatusMessage(status),
			StatusCode: status,
			Error:      message,
		})
	}
}

func parseID(ctx *fiber.Ctx, name string) (uint, error) {
	id, err := ctx.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, apperror.Validation("Invalid " + name)
	}
	return uint(id), nil
}

func bodyError(err error) error {
	return apperror.Wrap(apperror.ErrValidation, "Invalid request body", err)
}
