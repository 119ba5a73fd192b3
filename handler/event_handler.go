package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"campus-event-chat/dto/req"
	"campus-event-chat/dto/res"
	"campus-event-chat/entity"
	"campus-event-chat/middleware"
	"campus-event-chat/usecase"
)

type EventHandler struct {
	usecase.EventUsecase
	*logrus.Logger
}

func NewEventHandler(eventUsecase usecase.EventUsecase, logger *logrus.Logger) *EventHandler {
	return &EventHandler{EventUsecase: eventUsecase, Logger: logger}
}

func (handler *EventHandler) CreateEvent(ctx *fiber.Ctx) error {
	identity, _ := middleware.CurrentIdentity(ctx)

	payload := new(req.CreateEventRequest)
	if err := ctx.BodyParser(payload); err != nil {
		return bodyError(err)
	}

	event, err := handler.EventUsecase.CreateEvent(ctx.UserContext(), identity.UserID, payload)
	if err != nil {
		return err
	}
	handler.Logger.Infof("Event %d created by organizer %d", event.ID, identity.UserID)
	return ctx.Status(fiber.StatusCreated).JSON(res.CommonResponse[entity.Event]{
		Message:    "Event created",
		StatusCode: fiber.StatusCreated,
		Data:       event,
	})
}

func (handler *EventHandler) ListEvents(ctx *fiber.Ctx) error {
	identity, _ := middleware.CurrentIdentity(ctx)

	events, err := handler.EventUsecase.ListOtherEvents(ctx.UserContext(), identity.UserID)
	if err != nil {
		return err
	}
	return ctx.JSON(res.CommonResponse[[]res.EventResponse]{
		Message:    "Successfully get events",
		StatusCode: fiber.StatusOK,
		Data:       events,
	})
}

func (handler *EventHandler) ListCreatedEvents(ctx *fiber.Ctx) error {
	identity, _ := middleware.CurrentIdentity(ctx)

	events, err := handler.EventUsecase.ListCreatedEvents(ctx.UserContext(), identity.UserID)
	if err != nil {
		return err
	}
	return ctx.JSON(res.CommonResponse[[]entity.Event]{
		Message:    "Successfully get created events",
		StatusCode: fiber.StatusOK,
		Data:       events,
	})
}

func (handler *EventHandler) ListRegisteredEvents(ctx *fiber.Ctx) error {
	identity, _ := middleware.CurrentIdentity(ctx)

	events, err := handler.EventUsecase.ListRegisteredEvents(ctx.UserContext(), identity.UserID)
	if err != nil {
		return err
	}
	return ctx.JSON(res.CommonResponse[[]res.EventResponse]{
		Message:    "Successfully get registered events",
		StatusCode: fiber.StatusOK,
		Data:       events,
	})
}

func (handler *EventHandler) GetEventDetail(ctx *fiber.Ctx) error {
	eventID, err := parseID(ctx, "id")
	if err != nil {
		return err
	}

	detail, err := handler.EventUsecase.GetEventDetail(ctx.UserContext(), eventID)
	if err != nil {
		return err
	}
	return ctx.JSON(res.CommonResponse[res.EventDetailResponse]{
		Message:    "Successfully get event",
		StatusCode: fiber.StatusOK,
		Data:       detail,
	})
}

func (handler *EventHandler) DeleteEvent(ctx *fiber.Ctx) error {
	identity, _ := middleware.CurrentIdentity(ctx)
	eventID, err := parseID(ctx, "id")
	if err != nil {
		return err
	}

	if err := handler.EventUsecase.DeleteEvent(ctx.UserContext(), eventID, identity.UserID); err != nil {
		return err
	}
	return ctx.JSON(res.CommonResponse[any]{
		Message:    "Event deleted successfully",
		StatusCode: fiber.StatusOK,
	})
}

func (handler *EventHandler) RegisterForEvent(ctx *fiber.Ctx) error {
	identity, _ := middleware.CurrentIdentity(ctx)

	payload := new(req.RegisterEventRequest)
	if err := ctx.BodyParser(payload); err != nil {
		return bodyError(err)
	}

	created, err := handler.EventUsecase.RegisterForEvent(ctx.UserContext(), identity.UserID, payload)
	if err != nil {
		return err
	}
	if created {
		handler.Logger.Infof("User %d registered for event %d", identity.UserID, payload.EventID)
	}
	return ctx.JSON(res.CommonResponse[any]{
		Message:    "Registered successfully",
		StatusCode: fiber.StatusOK,
	})
}
