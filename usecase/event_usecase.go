package usecase

import (
	"context"

	"campus-event-chat/dto/req"
	"campus-event-chat/dto/res"
	"campus-event-chat/entity"
)

type EventUsecase interface {
	CreateEvent(ctx context.Context, organizerID uint, request *req.CreateEventRequest) (entity.Event, error)
	ListOtherEvents(ctx context.Context, userID uint) ([]res.EventResponse, error)
	ListCreatedEvents(ctx context.Context, organizerID uint) ([]entity.Event, error)
	ListRegisteredEvents(ctx context.Context, userID uint) ([]res.EventResponse, error)
	GetEventDetail(ctx context.Context, eventID uint) (res.EventDetailResponse, error)
	DeleteEvent(ctx context.Context, eventID, organizerID uint) error
	// RegisterForEvent is idempotent. It reports whether this call created
	// the registration; only then is the organizer notified.
	RegisterForEvent(ctx context.Context, userID uint, request *req.RegisterEventRequest) (bool, error)
}
