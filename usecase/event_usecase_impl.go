package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"campus-event-chat/apperror"
	"campus-event-chat/dto/req"
	"campus-event-chat/dto/res"
	"campus-event-chat/entity"
	"campus-event-chat/repository"
)

type EventUsecaseImpl struct {
	*repository.EventRepository
	*repository.RegistrationRepository
	*repository.NotificationRepository
	*repository.UserRepository
	*validator.Validate
	*gorm.DB
	*logrus.Logger
}

func NewEventUsecase(
	eventRepository *repository.EventRepository,
	registrationRepository *repository.RegistrationRepository,
	notificationRepository *repository.NotificationRepository,
	userRepository *repository.UserRepository,
	validate *validator.Validate,
	DB *gorm.DB,
	logger *logrus.Logger,
) EventUsecase {
	return &EventUsecaseImpl{
		EventRepository:        eventRepository,
		RegistrationRepository: registrationRepository,
		NotificationRepository: notificationRepository,
		UserRepository:         userRepository,
		Validate:               validate,
		DB:                     DB,
		Logger:                 logger,
	}
}

func (uc *EventUsecaseImpl) CreateEvent(ctx context.Context, organizerID uint, request *req.CreateEventRequest) (entity.Event, error) {
	request.Title = strings.TrimSpace(request.Title)

	if err := validateRequest(uc.Validate, request); err != nil {
		uc.Logger.WithError(err).Warn("invalid create event request")
		return entity.Event{}, err
	}

	event := entity.Event{
		Title:       request.Title,
		Description: request.Description,
		Image:       request.Image,
		Venue:       request.Venue,
		EventDate:   request.EventDate,
		EventTime:   request.EventTime,
		OrganizerID: organizerID,
	}
	if err := uc.EventRepository.Save(ctx, uc.DB, &event); err != nil {
		uc.Logger.WithError(err).Errorf("failed to save event for organizer=%d", organizerID)
		return entity.Event{}, apperror.Persistence("Server error", err)
	}
	return event, nil
}

func (uc *EventUsecaseImpl) ListOtherEvents(ctx context.Context, userID uint) ([]res.EventResponse, error) {
	events, err := uc.EventRepository.FindOthers(ctx, uc.DB, userID)
	if err != nil {
		uc.Logger.WithError(err).Error("failed to list events")
		return nil, apperror.Persistence("Server error", err)
	}
	return toEventResponses(events), nil
}

func (uc *EventUsecaseImpl) ListCreatedEvents(ctx context.Context, organizerID uint) ([]entity.Event, error) {
	events, err := uc.EventRepository.FindByOrganizer(ctx, uc.DB, organizerID)
	if err != nil {
		uc.Logger.WithError(err).Errorf("failed to list events created by %d", organizerID)
		return nil, apperror.Persistence("Server error", err)
	}
	return events, nil
}

func (uc *EventUsecaseImpl) ListRegisteredEvents(ctx context.Context, userID uint) ([]res.EventResponse, error) {
	events, err := uc.EventRepository.FindRegisteredByUser(ctx, uc.DB, userID)
	if err != nil {
		uc.Logger.WithError(err).Errorf("failed to list registrations of %d", userID)
		return nil, apperror.Persistence("Server error", err)
	}
	return toEventResponses(events), nil
}

func (uc *EventUsecaseImpl) GetEventDetail(ctx context.Context, eventID uint) (res.EventDetailResponse, error) {
	var event entity.Event
	err := uc.EventRepository.FindById(ctx, uc.DB, &event, eventID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return res.EventDetailResponse{}, apperror.NotFound("Event not found")
	}
	if err != nil {
		uc.Logger.WithError(err).Errorf("failed to load event %d", eventID)
		return res.EventDetailResponse{}, apperror.Persistence("Server error", err)
	}

	students, err := uc.RegistrationRepository.FindStudentsByEvent(ctx, uc.DB, eventID)
	if err != nil {
		uc.Logger.WithError(err).Errorf("failed to load registrations of event %d", eventID)
		return res.EventDetailResponse{}, apperror.Persistence("Server error", err)
	}

	detail := res.EventDetailResponse{Event: event, RegisteredStudents: make([]res.UserResponse, 0, len(students))}
	for _, s := range students {
		detail.RegisteredStudents = append(detail.RegisteredStudents, res.UserResponse{ID: s.ID, Name: s.Name, Email: s.Email})
	}
	return detail, nil
}

func (uc *EventUsecaseImpl) DeleteEvent(ctx context.Context, eventID, organizerID uint) error {
	err := uc.EventRepository.DeleteOwned(ctx, uc.DB, eventID, organizerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.Forbidden("You are not authorized to delete this event or it does not exist.")
	}
	if err != nil {
		uc.Logger.WithError(err).Errorf("failed to delete event %d", eventID)
		return apperror.Persistence("Server error", err)
	}
	uc.Logger.Infof("event %d deleted by organizer %d", eventID, organizerID)
	return nil
}

func (uc *EventUsecaseImpl) RegisterForEvent(ctx context.Context, userID uint, request *req.RegisterEventRequest) (bool, error) {
	if err := validateRequest(uc.Validate, request); err != nil {
		return false, err
	}

	// start transaction
	trx := uc.DB.WithContext(ctx).Begin()
	defer trx.Rollback()

	var event entity.Event
	err := uc.EventRepository.FindById(ctx, trx, &event, request.EventID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, apperror.NotFound("Event not found")
	}
	if err != nil {
		uc.Logger.WithError(err).Errorf("failed to load event %d", request.EventID)
		return false, apperror.Persistence("Server error", err)
	}

	created, err := uc.RegistrationRepository.Register(ctx, trx, event.ID, userID)
	if err != nil {
		uc.Logger.WithError(err).Errorf("failed to register user=%d event=%d", userID, event.ID)
		return false, apperror.Persistence("Server error", err)
	}

	if created {
		var student entity.User
		if err := uc.UserRepository.FindById(ctx, trx, &student, userID); err != nil {
			uc.Logger.WithError(err).Errorf("failed to load registering user %d", userID)
			return false, apperror.Persistence("Server error", err)
		}
		notification := entity.Notification{
			UserID:  event.OrganizerID,
			Message: fmt.Sprintf("%s registered for %s", student.Name, event.Title),
		}
		if err := uc.NotificationRepository.Save(ctx, trx, &notification); err != nil {
			uc.Logger.WithError(err).Error("failed to save registration notification")
			return false, apperror.Persistence("Server error", err)
		}
	}

	if err := trx.Commit().Error; err != nil {
		uc.Logger.WithError(err).Error("failed to commit registration")
		return false, apperror.Persistence("Server error", err)
	}
	return created, nil
}

func toEventResponses(events []entity.Event) []res.EventResponse {
	responses := make([]res.EventResponse, 0, len(events))
	for _, e := range events {
		responses = append(responses, res.EventResponse{Event: e, OrganizerName: e.Organizer.Name})
	}
	return responses
}
