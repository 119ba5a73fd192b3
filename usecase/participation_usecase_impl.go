package usecase

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"campus-event-chat/apperror"
	"campus-event-chat/repository"
)

type ParticipationUsecaseImpl struct {
	*repository.EventRepository
	*gorm.DB
	*logrus.Logger
}

func NewParticipationUsecase(eventRepository *repository.EventRepository, DB *gorm.DB, logger *logrus.Logger) ParticipationUsecase {
	return &ParticipationUsecaseImpl{EventRepository: eventRepository, DB: DB, Logger: logger}
}

func (uc *ParticipationUsecaseImpl) CheckParticipant(ctx context.Context, userID, eventID uint) error {
	ok, err := uc.EventRepository.IsParticipant(ctx, uc.DB, userID, eventID)
	if err != nil {
		uc.Logger.WithError(err).Errorf("failed to check participation user=%d event=%d", userID, eventID)
		return apperror.Persistence("Could not verify participation", err)
	}
	if !ok {
		return apperror.Forbidden("Not allowed")
	}
	return nil
}

// IsParticipant fails closed: a storage error counts as "no".
func (uc *ParticipationUsecaseImpl) IsParticipant(ctx context.Context, userID, eventID uint) bool {
	return uc.CheckParticipant(ctx, userID, eventID) == nil
}
