package usecase

import "context"

// ParticipationUsecase answers whether a user may take part in an event's chat:
// the organizer and every registered student may, nobody else.
type ParticipationUsecase interface {
	// CheckParticipant returns nil, apperror.ErrForbidden, or
	// apperror.ErrPersistence when the answer could not be computed.
	CheckParticipant(ctx context.Context, userID, eventID uint) error
	IsParticipant(ctx context.Context, userID, eventID uint) bool
}
