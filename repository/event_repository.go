package repository

import (
	"context"

	"gorm.io/gorm"

	"campus-event-chat/entity"
)

type EventRepository struct {
	Repository[entity.Event]
}

func NewEventRepository() *EventRepository {
	return &EventRepository{}
}

// participantClause matches events where ? is the organizer or a registrant.
const participantClause = "(t_event.organizer_id = ? OR EXISTS (SELECT 1 FROM t_registration r WHERE r.event_id = t_event.id AND r.user_id = ?))"

// IsParticipant is computed from the current tables on every call. A missing
// event simply yields false.
func (repository EventRepository) IsParticipant(ctx context.Context, db *gorm.DB, userID, eventID uint) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&entity.Event{}).
		Where("t_event.id = ?", eventID).
		Where(participantClause, userID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindParticipatingEvents returns every event userID organizes or registered for.
func (repository EventRepository) FindParticipatingEvents(ctx context.Context, db *gorm.DB, userID uint) ([]entity.Event, error) {
	var events []entity.Event
	err := db.WithContext(ctx).
		Model(&entity.Event{}).
		Where(participantClause, userID, userID).
		Order("t_event.id DESC").
		Find(&events).Error
	return events, err
}

func (repository EventRepository) FindByOrganizer(ctx context.Context, db *gorm.DB, organizerID uint) ([]entity.Event, error) {
	var events []entity.Event
	err := db.WithContext(ctx).
		Where("organizer_id = ?", organizerID).
		Order("id DESC").
		Find(&events).Error
	return events, err
}

// FindOthers lists events not organized by userID, organizer preloaded.
func (repository EventRepository) FindOthers(ctx context.Context, db *gorm.DB, userID uint) ([]entity.Event, error) {
	var events []entity.Event
	err := db.WithContext(ctx).
		Preload("Organizer").
		Where("organizer_id <> ?", userID).
		Order("id DESC").
		Find(&events).Error
	return events, err
}

func (repository EventRepository) FindRegisteredByUser(ctx context.Context, db *gorm.DB, userID uint) ([]entity.Event, error) {
	var events []entity.Event
	err := db.WithContext(ctx).
		Preload("Organizer").
		Joins("JOIN t_registration r ON r.event_id = t_event.id").
		Where("r.user_id = ?", userID).
		Order("t_event.id DESC").
		Find(&events).Error
	return events, err
}

// DeleteOwned removes the event with its registrations and messages. It
// returns gorm.ErrRecordNotFound when organizerID does not own eventID.
func (repository EventRepository) DeleteOwned(ctx context.Context, db *gorm.DB, eventID, organizerID uint) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event entity.Event
		err := tx.Where("id = ? AND organizer_id = ?", eventID, organizerID).Take(&event).Error
		if err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", eventID).Delete(&entity.Registration{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", eventID).Delete(&entity.Message{}).Error; err != nil {
			return err
		}
		return repository.Delete(ctx, tx, &event)
	})
}
