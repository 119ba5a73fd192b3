package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"campus-event-chat/entity"
)

type RegistrationRepository struct {
	Repository[entity.Registration]
}

func NewRegistrationRepository() *RegistrationRepository {
	return &RegistrationRepository{}
}

// Register inserts (eventID, userID) and reports whether a new row was created.
// A duplicate registration is not an error.
func (repository RegistrationRepository) Register(ctx context.Context, db *gorm.DB, eventID, userID uint) (bool, error) {
	registration := entity.Registration{EventID: eventID, UserID: userID}
	result := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&registration)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (repository RegistrationRepository) FindStudentsByEvent(ctx context.Context, db *gorm.DB, eventID uint) ([]entity.User, error) {
	var users []entity.User
	err := db.WithContext(ctx).
		Model(&entity.User{}).
		Joins("JOIN t_registration r ON r.user_id = t_user.id").
		Where("r.event_id = ?", eventID).
		Order("r.id ASC").
		Find(&users).Error
	return users, err
}
