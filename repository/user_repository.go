package repository

import (
	"context"

	"gorm.io/gorm"

	"campus-event-chat/entity"
)

type UserRepository struct {
	Repository[entity.User]
}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (repository UserRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (entity.User, error) {
	var user entity.User
	err := db.WithContext(ctx).Where("email = ?", email).Take(&user).Error
	return user, err
}

func (repository UserRepository) ExistsByEmail(ctx context.Context, db *gorm.DB, email string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (repository UserRepository) FindByIDs(ctx context.Context, db *gorm.DB, ids []uint) (map[uint]entity.User, error) {
	users := make(map[uint]entity.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}
	var rows []entity.User
	if err := db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, u := range rows {
		users[u.ID] = u
	}
	return users, nil
}
