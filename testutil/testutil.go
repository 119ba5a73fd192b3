// Package testutil sets up an in-memory database and seed data for tests.
package testutil

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"campus-event-chat/config/common"
	"campus-event-chat/entity"
	"campus-event-chat/enum"
)

var dbSeq atomic.Int64

// NewTestDB opens a private in-memory sqlite database with every table migrated.
// The pool is pinned to a single connection; callers must not use the outer
// handle while a transaction on it is open.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=private", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		NamingStrategy: common.NamingStrategy(),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(entity.Models()...))
	return db
}

func NewLogrus() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func SeedUser(t *testing.T, db *gorm.DB, name string, role enum.Role) entity.User {
	t.Helper()
	user := entity.User{
		Name:     name,
		Email:    fmt.Sprintf("%s-%d@campus.test", name, dbSeq.Add(1)),
		Password: "not-a-hash",
		Role:     role,
	}
	require.NoError(t, db.WithContext(context.Background()).Create(&user).Error)
	return user
}

func SeedEvent(t *testing.T, db *gorm.DB, organizerID uint, title string) entity.Event {
	t.Helper()
	event := entity.Event{
		Title:       title,
		Venue:       "Main Hall",
		EventDate:   "2026-11-20",
		EventTime:   "18:00",
		OrganizerID: organizerID,
	}
	require.NoError(t, db.Create(&event).Error)
	return event
}

func SeedRegistration(t *testing.T, db *gorm.DB, eventID, userID uint) {
	t.Helper()
	require.NoError(t, db.Create(&entity.Registration{EventID: eventID, UserID: userID}).Error)
}

// Scenario is one event with an organizer, two registered students and an
// unrelated outsider.
type Scenario struct {
	Organizer entity.User
	Student1  entity.User
	Student2  entity.User
	Outsider  entity.User
	Event     entity.Event
}

func SeedScenario(t *testing.T, db *gorm.DB) Scenario {
	t.Helper()
	s := Scenario{
		Organizer: SeedUser(t, db, "olivia", enum.RoleOrganizer),
		Student1:  SeedUser(t, db, "sam", enum.RoleStudent),
		Student2:  SeedUser(t, db, "sara", enum.RoleStudent),
		Outsider:  SeedUser(t, db, "oscar", enum.RoleStudent),
	}
	s.Event = SeedEvent(t, db, s.Organizer.ID, "Hack Night")
	SeedRegistration(t, db, s.Event.ID, s.Student1.ID)
	SeedRegistration(t, db, s.Event.ID, s.Student2.ID)
	return s
}
