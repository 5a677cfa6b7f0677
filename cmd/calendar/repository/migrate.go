package repository

import (
	"calendar-backend/cmd/calendar/model"

	"gorm.io/gorm"
)

// Migrate creates or updates the events and event_members tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.Event{}, &model.EventMember{})
}
