package repository

import (
	"calendar-backend/cmd/calendar/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) *EventRepo {
	return &EventRepo{
		db: db,
	}
}

func (r *EventRepo) live(ctx context.Context, ownerID string) *gorm.DB {
	return conn(ctx, r.db).
		Model(&model.Event{}).
		Where("owner_id = ? AND is_active = ? AND is_deleted = ?", ownerID, true, false)
}

func (r *EventRepo) find(q *gorm.DB) ([]model.Event, error) {

	var events []model.Event

	result := q.
		Order("start_time").
		Find(&events)

	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (r *EventRepo) ListEvents(ctx context.Context, ownerID string) ([]model.Event, error) {
	return r.find(r.live(ctx, ownerID))
}

func (r *EventRepo) ListRunningEvents(ctx context.Context, ownerID string, day time.Time) ([]model.Event, error) {
	return r.find(
		r.live(ctx, ownerID).
			Where("start_time <= ? AND end_time >= ?", day, day),
	)
}

func (r *EventRepo) ListUpcomingEvents(ctx context.Context, ownerID string, day time.Time) ([]model.Event, error) {
	return r.find(
		r.live(ctx, ownerID).
			Where("start_time > ?", day),
	)
}

func (r *EventRepo) ListCompletedEvents(ctx context.Context, ownerID string, day time.Time) ([]model.Event, error) {
	return r.find(
		r.live(ctx, ownerID).
			Where("end_time < ?", day),
	)
}

// ListEventsStartingBetween returns live events with from <= start_time < to.
func (r *EventRepo) ListEventsStartingBetween(ctx context.Context, ownerID string, from, to time.Time) ([]model.Event, error) {
	return r.find(
		r.live(ctx, ownerID).
			Where("start_time >= ? AND start_time < ?", from, to),
	)
}

// CountOverlapping counts live events of the owner intersecting [start, end).
// An empty excludeID compares against every event.
func (r *EventRepo) CountOverlapping(ctx context.Context, ownerID string, start, end time.Time, excludeID string) (int64, error) {

	q := r.live(ctx, ownerID).
		Where("start_time < ? AND end_time > ?", end, start)

	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64

	result := q.Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (r *EventRepo) GetEvent(ctx context.Context, ownerID, id string) (model.Event, error) {

	var event model.Event

	result := conn(ctx, r.db).
		Where("id = ? AND owner_id = ? AND is_deleted = ?", id, ownerID, false).
		First(&event)

	if result.Error != nil {
		return model.Event{}, result.Error
	}

	return event, nil
}

func (r *EventRepo) CreateEvent(ctx context.Context, event model.Event) error {

	result := conn(ctx, r.db).
		Model(&event).
		Create(&event)

	if result.Error != nil {
		return result.Error
	}

	return nil

}

func (r *EventRepo) UpdateEvent(ctx context.Context, event model.Event) error {

	result := conn(ctx, r.db).
		Model(&model.Event{}).
		Where("id = ? AND owner_id = ? AND is_deleted = ?", event.ID, event.OwnerID, false).
		Updates(map[string]any{
			"title":       event.Title,
			"head":        event.Head,
			"importance":  event.Importance,
			"location":    event.Location,
			"start_time":  event.StartTime,
			"end_time":    event.EndTime,
			"update_date": event.UpdateDate,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// SoftDeleteEvent flags the event deleted; the row is kept.
func (r *EventRepo) SoftDeleteEvent(ctx context.Context, ownerID, id string, at time.Time) error {

	result := conn(ctx, r.db).
		Model(&model.Event{}).
		Where("id = ? AND owner_id = ? AND is_deleted = ?", id, ownerID, false).
		Updates(map[string]any{
			"is_deleted":  true,
			"delete_date": at,
			"update_date": at,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
