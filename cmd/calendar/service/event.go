package service

import (
	"calendar-backend/cmd/calendar/model"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	NextDay  = 24 * time.Hour
	NextWeek = 7 * NextDay
)

const (
	msgCreateConflict   = "This event conflicts with an existing event and cannot be created."
	msgUpdateConflict   = "This event conflicts with an existing event and cannot be updated."
	msgNextWeekConflict = "Cannot add event in next week: it conflicts with an existing event."
	msgNextDayConflict  = "Cannot add event next day: it conflicts with an existing event."
	msgShiftConflict    = "Cannot shift event: it conflicts with an existing event."
	msgEventNotFound    = "Event not found."
)

type IEventRepo interface {
	GetEvent(ctx context.Context, ownerID, id string) (model.Event, error)
	ListEvents(ctx context.Context, ownerID string) ([]model.Event, error)
	CountOverlapping(ctx context.Context, ownerID string, start, end time.Time, excludeID string) (int64, error)
	CreateEvent(ctx context.Context, event model.Event) error
	UpdateEvent(ctx context.Context, event model.Event) error
	SoftDeleteEvent(ctx context.Context, ownerID, id string, at time.Time) error
}

type IEventLookup interface {
	GetEvent(ctx context.Context, ownerID, id string) (model.Event, error)
}

type ITxRunner interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// EventInput carries the user editable fields of an event.
type EventInput struct {
	Title      string
	Head       string
	Importance model.Importance
	Location   string
	StartTime  time.Time
	EndTime    time.Time
}

func (in *EventInput) normalize() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Head = strings.TrimSpace(in.Head)
	in.Location = strings.TrimSpace(in.Location)

	if in.Title == "" {
		return newError(ErrValidation, "Title is required.")
	}
	if in.Importance == "" {
		in.Importance = model.ImportanceNormal
	}
	if !in.Importance.Valid() {
		return newError(ErrValidation, "Importance must be one of low, normal, high.")
	}
	if !in.StartTime.Before(in.EndTime) {
		return newError(ErrValidation, "End time must be after start time.")
	}
	return nil
}

type EventService struct {
	events IEventRepo
	tx     ITxRunner
	log    *zap.Logger
	now    func() time.Time
}

func NewEventService(events IEventRepo, tx ITxRunner, log *zap.Logger) *EventService {
	return &EventService{
		events: events,
		tx:     tx,
		log:    log,
		now:    time.Now,
	}
}

func ownerLockKey(ownerID string) string {
	return "events:" + ownerID
}

// HasConflict reports whether a live event of the owner overlaps [start, end).
func (s *EventService) HasConflict(ctx context.Context, ownerID string, start, end time.Time, excludeID string) (bool, error) {
	count, err := s.events.CountOverlapping(ctx, ownerID, start, end, excludeID)
	if err != nil {
		return false, fmt.Errorf("count overlapping events: %w", err)
	}
	return count > 0, nil
}

func (s *EventService) CreateEvent(ctx context.Context, ownerID string, in EventInput) (model.Event, error) {

	if err := in.normalize(); err != nil {
		return model.Event{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return model.Event{}, fmt.Errorf("generate event id: %w", err)
	}

	now := s.now()
	event := model.Event{
		ID:         id.String(),
		OwnerID:    ownerID,
		Title:      in.Title,
		Head:       in.Head,
		Importance: in.Importance,
		Location:   in.Location,
		StartTime:  in.StartTime,
		EndTime:    in.EndTime,
		IsActive:   true,
		IsDeleted:  false,
		CreateDate: now,
		UpdateDate: now,
	}

	err = s.tx.WithLock(ctx, ownerLockKey(ownerID), func(ctx context.Context) error {
		conflict, err := s.HasConflict(ctx, ownerID, event.StartTime, event.EndTime, "")
		if err != nil {
			return err
		}
		if conflict {
			return newError(ErrConflict, msgCreateConflict)
		}
		if err := s.events.CreateEvent(ctx, event); err != nil {
			return fmt.Errorf("create event: %w", err)
		}
		return nil
	})
	if err != nil {
		s.writeFailed("create", ownerID, err)
		return model.Event{}, err
	}

	eventsCreated.WithLabelValues("create").Inc()
	s.log.Info("event created",
		zap.String("owner_id", ownerID),
		zap.String("event_id", event.ID))

	return event, nil
}

// UpdateEvent replaces the editable fields of an event. The event itself is
// left out of its own conflict check.
func (s *EventService) UpdateEvent(ctx context.Context, ownerID, eventID string, in EventInput) (model.Event, error) {

	if err := in.normalize(); err != nil {
		return model.Event{}, err
	}

	var updated model.Event

	err := s.tx.WithLock(ctx, ownerLockKey(ownerID), func(ctx context.Context) error {
		current, err := lookupEvent(ctx, s.events, ownerID, eventID)
		if err != nil {
			return err
		}

		conflict, err := s.HasConflict(ctx, ownerID, in.StartTime, in.EndTime, current.ID)
		if err != nil {
			return err
		}
		if conflict {
			return newError(ErrConflict, msgUpdateConflict)
		}

		updated = current
		updated.Title = in.Title
		updated.Head = in.Head
		updated.Importance = in.Importance
		updated.Location = in.Location
		updated.StartTime = in.StartTime
		updated.EndTime = in.EndTime
		updated.UpdateDate = s.now()

		if err := s.events.UpdateEvent(ctx, updated); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return newError(ErrNotFound, msgEventNotFound)
			}
			return fmt.Errorf("update event: %w", err)
		}
		return nil
	})
	if err != nil {
		s.writeFailed("update", ownerID, err)
		return model.Event{}, err
	}

	return updated, nil
}

// ShiftEvent creates a copy of the event moved forward by delta. The source
// event is not modified, and it is not excluded from the conflict check, so a
// delta shorter than the event itself always conflicts.
func (s *EventService) ShiftEvent(ctx context.Context, ownerID, eventID string, delta time.Duration) (model.Event, error) {

	if delta <= 0 {
		return model.Event{}, newError(ErrValidation, "Shift must be a positive duration.")
	}

	var created model.Event

	err := s.tx.WithLock(ctx, ownerLockKey(ownerID), func(ctx context.Context) error {
		source, err := lookupEvent(ctx, s.events, ownerID, eventID)
		if err != nil {
			return err
		}

		start := source.StartTime.Add(delta)
		end := source.EndTime.Add(delta)

		conflict, err := s.HasConflict(ctx, ownerID, start, end, "")
		if err != nil {
			return err
		}
		if conflict {
			if source.Live() && source.Overlaps(start, end) {
				s.log.Info("shifted interval overlaps its source event",
					zap.String("event_id", source.ID),
					zap.Duration("delta", delta))
			}
			return newError(ErrConflict, shiftConflictMessage(delta))
		}

		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("generate event id: %w", err)
		}

		now := s.now()
		created = model.Event{
			ID:         id.String(),
			OwnerID:    source.OwnerID,
			Title:      source.Title,
			Head:       source.Head,
			Importance: source.Importance,
			Location:   source.Location,
			StartTime:  start,
			EndTime:    end,
			IsActive:   true,
			IsDeleted:  false,
			CreateDate: now,
			UpdateDate: now,
		}

		if err := s.events.CreateEvent(ctx, created); err != nil {
			return fmt.Errorf("create shifted event: %w", err)
		}
		return nil
	})
	if err != nil {
		s.writeFailed("shift", ownerID, err)
		return model.Event{}, err
	}

	eventsCreated.WithLabelValues("shift").Inc()

	return created, nil
}

// DeleteEvent soft deletes the event.
func (s *EventService) DeleteEvent(ctx context.Context, ownerID, eventID string) error {

	err := s.events.SoftDeleteEvent(ctx, ownerID, eventID, s.now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newError(ErrNotFound, msgEventNotFound)
		}
		s.log.Error("delete event failed",
			zap.String("owner_id", ownerID),
			zap.String("event_id", eventID),
			zap.Error(err))
		return fmt.Errorf("delete event: %w", err)
	}

	return nil
}

func (s *EventService) GetEvent(ctx context.Context, ownerID, eventID string) (model.Event, error) {
	return lookupEvent(ctx, s.events, ownerID, eventID)
}

func (s *EventService) ListEvents(ctx context.Context, ownerID string) ([]model.Event, error) {
	events, err := s.events.ListEvents(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *EventService) writeFailed(operation, ownerID string, err error) {
	switch {
	case errors.Is(err, ErrConflict):
		eventConflicts.WithLabelValues(operation).Inc()
		s.log.Info("event write rejected by conflict check",
			zap.String("operation", operation),
			zap.String("owner_id", ownerID))
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrValidation):
	default:
		s.log.Error("event write failed",
			zap.String("operation", operation),
			zap.String("owner_id", ownerID),
			zap.Error(err))
	}
}

func shiftConflictMessage(delta time.Duration) string {
	switch delta {
	case NextWeek:
		return msgNextWeekConflict
	case NextDay:
		return msgNextDayConflict
	}
	return msgShiftConflict
}

func lookupEvent(ctx context.Context, events IEventLookup, ownerID, eventID string) (model.Event, error) {
	event, err := events.GetEvent(ctx, ownerID, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Event{}, newError(ErrNotFound, msgEventNotFound)
		}
		return model.Event{}, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}
