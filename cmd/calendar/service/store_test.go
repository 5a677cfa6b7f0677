package service

import (
	"calendar-backend/cmd/calendar/model"
	"context"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"
)

// memStore is an in-memory stand-in for the event and member repositories.
type memStore struct {
	mu      sync.Mutex
	lock    sync.Mutex
	events  map[string]model.Event
	members map[string]model.EventMember
	err     error
}

func newMemStore() *memStore {
	return &memStore{
		events:  make(map[string]model.Event),
		members: make(map[string]model.EventMember),
	}
}

func (s *memStore) put(events ...model.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range events {
		s.events[e.ID] = e
	}
}

func (s *memStore) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	return fn(ctx)
}

func (s *memStore) filter(ownerID string, keep func(e model.Event) bool) ([]model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}

	var out []model.Event
	for _, e := range s.events {
		if e.OwnerID == ownerID && e.Live() && keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}

func (s *memStore) GetEvent(ctx context.Context, ownerID, id string) (model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return model.Event{}, s.err
	}
	e, ok := s.events[id]
	if !ok || e.OwnerID != ownerID || e.IsDeleted {
		return model.Event{}, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (s *memStore) ListEvents(ctx context.Context, ownerID string) ([]model.Event, error) {
	return s.filter(ownerID, func(model.Event) bool { return true })
}

func (s *memStore) ListRunningEvents(ctx context.Context, ownerID string, day time.Time) ([]model.Event, error) {
	return s.filter(ownerID, func(e model.Event) bool {
		return !e.StartTime.After(day) && !e.EndTime.Before(day)
	})
}

func (s *memStore) ListUpcomingEvents(ctx context.Context, ownerID string, day time.Time) ([]model.Event, error) {
	return s.filter(ownerID, func(e model.Event) bool { return e.StartTime.After(day) })
}

func (s *memStore) ListCompletedEvents(ctx context.Context, ownerID string, day time.Time) ([]model.Event, error) {
	return s.filter(ownerID, func(e model.Event) bool { return e.EndTime.Before(day) })
}

func (s *memStore) ListEventsStartingBetween(ctx context.Context, ownerID string, from, to time.Time) ([]model.Event, error) {
	return s.filter(ownerID, func(e model.Event) bool {
		return !e.StartTime.Before(from) && e.StartTime.Before(to)
	})
}

func (s *memStore) CountOverlapping(ctx context.Context, ownerID string, start, end time.Time, excludeID string) (int64, error) {
	events, err := s.filter(ownerID, func(e model.Event) bool {
		return e.ID != excludeID && e.Overlaps(start, end)
	})
	return int64(len(events)), err
}

func (s *memStore) CreateEvent(ctx context.Context, event model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}
	s.events[event.ID] = event
	return nil
}

func (s *memStore) UpdateEvent(ctx context.Context, event model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.events[event.ID]
	if !ok || current.OwnerID != event.OwnerID || current.IsDeleted {
		return gorm.ErrRecordNotFound
	}
	s.events[event.ID] = event
	return nil
}

func (s *memStore) SoftDeleteEvent(ctx context.Context, ownerID, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}
	e, ok := s.events[id]
	if !ok || e.OwnerID != ownerID || e.IsDeleted {
		return gorm.ErrRecordNotFound
	}
	e.IsDeleted = true
	e.DeleteDate = &at
	e.UpdateDate = at
	s.events[id] = e
	return nil
}

func (s *memStore) CountMembers(ctx context.Context, eventID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, m := range s.members {
		if m.EventID == eventID {
			n++
		}
	}
	return n, nil
}

func (s *memStore) MemberExists(ctx context.Context, eventID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.members {
		if m.EventID == eventID && m.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) ListMembers(ctx context.Context, eventID string) ([]model.EventMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.EventMember
	for _, m := range s.members {
		if m.EventID == eventID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreateDate.Before(out[j].CreateDate)
	})
	return out, nil
}

func (s *memStore) GetMember(ctx context.Context, id string) (model.EventMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.members[id]
	if !ok {
		return model.EventMember{}, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (s *memStore) CreateMember(ctx context.Context, member model.EventMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.members[member.ID] = member
	return nil
}

func (s *memStore) DeleteMember(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.members[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.members, id)
	return nil
}

func at(value string) time.Time {
	t, err := time.Parse(model.RequestTimeLayout, value)
	if err != nil {
		panic(err)
	}
	return t
}

func liveEvent(id, ownerID, start, end string) model.Event {
	return model.Event{
		ID:         id,
		OwnerID:    ownerID,
		Title:      "Event " + id,
		Importance: model.ImportanceNormal,
		StartTime:  at(start),
		EndTime:    at(end),
		IsActive:   true,
	}
}
