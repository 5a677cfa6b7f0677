package service

import (
	"calendar-backend/cmd/calendar/model"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type ICalendarRepo interface {
	ListEvents(ctx context.Context, ownerID string) ([]model.Event, error)
	ListRunningEvents(ctx context.Context, ownerID string, day time.Time) ([]model.Event, error)
	ListUpcomingEvents(ctx context.Context, ownerID string, day time.Time) ([]model.Event, error)
	ListCompletedEvents(ctx context.Context, ownerID string, day time.Time) ([]model.Event, error)
	ListEventsStartingBetween(ctx context.Context, ownerID string, from, to time.Time) ([]model.Event, error)
}

// CalendarService buckets events relative to a day and builds month grids.
// Bucket comparisons use the date only: today is truncated to midnight in
// the service location before it reaches the store.
type CalendarService struct {
	events ICalendarRepo
	loc    *time.Location
}

func NewCalendarService(events ICalendarRepo, loc *time.Location) *CalendarService {
	if loc == nil {
		loc = time.UTC
	}
	return &CalendarService{
		events: events,
		loc:    loc,
	}
}

func (s *CalendarService) Location() *time.Location {
	return s.loc
}

func (s *CalendarService) day(t time.Time) time.Time {
	t = t.In(s.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.loc)
}

// RunningEvents returns events with start_time <= day <= end_time ordered by
// start_time.
func (s *CalendarService) RunningEvents(ctx context.Context, ownerID string, today time.Time) ([]model.Event, error) {
	events, err := s.events.ListRunningEvents(ctx, ownerID, s.day(today))
	if err != nil {
		return nil, fmt.Errorf("list running events: %w", err)
	}
	return events, nil
}

func (s *CalendarService) UpcomingEvents(ctx context.Context, ownerID string, today time.Time) ([]model.Event, error) {
	events, err := s.events.ListUpcomingEvents(ctx, ownerID, s.day(today))
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	return events, nil
}

func (s *CalendarService) CompletedEvents(ctx context.Context, ownerID string, today time.Time) ([]model.Event, error) {
	events, err := s.events.ListCompletedEvents(ctx, ownerID, s.day(today))
	if err != nil {
		return nil, fmt.Errorf("list completed events: %w", err)
	}
	return events, nil
}

// Month builds the Monday-first grid of the given month. Each in-month cell
// lists the events starting on that day.
func (s *CalendarService) Month(ctx context.Context, ownerID string, year int, month time.Month, today time.Time) (model.MonthView, error) {

	first := time.Date(year, month, 1, 0, 0, 0, 0, s.loc)
	next := first.AddDate(0, 1, 0)

	inMonth, err := s.events.ListEventsStartingBetween(ctx, ownerID, first, next)
	if err != nil {
		return model.MonthView{}, fmt.Errorf("list month events: %w", err)
	}

	all, err := s.events.ListEvents(ctx, ownerID)
	if err != nil {
		return model.MonthView{}, fmt.Errorf("list events: %w", err)
	}

	running, err := s.RunningEvents(ctx, ownerID, today)
	if err != nil {
		return model.MonthView{}, err
	}

	return model.MonthView{
		Year:        first.Year(),
		Month:       int(first.Month()),
		Weeks:       s.weeks(first, inMonth),
		PrevMonth:   monthParam(first.AddDate(0, 0, -1)),
		NextMonth:   monthParam(next),
		Events:      model.NewEventPayloads(all, s.loc),
		EventsMonth: model.NewEventPayloads(running, s.loc),
	}, nil
}

func (s *CalendarService) weeks(first time.Time, events []model.Event) [][]model.DayCell {

	byDay := make(map[int][]model.EventPayload)
	for _, e := range events {
		d := e.StartTime.In(s.loc).Day()
		byDay[d] = append(byDay[d], model.NewEventPayload(e, s.loc))
	}

	days := first.AddDate(0, 1, -1).Day()
	lead := (int(first.Weekday()) + 6) % 7

	var weeks [][]model.DayCell
	week := make([]model.DayCell, 0, 7)
	for i := 0; i < lead; i++ {
		week = append(week, emptyCell())
	}

	for d := 1; d <= days; d++ {
		cell := emptyCell()
		cell.Day = d
		if payloads, ok := byDay[d]; ok {
			cell.Events = payloads
		}
		week = append(week, cell)

		if len(week) == 7 {
			weeks = append(weeks, week)
			week = make([]model.DayCell, 0, 7)
		}
	}

	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, emptyCell())
		}
		weeks = append(weeks, week)
	}

	return weeks
}

func emptyCell() model.DayCell {
	return model.DayCell{Events: []model.EventPayload{}}
}

func monthParam(t time.Time) string {
	return fmt.Sprintf("month=%d-%d", t.Year(), int(t.Month()))
}

// ParseMonth reads the "YYYY-M" month selector. An empty value selects the
// month of now.
func ParseMonth(value string, now time.Time) (int, time.Month, error) {

	if value == "" {
		return now.Year(), now.Month(), nil
	}

	parts := strings.Split(value, "-")
	if len(parts) != 2 {
		return 0, 0, newError(ErrValidation, "Month must be formatted as YYYY-M.")
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil || year < 1 {
		return 0, 0, newError(ErrValidation, "Month must be formatted as YYYY-M.")
	}

	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, newError(ErrValidation, "Month must be between 1 and 12.")
	}

	return year, time.Month(month), nil
}
