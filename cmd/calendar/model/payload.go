package model

import "time"

// PayloadTimeLayout is the timestamp format the calendar widget consumes.
const PayloadTimeLayout = "2006-01-02T15:04:05"

type EventPayload struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Start           string     `json:"start"`
	End             string     `json:"end"`
	Head            string     `json:"head"`
	Importance      Importance `json:"importance"`
	Location        string     `json:"location"`
	BackgroundColor string     `json:"backgroundColor"`
	BorderColor     string     `json:"borderColor"`
}

// Colors returns the background and border color used to render an event of
// the given importance. Unknown values fall back to the low pair.
func (i Importance) Colors() (background, border string) {
	switch i {
	case ImportanceHigh:
		return "#ff6b6b", "#ff4c4c"
	case ImportanceNormal:
		return "#ffd166", "#ffbf4d"
	default:
		return "#8ecae6", "#61a5c2"
	}
}

func NewEventPayload(e Event, loc *time.Location) EventPayload {
	bg, border := e.Importance.Colors()
	return EventPayload{
		ID:              e.ID,
		Title:           e.Title,
		Start:           e.StartTime.In(loc).Format(PayloadTimeLayout),
		End:             e.EndTime.In(loc).Format(PayloadTimeLayout),
		Head:            e.Head,
		Importance:      e.Importance,
		Location:        e.Location,
		BackgroundColor: bg,
		BorderColor:     border,
	}
}

func NewEventPayloads(events []Event, loc *time.Location) []EventPayload {
	payloads := make([]EventPayload, 0, len(events))
	for _, e := range events {
		payloads = append(payloads, NewEventPayload(e, loc))
	}
	return payloads
}

type DayCell struct {
	Day    int            `json:"day"`
	Events []EventPayload `json:"events"`
}

type MonthView struct {
	Year        int            `json:"year"`
	Month       int            `json:"month"`
	Weeks       [][]DayCell    `json:"weeks"`
	PrevMonth   string         `json:"prev_month"`
	NextMonth   string         `json:"next_month"`
	Events      []EventPayload `json:"events"`
	EventsMonth []EventPayload `json:"events_month"`
}
