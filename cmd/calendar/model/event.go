package model

import "time"

type Importance string

var (
	ImportanceLow    Importance = "low"
	ImportanceNormal Importance = "normal"
	ImportanceHigh   Importance = "high"
)

func (i Importance) Valid() bool {
	switch i {
	case ImportanceLow, ImportanceNormal, ImportanceHigh:
		return true
	}
	return false
}

type Event struct {
	ID         string     `gorm:"column:id;primaryKey;size:36" json:"id"`
	OwnerID    string     `gorm:"column:owner_id;size:36;not null;index:idx_events_owner_interval,priority:1" json:"owner_id"`
	Title      string     `gorm:"column:title;size:200;not null" json:"title"`
	Head       string     `gorm:"column:head;size:150" json:"head"`
	Importance Importance `gorm:"column:importance;size:10;not null" json:"importance"`
	Location   string     `gorm:"column:location;size:200" json:"location"`
	StartTime  time.Time  `gorm:"column:start_time;not null;index:idx_events_owner_interval,priority:2" json:"start_time"`
	EndTime    time.Time  `gorm:"column:end_time;not null;index:idx_events_owner_interval,priority:3" json:"end_time"`
	IsActive   bool       `gorm:"column:is_active;not null" json:"is_active"`
	IsDeleted  bool       `gorm:"column:is_deleted;not null" json:"is_deleted"`
	CreateDate time.Time  `gorm:"column:create_date" json:"create_date"`
	UpdateDate time.Time  `gorm:"column:update_date" json:"update_date"`
	DeleteDate *time.Time `gorm:"column:delete_date" json:"delete_date,omitempty"`
}

func (m *Event) TableName() string {
	return "events"
}

// Live reports whether the event takes part in conflict checks and listings.
func (m *Event) Live() bool {
	return m.IsActive && !m.IsDeleted
}

// Overlaps uses half-open [start, end) semantics, so touching endpoints do not overlap.
func (m *Event) Overlaps(start, end time.Time) bool {
	return m.StartTime.Before(end) && m.EndTime.After(start)
}

type EventMember struct {
	ID         string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	EventID    string    `gorm:"column:event_id;size:36;not null;index:idx_event_members_event" json:"event_id"`
	UserID     string    `gorm:"column:user_id;size:36;not null" json:"user_id"`
	CreateDate time.Time `gorm:"column:create_date" json:"create_date"`
}

func (m *EventMember) TableName() string {
	return "event_members"
}
