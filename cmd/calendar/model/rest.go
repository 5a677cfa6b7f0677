package model

// RequestTimeLayout matches the HTML datetime-local input.
const RequestTimeLayout = "2006-01-02T15:04"

type BaseResponse struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
}

type EventRequest struct {
	Title      string `json:"title" form:"title" validate:"required,max=200"`
	Head       string `json:"head" form:"head" validate:"max=150"`
	Importance string `json:"importance" form:"importance" validate:"omitempty,oneof=low normal high"`
	Location   string `json:"location" form:"location" validate:"max=200"`
	StartTime  string `json:"start_time" form:"start_time" validate:"required,datetime=2006-01-02T15:04"`
	EndTime    string `json:"end_time" form:"end_time" validate:"required,datetime=2006-01-02T15:04"`
}

type MemberRequest struct {
	UserID string `json:"user_id" form:"user_id" validate:"required,uuid"`
}

type EventDetail struct {
	Event   EventPayload  `json:"event"`
	Members []EventMember `json:"members"`
}

type ImportRowResult struct {
	Row     int    `json:"row"`
	EventID string `json:"event_id,omitempty"`
	Error   string `json:"error,omitempty"`
}
