package apis

import (
	"calendar-backend/cmd/calendar/model"
	"calendar-backend/cmd/calendar/service"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testOwner = "0190a6e4-7f3c-7b6a-9a55-3f0c8e1d2b4a"

// MockEventService implements IEventService and IEventImporter for testing
type MockEventService struct {
	mock.Mock
}

func (m *MockEventService) CreateEvent(ctx context.Context, ownerID string, in service.EventInput) (model.Event, error) {
	args := m.Called(ctx, ownerID, in)
	return args.Get(0).(model.Event), args.Error(1)
}

func (m *MockEventService) UpdateEvent(ctx context.Context, ownerID, eventID string, in service.EventInput) (model.Event, error) {
	args := m.Called(ctx, ownerID, eventID, in)
	return args.Get(0).(model.Event), args.Error(1)
}

func (m *MockEventService) GetEvent(ctx context.Context, ownerID, eventID string) (model.Event, error) {
	args := m.Called(ctx, ownerID, eventID)
	return args.Get(0).(model.Event), args.Error(1)
}

func (m *MockEventService) DeleteEvent(ctx context.Context, ownerID, eventID string) error {
	args := m.Called(ctx, ownerID, eventID)
	return args.Error(0)
}

func (m *MockEventService) ShiftEvent(ctx context.Context, ownerID, eventID string, delta time.Duration) (model.Event, error) {
	args := m.Called(ctx, ownerID, eventID, delta)
	return args.Get(0).(model.Event), args.Error(1)
}

func (m *MockEventService) ListEvents(ctx context.Context, ownerID string) ([]model.Event, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]model.Event), args.Error(1)
}

// MockMemberService implements IMemberService and IMemberLister for testing
type MockMemberService struct {
	mock.Mock
}

func (m *MockMemberService) AddMember(ctx context.Context, ownerID, eventID, userID string) (model.EventMember, error) {
	args := m.Called(ctx, ownerID, eventID, userID)
	return args.Get(0).(model.EventMember), args.Error(1)
}

func (m *MockMemberService) ListMembers(ctx context.Context, ownerID, eventID string) ([]model.EventMember, error) {
	args := m.Called(ctx, ownerID, eventID)
	return args.Get(0).([]model.EventMember), args.Error(1)
}

func (m *MockMemberService) RemoveMember(ctx context.Context, ownerID, memberID string) error {
	args := m.Called(ctx, ownerID, memberID)
	return args.Error(0)
}

// MockCalendarService implements ICalendarService for testing
type MockCalendarService struct {
	mock.Mock
}

func (m *MockCalendarService) Month(ctx context.Context, ownerID string, year int, month time.Month, today time.Time) (model.MonthView, error) {
	args := m.Called(ctx, ownerID, year, month, today)
	return args.Get(0).(model.MonthView), args.Error(1)
}

func (m *MockCalendarService) RunningEvents(ctx context.Context, ownerID string, today time.Time) ([]model.Event, error) {
	args := m.Called(ctx, ownerID, today)
	return args.Get(0).([]model.Event), args.Error(1)
}

func (m *MockCalendarService) UpcomingEvents(ctx context.Context, ownerID string, today time.Time) ([]model.Event, error) {
	args := m.Called(ctx, ownerID, today)
	return args.Get(0).([]model.Event), args.Error(1)
}

func (m *MockCalendarService) CompletedEvents(ctx context.Context, ownerID string, today time.Time) ([]model.Event, error) {
	args := m.Called(ctx, ownerID, today)
	return args.Get(0).([]model.Event), args.Error(1)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewRequestValidator()
	return e
}

// newOwnerContext builds a handler context as RequireOwner leaves it.
func newOwnerContext(e *echo.Echo, method, target string, body io.Reader, contentType string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ownerKey, testOwner)
	return c, rec
}

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) model.BaseResponse {
	t.Helper()
	var response model.BaseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	return response
}

func testEvent() model.Event {
	return model.Event{
		ID:         "event-1",
		OwnerID:    testOwner,
		Title:      "Standup",
		Head:       "Daily sync",
		Importance: model.ImportanceHigh,
		Location:   "Room 4",
		StartTime:  time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC),
		IsActive:   true,
		CreateDate: time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
		UpdateDate: time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
	}
}
