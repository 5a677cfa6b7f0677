package apis

import (
	"calendar-backend/cmd/calendar/model"
	"calendar-backend/cmd/calendar/service"
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ICalendarService interface {
	Month(ctx context.Context, ownerID string, year int, month time.Month, today time.Time) (model.MonthView, error)
	RunningEvents(ctx context.Context, ownerID string, today time.Time) ([]model.Event, error)
	UpcomingEvents(ctx context.Context, ownerID string, today time.Time) ([]model.Event, error)
	CompletedEvents(ctx context.Context, ownerID string, today time.Time) ([]model.Event, error)
}

type bucketFunc func(ctx context.Context, ownerID string, today time.Time) ([]model.Event, error)

type CalendarAPI struct {
	calendar ICalendarService
	loc      *time.Location
	log      *zap.Logger
	now      func() time.Time
}

func NewCalendarAPI(calendar ICalendarService, loc *time.Location, log *zap.Logger) *CalendarAPI {

	return &CalendarAPI{
		calendar: calendar,
		loc:      loc,
		log:      log,
		now:      time.Now,
	}
}

func (a *CalendarAPI) Setup(g *echo.Group) {
	g.GET("/calendar", a.month)
	g.GET("/events/running", a.bucket(a.calendar.RunningEvents))
	g.GET("/events/upcoming", a.bucket(a.calendar.UpcomingEvents))
	g.GET("/events/completed", a.bucket(a.calendar.CompletedEvents))
}

func (a *CalendarAPI) month(c echo.Context) error {

	ctx := c.Request().Context()
	now := a.now().In(a.loc)

	year, month, err := service.ParseMonth(c.QueryParam("month"), now)
	if err != nil {
		return badRequest(c, err)
	}

	view, err := a.calendar.Month(ctx, ownerID(c), year, month, now)
	if err != nil {
		return errorResponse(c, a.log, err)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    view,
		},
	)
}

func (a *CalendarAPI) bucket(list bucketFunc) echo.HandlerFunc {
	return func(c echo.Context) error {

		ctx := c.Request().Context()

		events, err := list(ctx, ownerID(c), a.now())
		if err != nil {
			return errorResponse(c, a.log, err)
		}

		return c.JSON(
			http.StatusOK,
			model.BaseResponse{
				Message: "success",
				Data:    model.NewEventPayloads(events, a.loc),
			},
		)
	}
}
