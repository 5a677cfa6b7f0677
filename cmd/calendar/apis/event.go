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

const (
	msgDeleted     = "Event sucess delete."
	msgShifted     = "Sucess!"
	msgWrongMethod = "Error!"
)

type IEventService interface {
	CreateEvent(ctx context.Context, ownerID string, in service.EventInput) (model.Event, error)
	UpdateEvent(ctx context.Context, ownerID, eventID string, in service.EventInput) (model.Event, error)
	GetEvent(ctx context.Context, ownerID, eventID string) (model.Event, error)
	DeleteEvent(ctx context.Context, ownerID, eventID string) error
	ShiftEvent(ctx context.Context, ownerID, eventID string, delta time.Duration) (model.Event, error)
	ListEvents(ctx context.Context, ownerID string) ([]model.Event, error)
}

type IMemberLister interface {
	ListMembers(ctx context.Context, ownerID, eventID string) ([]model.EventMember, error)
}

type EventAPI struct {
	events  IEventService
	members IMemberLister
	loc     *time.Location
	log     *zap.Logger
}

func NewEventAPI(events IEventService, members IMemberLister, loc *time.Location, log *zap.Logger) *EventAPI {

	return &EventAPI{
		events:  events,
		members: members,
		loc:     loc,
		log:     log,
	}
}

func (a *EventAPI) Setup(g *echo.Group) {
	g.GET("/events", a.listEvents)
	g.POST("/events", a.createEvent)
	g.GET("/events/:id", a.getEvent)
	g.PUT("/events/:id", a.updateEvent)
	g.Any("/events/:id/delete", a.deleteEvent)
	g.Any("/events/:id/next-week", a.shift(service.NextWeek))
	g.Any("/events/:id/next-day", a.shift(service.NextDay))
}

func (a *EventAPI) listEvents(c echo.Context) error {

	ctx := c.Request().Context()

	events, err := a.events.ListEvents(ctx, ownerID(c))
	if err != nil {
		return a.fail(c, err)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    model.NewEventPayloads(events, a.loc),
		},
	)
}

func (a *EventAPI) createEvent(c echo.Context) error {

	ctx := c.Request().Context()

	in, err := bindEventInput(c, a.loc)
	if err != nil {
		return badRequest(c, err)
	}

	event, err := a.events.CreateEvent(ctx, ownerID(c), in)
	if err != nil {
		return a.fail(c, err)
	}

	c.Response().Header().Set(echo.HeaderLocation, "/api/v1/calendar")

	return c.JSON(
		http.StatusCreated,
		model.BaseResponse{
			Message: "success",
			Data:    model.NewEventPayload(event, a.loc),
		},
	)
}

func (a *EventAPI) getEvent(c echo.Context) error {

	ctx := c.Request().Context()
	owner := ownerID(c)

	event, err := a.events.GetEvent(ctx, owner, c.Param("id"))
	if err != nil {
		return a.fail(c, err)
	}

	members, err := a.members.ListMembers(ctx, owner, event.ID)
	if err != nil {
		return a.fail(c, err)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data: model.EventDetail{
				Event:   model.NewEventPayload(event, a.loc),
				Members: members,
			},
		},
	)
}

func (a *EventAPI) updateEvent(c echo.Context) error {

	ctx := c.Request().Context()

	in, err := bindEventInput(c, a.loc)
	if err != nil {
		return badRequest(c, err)
	}

	event, err := a.events.UpdateEvent(ctx, ownerID(c), c.Param("id"), in)
	if err != nil {
		return a.fail(c, err)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    model.NewEventPayload(event, a.loc),
		},
	)
}

// deleteEvent resolves the event before looking at the method, so an unknown
// id is a 404 whatever the method.
func (a *EventAPI) deleteEvent(c echo.Context) error {

	ctx := c.Request().Context()
	owner := ownerID(c)

	event, err := a.events.GetEvent(ctx, owner, c.Param("id"))
	if err != nil {
		return a.fail(c, err)
	}

	method := c.Request().Method
	if method != http.MethodPost && method != http.MethodDelete {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: msgWrongMethod,
			},
		)
	}

	err = a.events.DeleteEvent(ctx, owner, event.ID)
	if err != nil {
		return a.fail(c, err)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: msgDeleted,
		},
	)
}

func (a *EventAPI) shift(delta time.Duration) echo.HandlerFunc {
	return func(c echo.Context) error {

		ctx := c.Request().Context()
		owner := ownerID(c)

		event, err := a.events.GetEvent(ctx, owner, c.Param("id"))
		if err != nil {
			return a.fail(c, err)
		}

		if c.Request().Method != http.MethodPost {
			return c.JSON(
				http.StatusBadRequest,
				model.BaseResponse{
					Message: msgWrongMethod,
				},
			)
		}

		_, err = a.events.ShiftEvent(ctx, owner, event.ID, delta)
		if err != nil {
			status := statusOf(err)
			if status == http.StatusConflict {
				status = http.StatusBadRequest
			}
			return c.JSON(
				status,
				model.BaseResponse{
					Message: service.UserMessage(err),
				},
			)
		}

		return c.JSON(
			http.StatusOK,
			model.BaseResponse{
				Message: msgShifted,
			},
		)
	}
}

func (a *EventAPI) fail(c echo.Context, err error) error {
	return errorResponse(c, a.log, err)
}
