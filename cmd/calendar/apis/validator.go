package apis

import (
	"calendar-backend/cmd/calendar/model"
	"calendar-backend/cmd/calendar/service"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RequestValidator plugs go-playground/validator into echo's c.Validate.
type RequestValidator struct {
	validator *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{
		validator: validator.New(),
	}
}

func (v *RequestValidator) Validate(i any) error {
	return v.validator.Struct(i)
}

func bindEventInput(c echo.Context, loc *time.Location) (service.EventInput, error) {

	var req model.EventRequest

	if err := c.Bind(&req); err != nil {
		return service.EventInput{}, err
	}

	if err := c.Validate(&req); err != nil {
		return service.EventInput{}, err
	}

	return toEventInput(req.Title, req.Head, req.Importance, req.Location, req.StartTime, req.EndTime, loc)
}

func toEventInput(title, head, importance, location, start, end string, loc *time.Location) (service.EventInput, error) {

	startTime, err := time.ParseInLocation(model.RequestTimeLayout, start, loc)
	if err != nil {
		return service.EventInput{}, fmt.Errorf("%w: start_time must be formatted as %s", service.ErrValidation, model.RequestTimeLayout)
	}

	endTime, err := time.ParseInLocation(model.RequestTimeLayout, end, loc)
	if err != nil {
		return service.EventInput{}, fmt.Errorf("%w: end_time must be formatted as %s", service.ErrValidation, model.RequestTimeLayout)
	}

	return service.EventInput{
		Title:      title,
		Head:       head,
		Importance: model.Importance(importance),
		Location:   location,
		StartTime:  startTime,
		EndTime:    endTime,
	}, nil
}
