package apis

import (
	"calendar-backend/cmd/calendar/model"
	"calendar-backend/cmd/calendar/service"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrCapacityExceeded),
		errors.Is(err, service.ErrAlreadyMember):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func errorResponse(c echo.Context, log *zap.Logger, err error) error {

	status := statusOf(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Error(err))
	}

	return c.JSON(
		status,
		model.BaseResponse{
			Message: service.UserMessage(err),
		},
	)
}

// badRequest answers a request whose body could not be bound or validated.
func badRequest(c echo.Context, err error) error {

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[strings.ToLower(fe.Field())] = formatFieldError(fe)
		}
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: "validation failed",
				Data:    fields,
			},
		)
	}

	var herr *echo.HTTPError
	if errors.As(err, &herr) {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: fmt.Sprint(herr.Message),
			},
		)
	}

	return c.JSON(
		http.StatusBadRequest,
		model.BaseResponse{
			Message: service.UserMessage(err),
		},
	)
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "oneof":
		return fmt.Sprintf("Select one of: %s.", fe.Param())
	case "datetime":
		return fmt.Sprintf("Enter a valid date/time (%s).", fe.Param())
	case "uuid":
		return "Enter a valid UUID."
	}
	return fmt.Sprintf("Failed on %s.", fe.Tag())
}
