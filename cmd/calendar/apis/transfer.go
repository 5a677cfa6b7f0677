package apis

import (
	"bytes"
	"calendar-backend/cmd/calendar/model"
	"calendar-backend/cmd/calendar/service"
	"context"
	"net/http"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/gocarina/gocsv"
	"github.com/goforj/godump"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type IEventImporter interface {
	CreateEvent(ctx context.Context, ownerID string, in service.EventInput) (model.Event, error)
	ListEvents(ctx context.Context, ownerID string) ([]model.Event, error)
}

// TransferAPI moves events in and out as CSV and iCalendar files.
type TransferAPI struct {
	events IEventImporter
	loc    *time.Location
	log    *zap.Logger
	debug  bool
}

func NewTransferAPI(events IEventImporter, loc *time.Location, log *zap.Logger, debug bool) *TransferAPI {

	return &TransferAPI{
		events: events,
		loc:    loc,
		log:    log,
		debug:  debug,
	}
}

func (a *TransferAPI) Setup(g *echo.Group) {
	g.POST("/events/import", a.importEvents)
	g.GET("/events/export.csv", a.exportCSV)
	g.GET("/events/export.ics", a.exportICS)
}

// importEvents creates one event per CSV row. Rows are independent: a row
// rejected by validation or the conflict check is reported and the import
// continues.
func (a *TransferAPI) importEvents(c echo.Context) error {

	ctx := c.Request().Context()
	owner := ownerID(c)

	csvfile, err := c.FormFile("csvfile")
	if err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	cf, err := csvfile.Open()
	if err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	defer cf.Close()

	var rows []model.EventCSV
	err = gocsv.Unmarshal(cf, &rows)
	if err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	if a.debug {
		godump.Dump(rows)
	}

	results := make([]model.ImportRowResult, 0, len(rows))

	for i, row := range rows {
		result := model.ImportRowResult{Row: i + 1}

		in, err := toEventInput(row.Title, row.Head, row.Importance, row.Location, row.StartTime, row.EndTime, a.loc)
		if err == nil {
			var event model.Event
			event, err = a.events.CreateEvent(ctx, owner, in)
			result.EventID = event.ID
		}

		if err != nil {
			if statusOf(err) == http.StatusInternalServerError {
				return errorResponse(c, a.log, err)
			}
			result.Error = service.UserMessage(err)
		}

		results = append(results, result)
	}

	a.log.Info("events imported",
		zap.String("owner_id", owner),
		zap.Int("rows", len(rows)))

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    results,
		},
	)
}

func (a *TransferAPI) exportCSV(c echo.Context) error {

	ctx := c.Request().Context()

	events, err := a.events.ListEvents(ctx, ownerID(c))
	if err != nil {
		return errorResponse(c, a.log, err)
	}

	rows := make([]*model.EventCSV, 0, len(events))
	for _, e := range events {
		rows = append(rows, &model.EventCSV{
			Title:      e.Title,
			Head:       e.Head,
			Importance: string(e.Importance),
			Location:   e.Location,
			StartTime:  e.StartTime.In(a.loc).Format(model.RequestTimeLayout),
			EndTime:    e.EndTime.In(a.loc).Format(model.RequestTimeLayout),
		})
	}

	var buf bytes.Buffer
	err = gocsv.Marshal(rows, &buf)
	if err != nil {
		return errorResponse(c, a.log, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="events.csv"`)

	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (a *TransferAPI) exportICS(c echo.Context) error {

	ctx := c.Request().Context()

	events, err := a.events.ListEvents(ctx, ownerID(c))
	if err != nil {
		return errorResponse(c, a.log, err)
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//calendar-backend//events//EN")

	for _, e := range events {
		ve := cal.AddEvent(e.ID)
		ve.SetDtStampTime(e.UpdateDate)
		ve.SetStartAt(e.StartTime)
		ve.SetEndAt(e.EndTime)
		ve.SetSummary(e.Title)
		if e.Head != "" {
			ve.SetDescription(e.Head)
		}
		if e.Location != "" {
			ve.SetLocation(e.Location)
		}
		ve.SetProperty(ics.ComponentPropertyPriority, icsPriority(e.Importance))
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="events.ics"`)

	return c.Blob(http.StatusOK, "text/calendar; charset=utf-8", []byte(cal.Serialize()))
}

// icsPriority maps importance onto the RFC 5545 PRIORITY scale (1 highest).
func icsPriority(i model.Importance) string {
	switch i {
	case model.ImportanceHigh:
		return "1"
	case model.ImportanceLow:
		return "9"
	}
	return "5"
}
