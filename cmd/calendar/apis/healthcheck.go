package apis

import (
	"calendar-backend/cmd/calendar/model"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type HealthCheckAPI struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewHealthCheckAPI(db *gorm.DB, log *zap.Logger) *HealthCheckAPI {
	return &HealthCheckAPI{
		db:  db,
		log: log,
	}
}

func (a *HealthCheckAPI) Setup(g *echo.Group) {
	g.GET("/healthz", a.healthCheck)
	g.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

func (a *HealthCheckAPI) healthCheck(c echo.Context) error {

	ctx := c.Request().Context()

	db, err := a.db.DB()
	if err != nil {
		return a.unhealthy(c, err)
	}

	err = db.PingContext(ctx)
	if err != nil {
		return a.unhealthy(c, err)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "healthy",
		},
	)
}

func (a *HealthCheckAPI) unhealthy(c echo.Context, err error) error {

	a.log.Error("health check failed", zap.Error(err))

	return c.JSON(
		http.StatusInternalServerError,
		model.BaseResponse{
			Message: err.Error(),
		},
	)
}
