package apis

import (
	"calendar-backend/cmd/calendar/model"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// HeaderUserID carries the caller identity set by the authenticating gateway.
const HeaderUserID = "X-User-ID"

const ownerKey = "owner_id"

var (
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	requestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
)

// RequireOwner rejects requests without a valid X-User-ID header and stores
// the owner id on the context.
func RequireOwner() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(HeaderUserID)
			if _, err := uuid.Parse(id); err != nil {
				return c.JSON(
					http.StatusUnauthorized,
					model.BaseResponse{
						Message: "unauthorized",
					},
				)
			}
			c.Set(ownerKey, id)
			return next(c)
		}
	}
}

func ownerID(c echo.Context) string {
	id, _ := c.Get(ownerKey).(string)
	return id
}

func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			if err := next(c); err != nil {
				c.Error(err)
			}

			status := strconv.Itoa(c.Response().Status)
			method := c.Request().Method
			path := c.Path()

			requestDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())
			requestTotal.WithLabelValues(method, path, status).Inc()

			return nil
		}
	}
}

func RequestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			if err := next(c); err != nil {
				c.Error(err)
			}

			log.Info("request completed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("client_ip", c.RealIP()))

			return nil
		}
	}
}
