package middleware

import (
	"stock-forecast/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// NewContextLogger stores a request scoped logger, tagged with the request id,
// in the request context. Must run after middleware.RequestID.
func NewContextLogger(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Response().Header().Get(echo.HeaderXRequestID)
			reqLog := log.With(logger.StringField("request_id", requestID))

			req := c.Request()
			c.SetRequest(req.WithContext(logger.NewContext(req.Context(), reqLog)))
			return next(c)
		}
	}
}

// NewRequestLogger writes one access log line per request.
func NewRequestLogger(log *logger.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []logger.Field{
				logger.StringField("method", v.Method),
				logger.StringField("uri", v.URI),
				logger.IntField("status", v.Status),
				logger.DurationField("latency", v.Latency),
				logger.StringField("remote_ip", v.RemoteIP),
				logger.StringField("request_id", v.RequestID),
			}
			if v.Error != nil {
				fields = append(fields, logger.ErrorField(v.Error))
				log.Error("HTTP request failed", fields...)
				return nil
			}
			log.Info("HTTP request", fields...)
			return nil
		},
	})
}
