package http

import (
	"net/http"

	"stock-forecast/internal/dto"
	"stock-forecast/internal/service"
	"stock-forecast/pkg/logger"

	"github.com/labstack/echo/v4"
)

const PredictPath = "/predict"

func (h *HttpAPIHandler) SetupPredict() {
	h.echo.POST(PredictPath, h.predict)
}

// predict always answers 200. Failures of any kind are logged and replaced by
// the canned fallback body.
func (h *HttpAPIHandler) predict(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.ForecastRequest)
	if err := c.Bind(req); err != nil {
		return h.fallback(c, req, service.NewForecastError(service.ErrorKindInput, err))
	}

	result, err := h.service.ForecastService.Predict(ctx, *req)
	if err != nil {
		return h.fallback(c, req, err)
	}

	return c.JSON(http.StatusOK, result)
}

func (h *HttpAPIHandler) fallback(c echo.Context, req *dto.ForecastRequest, err error) error {
	ctx := c.Request().Context()
	fields := []logger.Field{
		logger.StringField("ticker", req.Ticker),
		logger.IntField("days", req.Days),
		logger.StringField("kind", string(service.KindOf(err))),
		logger.ErrorField(err),
	}

	switch service.KindOf(err) {
	case service.ErrorKindInput:
		h.log.WarnContext(ctx, "Invalid forecast request, serving fallback", fields...)
	case service.ErrorKindDataUnavailable:
		h.log.WarnContext(ctx, "Market data unavailable, serving fallback", fields...)
	default:
		h.log.ErrorContext(ctx, "Forecast failed, serving fallback", fields...)
	}

	return c.JSON(http.StatusOK, h.service.ForecastService.Fallback(req.Days))
}
