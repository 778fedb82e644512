package http

import (
	"net/http"

	"stock-forecast/internal/dto"
	"stock-forecast/pkg/logger"

	"github.com/labstack/echo/v4"
)

const (
	homeTemplate   = "index.html"
	homeMaxDays    = 30
	homeDefaultDay = 5
)

func (h *HttpAPIHandler) SetupHome() {
	h.echo.GET("/", h.home)
}

func (h *HttpAPIHandler) home(c echo.Context) error {
	page := dto.HomePage{
		Tickers:    dto.PopularTickers,
		MinDays:    1,
		MaxDays:    min(homeMaxDays, h.cfg.Forecast.MaxHorizon),
		DefaultDay: homeDefaultDay,
	}

	if err := c.Render(http.StatusOK, homeTemplate, page); err != nil {
		h.log.ErrorContext(c.Request().Context(), "Failed to render home page", logger.ErrorField(err))
		return c.String(http.StatusInternalServerError, "Error loading page: "+err.Error())
	}
	return nil
}
