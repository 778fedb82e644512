package http

import (
	"context"
	"io/fs"
	"net/http"

	"stock-forecast/config"
	"stock-forecast/internal/dto"
	"stock-forecast/internal/service"
	"stock-forecast/pkg/logger"
	"stock-forecast/web"

	"github.com/labstack/echo/v4"
)

type HttpAPIHandler struct {
	echo    *echo.Echo
	cfg     *config.Config
	log     *logger.Logger
	service *service.Service
}

func NewHttpAPIHandler(ctx context.Context, echo *echo.Echo, cfg *config.Config, log *logger.Logger, service *service.Service) *HttpAPIHandler {
	return &HttpAPIHandler{
		echo:    echo,
		cfg:     cfg,
		log:     log,
		service: service,
	}
}

func (h *HttpAPIHandler) SetupRoutes() {
	h.SetupHome()
	h.SetupPredict()
	h.echo.GET("/health", h.health)
}

// SetupStatic serves the embedded landing page assets under /static.
func (h *HttpAPIHandler) SetupStatic() error {
	static, err := fs.Sub(web.Static, "static")
	if err != nil {
		return err
	}
	h.echo.StaticFS("/static", static)
	return nil
}

func (h *HttpAPIHandler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}
