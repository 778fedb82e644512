package cmd

import (
	"context"
	"errors"
	"net/http"

	httpDelivery "stock-forecast/internal/delivery/http"
	"stock-forecast/pkg/logger"
	"stock-forecast/pkg/middleware"
	"stock-forecast/web"

	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

type HTTPServer struct {
	appDep  *AppDependency
	handler *httpDelivery.HttpAPIHandler
}

func NewHTTPServer(appDep *AppDependency, handler *httpDelivery.HttpAPIHandler) *HTTPServer {
	return &HTTPServer{
		appDep:  appDep,
		handler: handler,
	}
}

func (s *HTTPServer) Setup() error {
	e := s.appDep.echo
	api := s.appDep.cfg.API

	renderer, err := httpDelivery.NewTemplateRenderer(web.Templates, "templates/*.html")
	if err != nil {
		return err
	}
	e.Renderer = renderer

	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestID())
	e.Use(middleware.NewContextLogger(s.appDep.log))
	e.Use(middleware.NewRequestLogger(s.appDep.log))
	// /predict answers 200 with a body for every request, so it is not throttled here
	e.Use(middleware.NewRateLimiterMiddleware(api.MaxRequestPerSec, api.MaxRequestBurst, api.RateLimitExpiresIn,
		httpDelivery.PredictPath))

	s.handler.SetupRoutes()
	return s.handler.SetupStatic()
}

// Start blocks until the server stops. A graceful shutdown is not an error.
func (s *HTTPServer) Start() error {
	address := s.appDep.cfg.API.Address()
	s.appDep.log.Info("Starting HTTP server", logger.StringField("address", address))

	if err := s.appDep.echo.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *HTTPServer) Stop() error {
	s.appDep.log.Info("Shutting down HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), s.appDep.cfg.API.ShutdownTimeout)
	defer cancel()

	if err := s.appDep.echo.Shutdown(ctx); err != nil {
		s.appDep.log.Warn("Timeout while stopping HTTP server, forcing shutdown", logger.ErrorField(err))
		return s.appDep.echo.Close()
	}

	s.appDep.log.Info("HTTP server stopped successfully")
	return nil
}
