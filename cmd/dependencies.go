package cmd

import (
	"stock-forecast/config"
	"stock-forecast/internal/repository"
	"stock-forecast/internal/service"
	"stock-forecast/pkg/logger"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type AppDependency struct {
	cfg       *config.Config
	log       *logger.Logger
	validator *goValidator.Validate
	echo      *echo.Echo
}

func NewAppDependency() (*AppDependency, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return nil, err
	}

	return newAppDependency(cfg, log), nil
}

func newAppDependency(cfg *config.Config, log *logger.Logger) *AppDependency {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	return &AppDependency{
		cfg:       cfg,
		log:       log,
		validator: goValidator.New(),
		echo:      e,
	}
}

// NewServices wires the repository and service layers.
func (d *AppDependency) NewServices() *service.Service {
	repo := repository.NewRepository(d.cfg, d.log)
	return service.NewService(d.cfg, d.log, d.validator, repo)
}

func (d *AppDependency) Close() error {
	d.log.Info("Closing app dependency")
	// stderr/stdout sinks return EINVAL on sync for some platforms
	_ = d.log.Sync()
	return nil
}
