package service

import (
	"stock-forecast/config"
	"stock-forecast/internal/repository"
	"stock-forecast/pkg/logger"

	goValidator "github.com/go-playground/validator/v10"
)

type Service struct {
	ForecastService ForecastService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	validator *goValidator.Validate,
	repo *repository.Repository,
) *Service {
	return &Service{
		ForecastService: NewForecastService(cfg, log, validator, repo.MarketDataRepo),
	}
}
