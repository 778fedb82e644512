package repository

import (
	"stock-forecast/config"
	"stock-forecast/internal/dto"
	"stock-forecast/pkg/logger"
)

type Repository struct {
	MarketDataRepo MarketDataRepository
}

func NewRepository(cfg *config.Config, log *logger.Logger) *Repository {
	var marketDataRepo MarketDataRepository
	switch cfg.MarketData.Provider {
	case dto.ProviderMock:
		marketDataRepo = NewMockMarketRepository(cfg)
	default:
		marketDataRepo = NewYahooFinanceRepository(cfg, log)
	}

	log.Info("Market data provider selected", logger.StringField("provider", cfg.MarketData.Provider))

	return &Repository{
		MarketDataRepo: marketDataRepo,
	}
}
