package service

import (
	"context"
	"fmt"
	"strings"

	"stock-forecast/config"
	"stock-forecast/internal/dto"
	"stock-forecast/internal/forecast"
	"stock-forecast/internal/repository"
	"stock-forecast/pkg/logger"

	goValidator "github.com/go-playground/validator/v10"
)

type ForecastService interface {
	// Predict forecasts the request horizon. Every failure is a *ForecastError.
	Predict(ctx context.Context, req dto.ForecastRequest) (*dto.ForecastResponse, error)
	// Fallback returns the canned response served whenever Predict fails.
	Fallback(days int) *dto.ForecastResponse
}

type forecastService struct {
	cfg            *config.Config
	log            *logger.Logger
	validator      *goValidator.Validate
	marketDataRepo repository.MarketDataRepository
}

func NewForecastService(
	cfg *config.Config,
	log *logger.Logger,
	validator *goValidator.Validate,
	marketDataRepo repository.MarketDataRepository,
) ForecastService {
	return &forecastService{
		cfg:            cfg,
		log:            log,
		validator:      validator,
		marketDataRepo: marketDataRepo,
	}
}

func (s *forecastService) Predict(ctx context.Context, req dto.ForecastRequest) (*dto.ForecastResponse, error) {
	req.Ticker = strings.ToUpper(strings.TrimSpace(req.Ticker))

	if err := s.validator.Struct(req); err != nil {
		return nil, NewForecastError(ErrorKindInput, err)
	}
	if req.Days > s.cfg.Forecast.MaxHorizon {
		return nil, NewForecastError(ErrorKindInput,
			fmt.Errorf("days %d exceeds max horizon %d", req.Days, s.cfg.Forecast.MaxHorizon))
	}

	prices, err := s.fetchPrices(ctx, req.Ticker)
	if err != nil {
		return nil, err
	}

	result, err := s.runForecast(prices, req.Days)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "Forecast computed",
		logger.StringField("ticker", req.Ticker),
		logger.IntField("days", req.Days),
		logger.IntField("points", len(prices)),
		logger.StringField("method", string(result.Method)),
		logger.Float64Field("change_percent", result.ChangePercent),
		logger.StringField("recommendation", string(result.Recommendation)),
	)

	return &dto.ForecastResponse{
		Prediction:     result.PredictedPrices,
		HistoricalData: prices.Tail(s.cfg.Forecast.HistoryWindow),
		Recommendation: string(result.Recommendation),
		CurrentPrice:   result.CurrentPrice,
		PredictedPrice: result.PredictedPrice,
	}, nil
}

func (s *forecastService) fetchPrices(ctx context.Context, ticker string) (forecast.PriceSeries, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.MarketData.Timeout)
	defer cancel()

	raw, err := s.marketDataRepo.GetClosingPrices(ctx, dto.GetClosingPricesParam{
		Ticker:       ticker,
		LookbackDays: s.cfg.MarketData.LookbackDays,
		Interval:     dto.IntervalDaily,
	})
	if err != nil {
		return nil, NewForecastError(ErrorKindDataUnavailable, err)
	}

	prices := forecast.Clean(raw)
	s.log.DebugContext(ctx, "Closing prices fetched",
		logger.StringField("ticker", ticker),
		logger.IntField("raw", len(raw)),
		logger.IntField("valid", len(prices)),
	)
	if len(prices) == 0 {
		return nil, NewForecastError(ErrorKindDataUnavailable,
			fmt.Errorf("no valid closing prices for %s (%d raw values)", ticker, len(raw)))
	}
	return prices, nil
}

func (s *forecastService) runForecast(prices forecast.PriceSeries, days int) (result forecast.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewForecastError(ErrorKindComputation, fmt.Errorf("forecast panicked: %v", r))
		}
	}()

	result, err = forecast.Forecast(prices, days)
	if err != nil {
		return forecast.Result{}, NewForecastError(ErrorKindComputation, err)
	}
	return result, nil
}

func (s *forecastService) Fallback(days int) *dto.ForecastResponse {
	if days > s.cfg.Forecast.MaxHorizon {
		days = s.cfg.Forecast.MaxHorizon
	}
	return FallbackResponse(days)
}
