package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"stock-forecast/config"
	"stock-forecast/internal/dto"
	"stock-forecast/pkg/httpclient"
	"stock-forecast/pkg/logger"

	"golang.org/x/time/rate"
)

var ErrNoData = errors.New("no price data available")

// MarketDataRepository returns chronological daily closing prices for a ticker.
type MarketDataRepository interface {
	GetClosingPrices(ctx context.Context, param dto.GetClosingPricesParam) ([]float64, error)
}

type yahooFinanceRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
	now            func() time.Time
}

// NewYahooFinanceRepository creates a repository backed by the Yahoo Finance chart API.
func NewYahooFinanceRepository(cfg *config.Config, log *logger.Logger) MarketDataRepository {
	return newYahooFinanceRepository(cfg, log, httpclient.New(cfg.MarketData.BaseURL, cfg.MarketData.Timeout))
}

func newYahooFinanceRepository(cfg *config.Config, log *logger.Logger, client httpclient.HTTPClient) *yahooFinanceRepository {
	perRequest := time.Minute / time.Duration(cfg.MarketData.MaxRequestPerMinute)

	return &yahooFinanceRepository{
		httpClient:     client,
		cfg:            cfg,
		logger:         log,
		requestLimiter: rate.NewLimiter(rate.Every(perRequest), cfg.MarketData.RequestBurst),
		now:            time.Now,
	}
}

func (r *yahooFinanceRepository) GetClosingPrices(ctx context.Context, param dto.GetClosingPricesParam) ([]float64, error) {
	if !r.requestLimiter.Allow() {
		r.logger.WarnContext(ctx, "Yahoo Finance request limit reached, waiting for a token",
			logger.IntField("max_request_per_minute", r.cfg.MarketData.MaxRequestPerMinute),
		)
		if err := r.requestLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("yahoo finance rate limiter: %w", err)
		}
	}

	symbol := strings.ToUpper(strings.TrimSpace(param.Ticker))
	endpoint := "/" + url.PathEscape(symbol)

	interval := param.Interval
	if interval == "" {
		interval = dto.IntervalDaily
	}

	now := r.now()
	queryParams := map[string]string{
		"period1":        fmt.Sprintf("%d", now.AddDate(0, 0, -param.LookbackDays).Unix()),
		"period2":        fmt.Sprintf("%d", now.Unix()),
		"interval":       interval,
		"includePrePost": "false",
	}

	headers := map[string]string{
		"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/120.0.0.0 Safari/537.36",
		"Accept":          "application/json, text/plain, */*",
		"Accept-Language": "en-US,en;q=0.9",
	}

	var yahooResp dto.YahooFinanceResponse
	resp, err := r.httpClient.Get(ctx, endpoint, queryParams, headers, &yahooResp)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data from yahoo finance: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.WarnContext(ctx, "Yahoo Finance API returned Non-OK status",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("symbol", symbol))
		return nil, fmt.Errorf("yahoo finance api returned status: %d", resp.StatusCode)
	}

	if yahooResp.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo finance api error: %s", yahooResp.Chart.Error.Description)
	}

	if len(yahooResp.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w for symbol: %s", ErrNoData, symbol)
	}

	result := yahooResp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w for symbol: %s", ErrNoData, symbol)
	}

	closes := make([]float64, 0, len(result.Indicators.Quote[0].Close))
	for _, c := range result.Indicators.Quote[0].Close {
		if c == nil {
			continue
		}
		closes = append(closes, *c)
	}

	return closes, nil
}
