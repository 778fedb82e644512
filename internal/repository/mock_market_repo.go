package repository

import (
	"context"
	"fmt"
	"strings"

	"stock-forecast/config"
	"stock-forecast/internal/dto"
)

const (
	mockBasePrice = 150.0
	mockDrift     = 0.1
	mockCycle     = 10
)

type mockMarketRepository struct {
	unknown map[string]struct{}
}

// NewMockMarketRepository returns a provider that serves a deterministic saw-tooth
// series for every ticker except the configured unknown ones, which yield no data.
func NewMockMarketRepository(cfg *config.Config) MarketDataRepository {
	unknown := make(map[string]struct{}, len(cfg.MarketData.MockUnknownTickers))
	for _, t := range cfg.MarketData.MockUnknownTickers {
		unknown[strings.ToUpper(strings.TrimSpace(t))] = struct{}{}
	}
	return &mockMarketRepository{unknown: unknown}
}

func (r *mockMarketRepository) GetClosingPrices(ctx context.Context, param dto.GetClosingPricesParam) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	symbol := strings.ToUpper(strings.TrimSpace(param.Ticker))
	if _, ok := r.unknown[symbol]; ok {
		return []float64{}, nil
	}
	if param.LookbackDays <= 0 {
		return nil, fmt.Errorf("invalid lookback days: %d", param.LookbackDays)
	}

	return MockSeries(param.LookbackDays), nil
}

// MockSeries returns n prices drifting up 0.1 per day with a ten day cycle on top.
func MockSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = mockBasePrice + float64(i)*mockDrift + float64(i%mockCycle) - 5
	}
	return out
}
