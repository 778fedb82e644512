package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"stock-forecast/config"
	"stock-forecast/internal/dto"
	"stock-forecast/internal/forecast"
	"stock-forecast/internal/repository"
	"stock-forecast/pkg/logger"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubMarketDataRepo struct {
	prices    []float64
	err       error
	calls     int
	lastParam dto.GetClosingPricesParam
	deadline  bool
}

func (s *stubMarketDataRepo) GetClosingPrices(ctx context.Context, param dto.GetClosingPricesParam) ([]float64, error) {
	s.calls++
	s.lastParam = param
	_, s.deadline = ctx.Deadline()
	return s.prices, s.err
}

func testConfig() *config.Config {
	return &config.Config{
		MarketData: config.MarketData{
			Timeout:      time.Second,
			LookbackDays: 60,
		},
		Forecast: config.Forecast{
			HistoryWindow: 30,
			MaxHorizon:    365,
		},
	}
}

func newTestService(repo repository.MarketDataRepository) ForecastService {
	return NewForecastService(testConfig(), logger.NewNop(), goValidator.New(), repo)
}

func TestForecastService_PredictSuccess(t *testing.T) {
	repo := &stubMarketDataRepo{prices: repository.MockSeries(60)}
	svc := newTestService(repo)

	got, err := svc.Predict(context.Background(), dto.ForecastRequest{Ticker: " mock ", Days: 5})
	require.NoError(t, err)

	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, "MOCK", repo.lastParam.Ticker)
	assert.Equal(t, 60, repo.lastParam.LookbackDays)
	assert.Equal(t, dto.IntervalDaily, repo.lastParam.Interval)
	assert.True(t, repo.deadline, "fetch must run under a timeout")

	require.Len(t, got.Prediction, 5)
	assert.Len(t, got.HistoricalData, 30)
	assert.Equal(t, repo.prices[59], got.CurrentPrice)
	assert.Equal(t, repo.prices[30:], got.HistoricalData)
	assert.Equal(t, got.Prediction[4], got.PredictedPrice)
	assert.Equal(t, string(forecast.Recommend(got.CurrentPrice, got.PredictedPrice)), got.Recommendation)
}

func TestForecastService_PredictFiltersInvalidPrices(t *testing.T) {
	repo := &stubMarketDataRepo{prices: []float64{math.NaN(), 10, math.Inf(1), 11, 12}}
	svc := newTestService(repo)

	got, err := svc.Predict(context.Background(), dto.ForecastRequest{Ticker: "ABC", Days: 2})
	require.NoError(t, err)

	assert.Equal(t, []float64{10, 11, 12}, got.HistoricalData)
	assert.Equal(t, 12.0, got.CurrentPrice)
	require.Len(t, got.Prediction, 2)
	assert.Greater(t, got.Prediction[1], got.Prediction[0])
}

func TestForecastService_PredictFailures(t *testing.T) {
	tests := []struct {
		name     string
		repo     *stubMarketDataRepo
		req      dto.ForecastRequest
		wantKind ErrorKind
		calls    int
	}{
		{
			name:     "missing ticker",
			repo:     &stubMarketDataRepo{prices: repository.MockSeries(60)},
			req:      dto.ForecastRequest{Days: 3},
			wantKind: ErrorKindInput,
		},
		{
			name:     "missing days",
			repo:     &stubMarketDataRepo{prices: repository.MockSeries(60)},
			req:      dto.ForecastRequest{Ticker: "AAPL"},
			wantKind: ErrorKindInput,
		},
		{
			name:     "negative days",
			repo:     &stubMarketDataRepo{prices: repository.MockSeries(60)},
			req:      dto.ForecastRequest{Ticker: "AAPL", Days: -1},
			wantKind: ErrorKindInput,
		},
		{
			name:     "days above max horizon",
			repo:     &stubMarketDataRepo{prices: repository.MockSeries(60)},
			req:      dto.ForecastRequest{Ticker: "AAPL", Days: 366},
			wantKind: ErrorKindInput,
		},
		{
			name:     "provider error",
			repo:     &stubMarketDataRepo{err: errors.New("connection refused")},
			req:      dto.ForecastRequest{Ticker: "AAPL", Days: 3},
			wantKind: ErrorKindDataUnavailable,
			calls:    1,
		},
		{
			name:     "empty series",
			repo:     &stubMarketDataRepo{prices: []float64{}},
			req:      dto.ForecastRequest{Ticker: "BADTICKER", Days: 3},
			wantKind: ErrorKindDataUnavailable,
			calls:    1,
		},
		{
			name:     "only invalid values",
			repo:     &stubMarketDataRepo{prices: []float64{math.NaN(), math.Inf(-1)}},
			req:      dto.ForecastRequest{Ticker: "AAPL", Days: 3},
			wantKind: ErrorKindDataUnavailable,
			calls:    1,
		},
		{
			name:     "non finite fit",
			repo:     &stubMarketDataRepo{prices: []float64{math.MaxFloat64, math.MaxFloat64, math.MaxFloat64, math.MaxFloat64, math.MaxFloat64, math.MaxFloat64, math.MaxFloat64, math.MaxFloat64, math.MaxFloat64, math.MaxFloat64}},
			req:      dto.ForecastRequest{Ticker: "AAPL", Days: 3},
			wantKind: ErrorKindComputation,
			calls:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(tt.repo)

			got, err := svc.Predict(context.Background(), tt.req)
			require.Error(t, err)
			assert.Nil(t, got)

			var fe *ForecastError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.wantKind, fe.Kind)
			assert.Equal(t, tt.wantKind, KindOf(err))
			assert.Equal(t, tt.calls, tt.repo.calls)
		})
	}
}

func TestForecastService_FallbackClampsToMaxHorizon(t *testing.T) {
	svc := newTestService(&stubMarketDataRepo{})

	got := svc.Fallback(1000)
	assert.Len(t, got.Prediction, 365)
	assert.Equal(t, 159.0, got.PredictedPrice)
}

func TestForecastService_LogsFetchedPriceCounts(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	repo := &stubMarketDataRepo{prices: []float64{math.NaN(), 10, 11, math.Inf(1), 12}}
	svc := NewForecastService(testConfig(), &logger.Logger{Logger: zap.New(core)}, goValidator.New(), repo)

	_, err := svc.Predict(context.Background(), dto.ForecastRequest{Ticker: "ABC", Days: 2})
	require.NoError(t, err)

	fetched := logs.FilterMessage("Closing prices fetched").All()
	require.Len(t, fetched, 1)
	assert.Equal(t, zapcore.DebugLevel, fetched[0].Level)

	fields := fetched[0].ContextMap()
	assert.Equal(t, "ABC", fields["ticker"])
	assert.EqualValues(t, 5, fields["raw"])
	assert.EqualValues(t, 3, fields["valid"])
}
