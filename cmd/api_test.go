package cmd

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"stock-forecast/config"
	"stock-forecast/internal/dto"
	"stock-forecast/internal/service"
	"stock-forecast/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Log: config.Logger{Level: "info", Encoding: "json"},
		API: config.API{
			Host:               "127.0.0.1",
			Port:               5000,
			ShutdownTimeout:    time.Second,
			MaxRequestPerSec:   10,
			MaxRequestBurst:    30,
			RateLimitExpiresIn: 3 * time.Minute,
		},
		MarketData: config.MarketData{
			Provider:            dto.ProviderMock,
			Timeout:             time.Second,
			MaxRequestPerMinute: 60,
			RequestBurst:        20,
			LookbackDays:        60,
			MockUnknownTickers:  []string{"BADTICKER"},
		},
		Forecast: config.Forecast{HistoryWindow: 30, MaxHorizon: 365},
	}
}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	appDep := newAppDependency(testConfig(), logger.NewNop())

	_, err := newHTTPServer(context.Background(), appDep)
	require.NoError(t, err)
	return appDep.echo
}

func serve(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.RemoteAddr = "192.0.2.10:4321"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHTTPServer_PredictAlwaysOKUnderLoad(t *testing.T) {
	e := newTestServer(t)

	hist := make(map[int]int)
	for i := 0; i < 40; i++ {
		rec := serve(e, http.MethodPost, "/predict", `{"ticker":"AAPL","days":3}`)
		hist[rec.Code]++

		var resp dto.ForecastResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Prediction, 3)
		assert.Contains(t, []string{"BUY", "SELL", "HOLD"}, resp.Recommendation)
	}

	assert.Equal(t, map[int]int{http.StatusOK: 40}, hist)
}

func TestHTTPServer_PredictFallback(t *testing.T) {
	e := newTestServer(t)

	rec := serve(e, http.MethodPost, "/predict", `{"ticker":"BADTICKER","days":3}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.ForecastResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, *service.FallbackResponse(3), resp)
}

func TestHTTPServer_RoutesAndMiddleware(t *testing.T) {
	e := newTestServer(t)

	home := serve(e, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, home.Code)
	assert.Contains(t, home.Body.String(), "Stock Forecast")
	assert.NotEmpty(t, home.Header().Get(echo.HeaderXRequestID))

	script := serve(e, http.MethodGet, "/static/script.js", "")
	assert.Equal(t, http.StatusOK, script.Code)

	limited := 0
	for i := 0; i < 40; i++ {
		if serve(e, http.MethodGet, "/health", "").Code == http.StatusTooManyRequests {
			limited++
		}
	}
	assert.Positive(t, limited)
}
