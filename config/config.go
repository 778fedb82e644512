package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log        Logger     `mapstructure:"logger"`
	API        API        `mapstructure:"api"`
	MarketData MarketData `mapstructure:"market_data"`
	Forecast   Forecast   `mapstructure:"forecast"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type API struct {
	Host               string        `mapstructure:"host"`
	Port               int           `mapstructure:"port"`
	ShutdownTimeout    time.Duration `mapstructure:"shutdown_timeout"`
	MaxRequestPerSec   int           `mapstructure:"max_request_per_sec"`
	MaxRequestBurst    int           `mapstructure:"max_request_burst"`
	RateLimitExpiresIn time.Duration `mapstructure:"rate_limit_expires_in"`
}

type MarketData struct {
	// Provider is either "yahoo" or "mock".
	Provider            string        `mapstructure:"provider"`
	BaseURL             string        `mapstructure:"base_url"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	RequestBurst        int           `mapstructure:"request_burst"`
	LookbackDays        int           `mapstructure:"lookback_days"`
	MockUnknownTickers  []string      `mapstructure:"mock_unknown_tickers"`
}

type Forecast struct {
	HistoryWindow int `mapstructure:"history_window"`
	MaxHorizon    int `mapstructure:"max_horizon"`
}

// Address returns the host:port the HTTP server listens on.
func (a API) Address() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "json")

	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 5000)
	v.SetDefault("api.shutdown_timeout", 10*time.Second)
	v.SetDefault("api.max_request_per_sec", 10)
	v.SetDefault("api.max_request_burst", 30)
	v.SetDefault("api.rate_limit_expires_in", 3*time.Minute)

	v.SetDefault("market_data.provider", "yahoo")
	v.SetDefault("market_data.base_url", "https://query1.finance.yahoo.com/v8/finance/chart")
	v.SetDefault("market_data.timeout", 5*time.Second)
	v.SetDefault("market_data.max_request_per_minute", 60)
	v.SetDefault("market_data.request_burst", 20)
	v.SetDefault("market_data.lookback_days", 60)
	v.SetDefault("market_data.mock_unknown_tickers", []string{"BADTICKER"})

	v.SetDefault("forecast.history_window", 30)
	v.SetDefault("forecast.max_horizon", 365)
}

// Load reads config.yaml from the working directory (optional), a .env file (optional)
// and environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file loaded:", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AddConfigPath(".")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.API.Port <= 0 {
		return fmt.Errorf("invalid api port: %d", c.API.Port)
	}
	switch c.MarketData.Provider {
	case "yahoo", "mock":
	default:
		return fmt.Errorf("unknown market data provider: %q", c.MarketData.Provider)
	}
	if c.MarketData.LookbackDays <= 0 {
		return fmt.Errorf("invalid market data lookback days: %d", c.MarketData.LookbackDays)
	}
	if c.MarketData.MaxRequestPerMinute <= 0 {
		return fmt.Errorf("invalid market data max request per minute: %d", c.MarketData.MaxRequestPerMinute)
	}
	if c.MarketData.RequestBurst <= 0 {
		return fmt.Errorf("invalid market data request burst: %d", c.MarketData.RequestBurst)
	}
	if c.Forecast.HistoryWindow <= 0 {
		return fmt.Errorf("invalid forecast history window: %d", c.Forecast.HistoryWindow)
	}
	if c.Forecast.MaxHorizon <= 0 {
		return fmt.Errorf("invalid forecast max horizon: %d", c.Forecast.MaxHorizon)
	}
	return nil
}
