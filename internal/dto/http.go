package dto

type ForecastRequest struct {
	Ticker string `json:"ticker" validate:"required,max=16"`
	Days   int    `json:"days" validate:"required,min=1"`
}

type ForecastResponse struct {
	Prediction     []float64 `json:"prediction"`
	HistoricalData []float64 `json:"historical_data"`
	Recommendation string    `json:"recommendation"`
	CurrentPrice   float64   `json:"current_price"`
	PredictedPrice float64   `json:"predicted_price"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type HomePage struct {
	Tickers    []string
	MinDays    int
	MaxDays    int
	DefaultDay int
}
