package service

import (
	"errors"
	"fmt"

	"stock-forecast/internal/dto"
	"stock-forecast/internal/forecast"
)

const DefaultFallbackDays = 5

var (
	fallbackPrediction = [...]float64{155.0, 156.0, 157.0, 158.0, 159.0}
	fallbackHistorical = [...]float64{150.0, 151.0, 152.0, 153.0, 154.0}
)

const fallbackCurrentPrice = 154.0

type ErrorKind string

const (
	ErrorKindInput           ErrorKind = "input"
	ErrorKindDataUnavailable ErrorKind = "data_unavailable"
	ErrorKindComputation     ErrorKind = "computation"
)

// ForecastError tells the caller which step of a prediction failed.
type ForecastError struct {
	Kind ErrorKind
	Err  error
}

func NewForecastError(kind ErrorKind, err error) *ForecastError {
	return &ForecastError{Kind: kind, Err: err}
}

func (e *ForecastError) Error() string {
	return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
}

func (e *ForecastError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a *ForecastError in err's chain, or computation
// for anything unclassified.
func KindOf(err error) ErrorKind {
	var fe *ForecastError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ErrorKindComputation
}

// FallbackResponse builds the canned HOLD response. Horizons past the canned
// five steps repeat the last value; a horizon below 1 is treated as 5.
func FallbackResponse(days int) *dto.ForecastResponse {
	if days < 1 {
		days = DefaultFallbackDays
	}

	last := len(fallbackPrediction) - 1
	prediction := make([]float64, days)
	for i := range prediction {
		prediction[i] = fallbackPrediction[min(i, last)]
	}

	return &dto.ForecastResponse{
		Prediction:     prediction,
		HistoricalData: append([]float64(nil), fallbackHistorical[:]...),
		Recommendation: string(forecast.RecommendationHold),
		CurrentPrice:   fallbackCurrentPrice,
		PredictedPrice: fallbackPrediction[min(days-1, last)],
	}
}
