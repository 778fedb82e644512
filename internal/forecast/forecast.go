// Package forecast projects short-term prices from a series of daily closes.
package forecast

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

const (
	// MinTrendPoints is the smallest series the linear trend is fitted on.
	MinTrendPoints = 10

	heuristicStepGrowth = 0.005

	buyThresholdPercent  = 2.0
	sellThresholdPercent = -2.0
)

type Recommendation string

const (
	RecommendationBuy  Recommendation = "BUY"
	RecommendationSell Recommendation = "SELL"
	RecommendationHold Recommendation = "HOLD"
)

type Method string

const (
	MethodTrend     Method = "trend"
	MethodHeuristic Method = "heuristic"
)

var (
	ErrEmptySeries    = errors.New("price series is empty")
	ErrInvalidHorizon = errors.New("horizon must be at least 1")
	ErrNonFinite      = errors.New("forecast produced a non-finite value")
)

// PriceSeries is a chronological sequence of daily closing prices.
type PriceSeries []float64

// Clean returns a copy of prices without NaN, infinite or negative values.
func Clean(prices []float64) PriceSeries {
	out := make(PriceSeries, 0, len(prices))
	for _, p := range prices {
		if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Last returns the most recent price.
func (s PriceSeries) Last() float64 {
	return s[len(s)-1]
}

// Tail returns the n most recent prices, or the whole series when it is shorter.
func (s PriceSeries) Tail(n int) PriceSeries {
	if n <= 0 {
		return PriceSeries{}
	}
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

type Result struct {
	CurrentPrice    float64
	PredictedPrices []float64
	PredictedPrice  float64
	ChangePercent   float64
	Recommendation  Recommendation
	Method          Method
}

// Forecast predicts the next horizon prices of a cleaned series.
func Forecast(prices PriceSeries, horizon int) (Result, error) {
	if len(prices) == 0 {
		return Result{}, ErrEmptySeries
	}
	if horizon < 1 {
		return Result{}, fmt.Errorf("%w: got %d", ErrInvalidHorizon, horizon)
	}

	var (
		predicted []float64
		method    Method
	)
	if len(prices) < MinTrendPoints {
		predicted = compound(prices.Last(), horizon)
		method = MethodHeuristic
	} else {
		predicted = extrapolate(prices, horizon)
		method = MethodTrend
	}

	for i, p := range predicted {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return Result{}, fmt.Errorf("%w: step %d", ErrNonFinite, i+1)
		}
	}

	current := prices.Last()
	target := predicted[len(predicted)-1]
	change := ChangePercent(current, target)

	return Result{
		CurrentPrice:    current,
		PredictedPrices: predicted,
		PredictedPrice:  target,
		ChangePercent:   change,
		Recommendation:  Recommend(current, target),
		Method:          method,
	}, nil
}

// compound grows the last price by 0.5%, 1%, 1.5%... per step.
func compound(last float64, horizon int) []float64 {
	out := make([]float64, horizon)
	price := last
	for i := 1; i <= horizon; i++ {
		price *= 1 + heuristicStepGrowth*float64(i)
		out[i-1] = price
	}
	return out
}

// extrapolate fits price = alpha + beta*index by least squares and evaluates
// the line at the horizon indices following the series.
func extrapolate(prices PriceSeries, horizon int) []float64 {
	n := len(prices)
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}

	alpha, beta := stat.LinearRegression(xs, prices, nil, false)

	out := make([]float64, horizon)
	for i := range out {
		out[i] = alpha + beta*float64(n+i)
	}
	return out
}

// ChangePercent is the percent move from current to predicted. A zero current
// price yields 0 so the recommendation falls back to HOLD.
func ChangePercent(current, predicted float64) float64 {
	if current == 0 {
		return 0
	}
	return (predicted - current) / current * 100
}

// Recommend maps the expected move to BUY above +2%, SELL below -2% and HOLD otherwise.
func Recommend(current, predicted float64) Recommendation {
	change := ChangePercent(current, predicted)
	switch {
	case change > buyThresholdPercent:
		return RecommendationBuy
	case change < sellThresholdPercent:
		return RecommendationSell
	default:
		return RecommendationHold
	}
}
