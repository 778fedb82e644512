package dto

type GetClosingPricesParam struct {
	Ticker       string `json:"ticker"`
	LookbackDays int    `json:"lookback_days"`
	Interval     string `json:"interval"`
}

// YahooFinanceResponse is the chart endpoint payload. Quote values are pointers
// because Yahoo reports missing sessions as null.
type YahooFinanceResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				Currency           string  `json:"currency"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *YahooFinanceError `json:"error"`
	} `json:"chart"`
}

type YahooFinanceError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
