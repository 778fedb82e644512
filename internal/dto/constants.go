package dto

const (
	IntervalDaily = "1d"

	ProviderYahoo = "yahoo"
	ProviderMock  = "mock"
)

// PopularTickers is the shortlist offered on the landing page.
var PopularTickers = []string{"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA", "NVDA", "META"}
