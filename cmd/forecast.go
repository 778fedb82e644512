package cmd

import (
	"encoding/json"
	"os"

	"stock-forecast/internal/dto"
	"stock-forecast/internal/service"
	"stock-forecast/pkg/logger"

	"github.com/spf13/cobra"
)

var (
	forecastTicker string
	forecastDays   int
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Print a single forecast as JSON",
	RunE:  RunForecast,
}

func init() {
	forecastCmd.Flags().StringVarP(&forecastTicker, "ticker", "t", "", "ticker symbol, e.g. AAPL")
	forecastCmd.Flags().IntVarP(&forecastDays, "days", "d", service.DefaultFallbackDays, "forecast horizon in days")
	_ = forecastCmd.MarkFlagRequired("ticker")
}

// RunForecast goes through the same service path as POST /predict, including
// the fallback on failure.
func RunForecast(cmd *cobra.Command, args []string) error {
	appDep, err := NewAppDependency()
	if err != nil {
		return err
	}
	defer appDep.Close()

	svc := appDep.NewServices().ForecastService
	ctx := cmd.Context()

	resp, err := svc.Predict(ctx, dto.ForecastRequest{Ticker: forecastTicker, Days: forecastDays})
	if err != nil {
		appDep.log.WarnContext(ctx, "Forecast failed, printing fallback",
			logger.StringField("kind", string(service.KindOf(err))),
			logger.ErrorField(err))
		resp = svc.Fallback(forecastDays)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
