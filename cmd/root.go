package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stock-forecast",
	Short: "Short-term stock price forecasts over HTTP",
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(forecastCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
