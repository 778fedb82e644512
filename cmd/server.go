package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	httpDelivery "stock-forecast/internal/delivery/http"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the forecast HTTP server",
	RunE:  Start,
}

func Start(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appDep, err := NewAppDependency()
	if err != nil {
		return err
	}
	defer func() {
		if err := appDep.Close(); err != nil {
			log.Printf("Failed to close app dependency: %v", err)
		}
	}()

	apiServer, err := newHTTPServer(ctx, appDep)
	if err != nil {
		return err
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(apiServer.Start)
	g.Go(func() error {
		<-gCtx.Done()
		appDep.log.Info("Shutting down gracefully...")
		return apiServer.Stop()
	})

	return g.Wait()
}

// newHTTPServer wires services and handlers onto the app's echo instance.
func newHTTPServer(ctx context.Context, appDep *AppDependency) (*HTTPServer, error) {
	services := appDep.NewServices()
	httpHandler := httpDelivery.NewHttpAPIHandler(ctx, appDep.echo, appDep.cfg, appDep.log, services)

	apiServer := NewHTTPServer(appDep, httpHandler)
	if err := apiServer.Setup(); err != nil {
		return nil, err
	}
	return apiServer, nil
}
