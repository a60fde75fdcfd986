package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dwkang/goalplanner/internal/api"
	"github.com/dwkang/goalplanner/internal/api/handlers"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the REST API server",
	Long: `Starts the REST API server.

Endpoints:
  GET  /health                               - Health check
  GET  /api/instruments/{symbol}/metrics     - Metrics for one instrument
  GET  /api/instruments/{symbol}/forecast    - Trend forecast
  POST /api/recommend                        - Goal recommendation
  POST /api/data/collect                     - Trigger price collection

Example:
  go run ./cmd/planner api
  go run ./cmd/planner api --port 8080`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rt, err := buildRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.close()

	if apiPort != "" {
		rt.cfg.Port = apiPort
	}

	instrumentHandler := handlers.NewInstrumentHandler(rt.advisor, rt.log)
	recommendHandler := handlers.NewRecommendHandler(rt.advisor, rt.cfg.DefaultSymbols, rt.log)
	dataHandler := handlers.NewDataHandler(rt.advisor, rt.cfg.DefaultSymbols, rt.log)

	router := api.NewRouter(instrumentHandler, recommendHandler, dataHandler, rt.log)
	server := api.New(rt.cfg, rt.log, router)

	go func() {
		if err := server.Start(); err != nil {
			rt.log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("Server running on http://localhost:%s (Ctrl+C to stop)\n", rt.cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	rt.log.Info("Server stopped")
	return nil
}
