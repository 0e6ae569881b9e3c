package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"beerbot/internal/api"
	"beerbot/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the decision HTTP service",
	Long: `Starts the HTTP service the game simulator talks to.

Endpoints:
  POST /api/decision  - handshake and weekly orders
  GET  /healthz       - health check`,
	RunE: runServe,
}

var servePort string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&servePort, "port", "", "listen port (overrides PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, policy, err := loadPolicy()
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.Port = servePort
	}

	log := logger.New(cfg)
	p := policy.Params()
	log.WithFields(map[string]interface{}{
		"smoothing_window":       p.SmoothingWindow,
		"weeks_of_supply_target": p.WeeksOfSupplyTarget,
		"correction_factor":      p.CorrectionFactor,
		"supply_lead_time":       p.SupplyLeadTime,
		"default_order":          p.DefaultOrder,
		"policy_file":            cfg.PolicyFile,
	}).Info("Policy loaded")

	handler := api.NewDecisionHandler(cfg, policy, log)
	server := api.New(cfg, log, api.NewRouter(cfg, handler, log))

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info("Server stopped")
	return nil
}
