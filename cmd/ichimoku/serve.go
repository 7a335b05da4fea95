package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newthinker/ichimoku-dashboard/internal/api"
	"github.com/newthinker/ichimoku-dashboard/internal/logger"
	"github.com/newthinker/ichimoku-dashboard/internal/metrics"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var templatesDir string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&templatesDir, "templates", "", "load HTML templates from this directory instead of the embedded set")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// Initialize logger
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	var reg *metrics.Registry
	metricsPath := ""
	if cfg.Metrics.Enabled {
		reg = metrics.NewRegistry()
		metricsPath = cfg.Metrics.Path
	}

	reader, err := newReader(cfg, log, reg)
	if err != nil {
		return err
	}

	log.Info("starting dashboard server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.String("snapshot_source", cfg.Snapshot.Source.Type),
		zap.String("snapshot_key", reader.Key()),
		zap.String("timezone", cfg.Display.Location().String()),
		zap.Bool("api_auth", cfg.Server.APIKey != ""),
	)

	server, err := api.NewServer(api.Config{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		APIKey:       cfg.Server.APIKey,
		TemplatesDir: templatesDir,
		MetricsPath:  metricsPath,
	}, api.Dependencies{
		Snapshots:     reader,
		Presence:      reader,
		Metrics:       reg,
		Location:      cfg.Display.Location(),
		SignalDefault: cfg.Display.OnlyWithSignalDefault,
	}, log)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	log.Info("shutting down dashboard server")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return server.Shutdown(ctx)
}
