package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tournevent/shipbridge/internal/server"
	"go.uber.org/zap"
)

var version = "0.0.1"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "shipbridge",
	Short:   "Shipbridge - DHL Express shipment booking service",
	Version: version,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the GraphQL server",
	RunE:  runServe,
}

var shipCmd = &cobra.Command{
	Use:   "ship FILE...",
	Short: "Book shipments described by JSON files and write their labels",
	Long: `Each FILE holds one createShipment input as JSON. Shipments are booked
concurrently and each label is written as <awb>.<format> in the output directory,
the extension following DHL_LABEL_IMAGE_FORMAT.
With --dry-run the DHL request document is printed instead of being submitted.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runShip,
}

func init() {
	shipCmd.Flags().Bool("dry-run", false, "print the request XML without submitting")
	shipCmd.Flags().String("carrier", "dhl", "carrier to book with")
	shipCmd.Flags().String("out", ".", "directory for labels")
	shipCmd.Flags().Int("concurrency", 0, "parallel submissions (default: SHIP_CONCURRENCY)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(shipCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Initialize telemetry
	logger, err := initLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	tracer, tracerShutdown, err := initTracer(ctx, cfg)
	if err != nil {
		logger.Warn("Failed to initialize tracer", zap.Error(err))
	} else {
		defer tracerShutdown(context.Background())
	}

	registry := initShipperRegistry(cfg, logger, tracer)

	logger.Info("Starting Shipbridge",
		zap.Int("port", cfg.Port),
		zap.String("version", cfg.Version),
		zap.Strings("carriers", registry.Names()),
	)

	// Start HTTP server
	srv := server.New(server.Config{Port: cfg.Port}, registry, logger)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
