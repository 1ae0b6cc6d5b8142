package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tournevent/shipbridge/internal/graphql"
	"github.com/tournevent/shipbridge/pkg/shipper"
	"github.com/tournevent/shipbridge/pkg/shipper/dhl"
	"go.uber.org/zap"
)

func runShip(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	carrier, _ := cmd.Flags().GetString("carrier")
	outDir, _ := cmd.Flags().GetString("out")
	concurrency, _ := cmd.Flags().GetInt("concurrency")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if concurrency <= 0 {
		concurrency = cfg.ShipConcurrency
	}

	logger, err := initLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	reqs, err := readShipmentFiles(args)
	if err != nil {
		return err
	}

	if dryRun {
		return printRequests(cmd, newDHLClient(cfg, logger, nil), reqs)
	}

	tracer, tracerShutdown, err := initTracer(ctx, cfg)
	if err != nil {
		logger.Warn("Failed to initialize tracer", zap.Error(err))
	} else {
		defer tracerShutdown(ctx)
	}

	registry := initShipperRegistry(cfg, logger, tracer)
	results, errs := registry.CreateShipments(ctx, carrier, reqs, concurrency)

	failed := 0
	for i, res := range results {
		if errs[i] != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", args[i], errs[i])
			continue
		}
		path, err := writeLabel(outDir, labelExtension(cfg.DHLLabelImageFormat), res)
		if err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", args[i], err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", args[i], res.TrackingNumber, path)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d shipments failed", failed, len(results))
	}
	return nil
}

func readShipmentFiles(paths []string) ([]*shipper.ShipmentRequest, error) {
	reqs := make([]*shipper.ShipmentRequest, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		var input graphql.CreateShipmentInput
		if err := json.Unmarshal(data, &input); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", p, err)
		}
		req, err := graphql.ToShipmentRequest(input)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// printRequests writes the DHL request documents without contacting the carrier.
func printRequests(cmd *cobra.Command, client *dhl.Client, reqs []*shipper.ShipmentRequest) error {
	for _, req := range reqs {
		body, err := client.BuildRequest(req)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(body))
	}
	return nil
}

// labelExtension maps a DHL label image format to a file extension.
func labelExtension(format string) string {
	switch strings.ToUpper(strings.TrimSpace(format)) {
	case "", "PDF":
		return ".pdf"
	case "ZPL", "ZPL2":
		return ".zpl"
	case "EPL", "EPL2":
		return ".epl"
	default:
		return "." + strings.ToLower(strings.TrimSpace(format))
	}
}

func writeLabel(dir, ext string, res *shipper.ShipmentResult) (string, error) {
	if len(res.Label) == 0 {
		return "", errors.New("carrier returned no label")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, res.TrackingNumber+ext)
	if err := os.WriteFile(path, res.Label, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
