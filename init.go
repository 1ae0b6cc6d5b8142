package main

import (
	"context"

	"github.com/tournevent/shipbridge/internal/config"
	"github.com/tournevent/shipbridge/internal/telemetry"
	"github.com/tournevent/shipbridge/pkg/shipper"
	"github.com/tournevent/shipbridge/pkg/shipper/dhl"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

func loadConfig() (*config.Config, error) {
	return config.Load()
}

func initLogger(cfg *config.Config) (*otelzap.Logger, error) {
	return telemetry.NewLogger(cfg.LogLevel,
		zap.String("service", cfg.ServiceName),
		zap.String("version", cfg.Version),
	)
}

// initTracer returns a nil tracer when tracing is disabled; carriers fall back
// to a no-op tracer.
func initTracer(ctx context.Context, cfg *config.Config) (trace.Tracer, func(context.Context) error, error) {
	if !cfg.OTELEnabled {
		return nil, func(context.Context) error { return nil }, nil
	}

	return telemetry.InitTracer(ctx, cfg.OTELEndpoint, cfg.ServiceName, cfg.Version, cfg.Attributes()...)
}

func newDHLClient(cfg *config.Config, logger *otelzap.Logger, tracer trace.Tracer) *dhl.Client {
	return dhl.New(dhl.Config{
		SiteID:           cfg.DHLSiteID,
		Password:         cfg.DHLPassword,
		AccountNumber:    cfg.DHLAccountNumber,
		Endpoint:         cfg.DHLEndpoint,
		RegionCode:       cfg.DHLRegionCode,
		LabelTemplate:    cfg.DHLLabelTemplate,
		LabelImageFormat: cfg.DHLLabelImageFormat,
		ProductCode:      cfg.DHLProductCode,
		SoftwareName:     cfg.ServiceName,
		SoftwareVersion:  cfg.Version,
		UseMock:          cfg.DHLUseMock,
		Timeout:          cfg.DHLTimeout,
	}, logger, tracer)
}

func initShipperRegistry(cfg *config.Config, logger *otelzap.Logger, tracer trace.Tracer) *shipper.Registry {
	registry := shipper.NewRegistry()

	// Register enabled carriers
	if cfg.DHLEnabled {
		registry.Register(newDHLClient(cfg, logger, tracer))
	}

	return registry
}
