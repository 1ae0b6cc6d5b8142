package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.opentelemetry.io/otel/attribute"
)

// Config holds all configuration for the service.
type Config struct {
	// Server
	Port     int    `envconfig:"PORT" default:"80"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// DHL Express XML-PI
	DHLSiteID           string        `envconfig:"DHL_SITE_ID"`
	DHLPassword         string        `envconfig:"DHL_PASSWORD"`
	DHLAccountNumber    string        `envconfig:"DHL_ACCOUNT_NUMBER"`
	DHLEndpoint         string        `envconfig:"DHL_ENDPOINT" default:"https://xmlpi-ea.dhl.com/XMLShippingServlet"`
	DHLRegionCode       string        `envconfig:"DHL_REGION_CODE" default:"AM"`
	DHLProductCode      string        `envconfig:"DHL_PRODUCT_CODE" default:"P"`
	DHLLabelTemplate    string        `envconfig:"DHL_LABEL_TEMPLATE" default:"8X4_A4_PDF"`
	DHLLabelImageFormat string        `envconfig:"DHL_LABEL_IMAGE_FORMAT" default:"PDF"`
	DHLTimeout          time.Duration `envconfig:"DHL_TIMEOUT" default:"30s"`
	DHLEnabled          bool          `envconfig:"DHL_ENABLED" default:"true"`
	DHLUseMock          bool          `envconfig:"DHL_USE_MOCK" default:"false"`

	// Batch submissions from the CLI
	ShipConcurrency int `envconfig:"SHIP_CONCURRENCY" default:"4"`

	// Telemetry
	OTELEnabled  bool   `envconfig:"OTEL_ENABLED" default:"true"`
	OTELEndpoint string `envconfig:"OTEL_ENDPOINT" default:"http://localhost:4318"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"shipbridge"`
	Version      string `envconfig:"SERVICE_VERSION" default:"0.0.1"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports settings that would make every DHL request fail.
func (c *Config) Validate() error {
	if !c.DHLEnabled || c.DHLUseMock {
		return nil
	}
	if c.DHLSiteID == "" || c.DHLPassword == "" || c.DHLAccountNumber == "" {
		return fmt.Errorf("loading config: DHL_SITE_ID, DHL_PASSWORD and DHL_ACCOUNT_NUMBER are required unless DHL_USE_MOCK is set")
	}
	return nil
}

// Attributes returns OpenTelemetry attributes for this configuration.
func (c *Config) Attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("service.name", c.ServiceName),
		attribute.String("service.version", c.Version),
		attribute.Bool("dhl.enabled", c.DHLEnabled),
		attribute.Bool("dhl.mock", c.DHLUseMock),
		attribute.String("dhl.region", c.DHLRegionCode),
	}
}
