// Package dhl provides integration with the DHL Express XML-PI shipping API.
package dhl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tournevent/shipbridge/pkg/payload"
	"github.com/tournevent/shipbridge/pkg/shipper"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

const carrierName = "dhl"

// Config holds DHL configuration.
type Config struct {
	SiteID           string
	Password         string
	AccountNumber    string
	Endpoint         string
	RegionCode       string
	LabelTemplate    string
	LabelImageFormat string
	ProductCode      string
	SoftwareName     string
	SoftwareVersion  string
	UseMock          bool
	Timeout          time.Duration
}

func (c Config) credentials() Credentials {
	return Credentials{
		SiteID:        c.SiteID,
		Password:      c.Password,
		AccountNumber: c.AccountNumber,
	}
}

func (c Config) wireOptions() wireOptions {
	return wireOptions{
		RegionCode:       c.RegionCode,
		LanguageCode:     DefaultLanguageCode,
		ProductCode:      orDefault(c.ProductCode, DefaultProductCode),
		LabelTemplate:    orDefault(c.LabelTemplate, DefaultLabelTemplate),
		LabelImageFormat: orDefault(c.LabelImageFormat, DefaultLabelImageFormat),
		SoftwareName:     orDefault(c.SoftwareName, DefaultSoftwareName),
		SoftwareVersion:  c.SoftwareVersion,
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Option customizes a Client.
type Option func(*Client)

// WithCountryNames replaces the country-name table used for CountryName.
func WithCountryNames(names CountryNames) Option {
	return func(c *Client) {
		c.countries = names
	}
}

// WithClock replaces the clock used for MessageTime and default dates.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// Client is the DHL shipper client.
type Client struct {
	config    Config
	apiClient APIClient
	logger    *otelzap.Logger
	tracer    trace.Tracer
	countries CountryNames
	now       func() time.Time
}

// New creates a new DHL client.
func New(cfg Config, logger *otelzap.Logger, tracer trace.Tracer, opts ...Option) *Client {
	var apiClient APIClient

	if cfg.UseMock {
		apiClient = NewMockAPIClient()
	} else {
		apiClient = NewHTTPAPIClient(HTTPAPIClientConfig{
			Endpoint: cfg.Endpoint,
			Timeout:  cfg.Timeout,
		})
	}

	return NewWithAPIClient(cfg, apiClient, logger, tracer, opts...)
}

// NewWithAPIClient creates a new DHL client with a custom API client.
func NewWithAPIClient(cfg Config, apiClient APIClient, logger *otelzap.Logger, tracer trace.Tracer, opts ...Option) *Client {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer(carrierName)
	}
	c := &Client{
		config:    cfg,
		apiClient: apiClient,
		logger:    logger,
		tracer:    tracer,
		countries: EnglishCountryNames(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the carrier name.
func (c *Client) Name() string {
	return carrierName
}

// BuildRequest returns the ShipmentRequest document that CreateShipment would
// submit for req.
func (c *Client) BuildRequest(req *shipper.ShipmentRequest) ([]byte, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	b := newBuilder(c.config.credentials(), c.countries, c.config.wireOptions(), c.now())
	tree, err := b.build(normalize(req))
	if err != nil {
		return nil, err
	}
	return payload.MarshalXML(requestRoot, tree)
}

// CreateShipment books a shipment and returns its airway bill and label.
func (c *Client) CreateShipment(ctx context.Context, req *shipper.ShipmentRequest) (*shipper.ShipmentResult, error) {
	ctx, span := c.tracer.Start(ctx, "dhl.CreateShipment")
	defer span.End()

	if err := validate(req); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.String("shipment.destination", req.RecipientAddress.CountryCode),
		attribute.Int("shipment.parcels", len(req.Parcels)),
		attribute.Bool("shipment.dutiable", req.Dutiable),
	)

	c.logger.Ctx(ctx).Info("Creating DHL shipment",
		zap.String("origin_country", req.SenderAddress.CountryCode),
		zap.String("destination_country", req.RecipientAddress.CountryCode),
		zap.Int("parcel_count", len(req.Parcels)),
		zap.Bool("dutiable", req.Dutiable),
		zap.String("reference", req.Reference),
	)

	body, err := c.BuildRequest(req)
	if err != nil {
		c.fail(ctx, span, "DHL request build failed", err)
		return nil, fmt.Errorf("build request: %w", err)
	}

	respBody, err := c.apiClient.Submit(ctx, body)
	if err != nil {
		c.fail(ctx, span, "DHL API error", err)
		return nil, err
	}

	result, err := extract(respBody)
	if err != nil {
		c.fail(ctx, span, "DHL shipment rejected", err)
		return nil, err
	}

	span.SetAttributes(attribute.String("shipment.airway_bill", result.TrackingNumber))
	c.logger.Ctx(ctx).Info("DHL shipment created",
		zap.String("airway_bill", result.TrackingNumber),
		zap.Int("label_bytes", len(result.Label)),
	)
	return result, nil
}

// CancelShipment reports that DHL XML-PI has no cancellation channel. It never
// contacts the carrier and never fails.
func (c *Client) CancelShipment(ctx context.Context, req *shipper.CancelRequest) (*shipper.CancelResult, error) {
	c.logger.Ctx(ctx).Warn("DHL shipment cancellation requested",
		zap.String("shipment_id", req.ShipmentID),
		zap.String("reason", req.Reason),
	)

	return &shipper.CancelResult{
		ShipmentID: req.ShipmentID,
		Status:     shipper.StatusPending,
		Supported:  false,
		Message:    fmt.Sprintf("%s: %s shipments expire unused", shipper.ErrCancellationNotSupported, carrierName),
	}, nil
}

func (c *Client) fail(ctx context.Context, span trace.Span, msg string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	fields := []zap.Field{zap.Error(err)}
	var rejection *shipper.CarrierRejectionError
	if errors.As(err, &rejection) {
		fields = append(fields, zap.String("condition_code", rejection.Code))
	}
	c.logger.Ctx(ctx).Error(msg, fields...)
}

func validate(req *shipper.ShipmentRequest) error {
	if req == nil {
		return fmt.Errorf("%w: nil request", shipper.ErrInvalidShipment)
	}
	if len(req.Parcels) == 0 {
		return fmt.Errorf("%w: no parcels", shipper.ErrInvalidShipment)
	}
	return nil
}

var _ shipper.Shipper = (*Client)(nil)
