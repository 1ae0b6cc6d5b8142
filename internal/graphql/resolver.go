package graphql

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tournevent/shipbridge/internal/telemetry"
	"github.com/tournevent/shipbridge/pkg/shipper"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Operation names used as the operation metric label.
const (
	opCreateShipment = "create_shipment"
	opCancelShipment = "cancel_shipment"
)

// QueryResolver resolves the fields of the Query type.
type QueryResolver interface {
	Health(ctx context.Context) (*Health, error)
	Carriers(ctx context.Context) ([]string, error)
}

// MutationResolver resolves the fields of the Mutation type.
type MutationResolver interface {
	CreateShipment(ctx context.Context, input CreateShipmentInput) (*ShipmentPayload, error)
	CancelShipment(ctx context.Context, input CancelShipmentInput) (*CancelPayload, error)
}

// Resolver is the root resolver for the GraphQL schema.
// It holds dependencies needed by all resolvers.
type Resolver struct {
	Registry *shipper.Registry
	Logger   *otelzap.Logger
	Metrics  *telemetry.Metrics
}

// NewResolver creates a new resolver with the given dependencies.
func NewResolver(registry *shipper.Registry, logger *otelzap.Logger, metrics *telemetry.Metrics) *Resolver {
	return &Resolver{
		Registry: registry,
		Logger:   logger,
		Metrics:  metrics,
	}
}

// Query returns the Query resolver.
func (r *Resolver) Query() QueryResolver { return &queryResolver{r} }

// Mutation returns the Mutation resolver.
func (r *Resolver) Mutation() MutationResolver { return &mutationResolver{r} }

type queryResolver struct{ *Resolver }

func (r *queryResolver) Health(ctx context.Context) (*Health, error) {
	return &Health{Status: "ok", Carriers: r.Registry.Count()}, nil
}

func (r *queryResolver) Carriers(ctx context.Context) ([]string, error) {
	return r.Registry.Names(), nil
}

type mutationResolver struct{ *Resolver }

// CreateShipment books a shipment. Failures are reported in the payload's
// errors, not as a GraphQL error.
func (r *mutationResolver) CreateShipment(ctx context.Context, input CreateShipmentInput) (*ShipmentPayload, error) {
	start := time.Now()
	requestID := uuid.NewString()
	log := r.Logger.Ctx(ctx)

	log.Info("createShipment",
		zap.String("request_id", requestID),
		zap.String("carrier", input.Carrier),
		zap.Int("parcel_count", len(input.Parcels)),
	)

	fail := func(err error) (*ShipmentPayload, error) {
		r.Metrics.RecordError(input.Carrier, telemetry.ErrorType(err))
		r.Metrics.RecordRequest(opCreateShipment, input.Carrier, "error", time.Since(start).Seconds())
		log.Warn("createShipment failed",
			zap.String("request_id", requestID),
			zap.String("carrier", input.Carrier),
			zap.Error(err),
		)
		return &ShipmentPayload{
			Success:  false,
			Errors:   []*Error{errorToGraphQL(err)},
			Metadata: newMetadata(requestID, start),
		}, nil
	}

	s, err := r.Registry.Get(input.Carrier)
	if err != nil {
		return fail(err)
	}

	req, err := ToShipmentRequest(input)
	if err != nil {
		return fail(err)
	}

	result, err := s.CreateShipment(ctx, req)
	if err != nil {
		return fail(err)
	}

	r.Metrics.RecordRequest(opCreateShipment, input.Carrier, "success", time.Since(start).Seconds())
	return &ShipmentPayload{
		Success:        true,
		TrackingNumber: ptr(result.TrackingNumber),
		Carrier:        ptr(result.Carrier),
		Label:          ptr(base64.StdEncoding.EncodeToString(result.Label)),
		Metadata:       newMetadata(requestID, start),
	}, nil
}

func (r *mutationResolver) CancelShipment(ctx context.Context, input CancelShipmentInput) (*CancelPayload, error) {
	start := time.Now()
	requestID := uuid.NewString()

	payload := &CancelPayload{ShipmentID: input.ShipmentID, Status: string(shipper.StatusPending)}

	s, err := r.Registry.Get(input.Carrier)
	if err != nil {
		r.Metrics.RecordError(input.Carrier, telemetry.ErrorType(err))
		r.Metrics.RecordRequest(opCancelShipment, input.Carrier, "error", time.Since(start).Seconds())
		payload.Errors = []*Error{errorToGraphQL(err)}
		payload.Metadata = newMetadata(requestID, start)
		return payload, nil
	}

	result, err := s.CancelShipment(ctx, &shipper.CancelRequest{ShipmentID: input.ShipmentID, Reason: input.Reason})
	if err != nil {
		r.Metrics.RecordError(input.Carrier, telemetry.ErrorType(err))
		r.Metrics.RecordRequest(opCancelShipment, input.Carrier, "error", time.Since(start).Seconds())
		payload.Errors = []*Error{errorToGraphQL(fmt.Errorf("cancel %s: %w", input.ShipmentID, err))}
		payload.Metadata = newMetadata(requestID, start)
		return payload, nil
	}

	status := "success"
	if !result.Supported {
		status = "unsupported"
	}
	r.Metrics.RecordRequest(opCancelShipment, input.Carrier, status, time.Since(start).Seconds())

	payload.Success = true
	payload.Status = string(result.Status)
	payload.Supported = result.Supported
	if result.Message != "" {
		payload.Message = ptr(result.Message)
	}
	payload.Metadata = newMetadata(requestID, start)
	return payload, nil
}
