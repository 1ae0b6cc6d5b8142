package graphql_test

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/shipbridge/internal/graphql"
	"github.com/tournevent/shipbridge/internal/telemetry"
	"github.com/tournevent/shipbridge/pkg/shipper"
	"github.com/tournevent/shipbridge/pkg/shipper/dhl"
	"github.com/tournevent/shipbridge/pkg/shipper/mock"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

func newTestResolver() (*graphql.Resolver, *dhl.MockAPIClient) {
	logger := otelzap.New(zap.NewNop())
	mockAPI := dhl.NewMockAPIClient()

	registry := shipper.NewRegistry()
	registry.Register(dhl.NewWithAPIClient(dhl.Config{AccountNumber: "123456789"}, mockAPI, logger, nil))
	registry.Register(mock.New("mock"))

	metrics := telemetry.NewMetrics(prometheus.NewRegistry())
	return graphql.NewResolver(registry, logger, metrics), mockAPI
}

func shipmentInput(carrier string) graphql.CreateShipmentInput {
	return graphql.CreateShipmentInput{
		Carrier:          carrier,
		Sender:           graphql.ContactInput{Name: "Sender", Phone: "416-555-1234"},
		SenderAddress:    graphql.AddressInput{Line1: "123 Main St", City: "Toronto", PostalCode: "M5V1A1", CountryCode: "CA"},
		Recipient:        graphql.ContactInput{Name: "Receiver", Phone: "604-555-5678"},
		RecipientAddress: graphql.AddressInput{Line1: "456 Oak Ave", City: "Seattle", PostalCode: "98101", CountryCode: "US"},
		Parcels:          []graphql.ParcelInput{{Width: 10, Height: 10, Length: 10, Weight: 2}},
	}
}

func TestQuery_Health(t *testing.T) {
	resolver, _ := newTestResolver()

	health, err := resolver.Query().Health(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, 2, health.Carriers)
}

func TestQuery_Carriers(t *testing.T) {
	resolver, _ := newTestResolver()

	carriers, err := resolver.Query().Carriers(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"dhl", "mock"}, carriers)
}

func TestMutation_CreateShipment_Success(t *testing.T) {
	resolver, mockAPI := newTestResolver()

	resp, err := resolver.Mutation().CreateShipment(context.Background(), shipmentInput("dhl"))

	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.TrackingNumber)
	assert.Len(t, *resp.TrackingNumber, 10)
	require.NotNil(t, resp.Label)
	label, err := base64.StdEncoding.DecodeString(*resp.Label)
	require.NoError(t, err)
	assert.Equal(t, dhl.MockLabel, label)
	assert.NotEmpty(t, resp.Metadata.RequestID)
	assert.Len(t, mockAPI.Requests(), 1)

	requests := resolver.Metrics.RequestsTotal.WithLabelValues("create_shipment", "dhl", "success")
	assert.Equal(t, 1.0, testutil.ToFloat64(requests))
}

func TestMutation_CreateShipment_CarrierRejection(t *testing.T) {
	resolver, mockAPI := newTestResolver()
	mockAPI.SimulateErrors = true

	resp, err := resolver.Mutation().CreateShipment(context.Background(), shipmentInput("dhl"))

	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Nil(t, resp.TrackingNumber)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, graphql.CodeCarrierRejected, resp.Errors[0].Code)
	assert.Equal(t, "154", *resp.Errors[0].CarrierCode)
	assert.Equal(t, "null field value is invalid", resp.Errors[0].Message)

	rejected := resolver.Metrics.CarrierErrors.WithLabelValues("dhl", telemetry.ErrorTypeRejected)
	assert.Equal(t, 1.0, testutil.ToFloat64(rejected))
}

func TestMutation_CreateShipment_UnknownCarrier(t *testing.T) {
	resolver, mockAPI := newTestResolver()

	resp, err := resolver.Mutation().CreateShipment(context.Background(), shipmentInput("ups"))

	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, graphql.CodeCarrierNotFound, resp.Errors[0].Code)
	assert.Empty(t, mockAPI.Requests())
}

func TestMutation_CreateShipment_InvalidInput(t *testing.T) {
	resolver, mockAPI := newTestResolver()
	input := shipmentInput("dhl")
	input.Parcels = nil

	resp, err := resolver.Mutation().CreateShipment(context.Background(), input)

	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, graphql.CodeInvalidInput, resp.Errors[0].Code)
	assert.Empty(t, mockAPI.Requests())
}

func TestMutation_CancelShipment_Unsupported(t *testing.T) {
	resolver, _ := newTestResolver()

	resp, err := resolver.Mutation().CancelShipment(context.Background(), graphql.CancelShipmentInput{
		Carrier:    "dhl",
		ShipmentID: "1234567890",
		Reason:     "customer request",
	})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.False(t, resp.Supported)
	assert.Equal(t, "pending", resp.Status)
	require.NotNil(t, resp.Message)
	assert.Contains(t, *resp.Message, "cancellation not supported")
}

func TestMutation_CancelShipment_Supported(t *testing.T) {
	resolver, _ := newTestResolver()

	resp, err := resolver.Mutation().CancelShipment(context.Background(), graphql.CancelShipmentInput{
		Carrier:    "mock",
		ShipmentID: "ABC",
	})

	require.NoError(t, err)
	assert.True(t, resp.Supported)
	assert.Equal(t, "cancelled", resp.Status)
}
