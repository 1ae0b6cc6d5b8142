package telemetry_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/tournevent/shipbridge/internal/telemetry"
	"github.com/tournevent/shipbridge/pkg/shipper"
)

func TestMetrics_RecordRequest(t *testing.T) {
	metrics := telemetry.NewMetrics(prometheus.NewRegistry())

	metrics.RecordRequest("create_shipment", "dhl", "success", 0.25)
	metrics.RecordRequest("create_shipment", "dhl", "success", 0.5)
	metrics.RecordRequest("create_shipment", "dhl", "error", 0.1)

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues("create_shipment", "dhl", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues("create_shipment", "dhl", "error")))
}

func TestMetrics_RecordError(t *testing.T) {
	metrics := telemetry.NewMetrics(prometheus.NewRegistry())

	metrics.RecordError("dhl", telemetry.ErrorTypeRejected)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CarrierErrors.WithLabelValues("dhl", "rejected")))
}

func TestMetrics_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		telemetry.NewMetrics(prometheus.NewRegistry())
		telemetry.NewMetrics(prometheus.NewRegistry())
	})
}

func TestErrorType(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&shipper.TransportError{Carrier: "dhl"}, telemetry.ErrorTypeTransport},
		{fmt.Errorf("dhl: %w", shipper.NewCarrierRejectionError("dhl", shipper.Condition{Code: "154"})), telemetry.ErrorTypeRejected},
		{&shipper.MalformedResponseError{Carrier: "dhl"}, telemetry.ErrorTypeMalformed},
		{fmt.Errorf("%w: no parcels", shipper.ErrInvalidShipment), telemetry.ErrorTypeInvalid},
		{fmt.Errorf("%w: ups", shipper.ErrCarrierNotFound), telemetry.ErrorTypeNotFound},
		{errors.New("boom"), telemetry.ErrorTypeOther},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, telemetry.ErrorType(tt.err))
		})
	}
}
