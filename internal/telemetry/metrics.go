package telemetry

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/tournevent/shipbridge/pkg/shipper"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	CarrierErrors   *prometheus.CounterVec
}

// NewMetrics creates the service metrics and registers them with reg. A nil
// reg uses the default Prometheus registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shipbridge_requests_total",
				Help: "Total number of requests by operation, carrier, and status",
			},
			[]string{"operation", "carrier", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shipbridge_request_duration_seconds",
				Help:    "Request duration in seconds by operation and carrier",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "carrier"},
		),
		CarrierErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shipbridge_carrier_errors_total",
				Help: "Total carrier errors by carrier and error type",
			},
			[]string{"carrier", "error_type"},
		),
	}
}

// RecordRequest records a request metric.
func (m *Metrics) RecordRequest(operation, carrier, status string, duration float64) {
	m.RequestsTotal.WithLabelValues(operation, carrier, status).Inc()
	m.RequestDuration.WithLabelValues(operation, carrier).Observe(duration)
}

// RecordError records a carrier error metric.
func (m *Metrics) RecordError(carrier, errorType string) {
	m.CarrierErrors.WithLabelValues(carrier, errorType).Inc()
}

// Error types used as the error_type label.
const (
	ErrorTypeTransport = "transport"
	ErrorTypeRejected  = "rejected"
	ErrorTypeMalformed = "malformed"
	ErrorTypeInvalid   = "invalid"
	ErrorTypeNotFound  = "not_found"
	ErrorTypeOther     = "other"
)

// ErrorType classifies err for the error_type label.
func ErrorType(err error) string {
	var (
		transportErr *shipper.TransportError
		rejection    *shipper.CarrierRejectionError
		malformed    *shipper.MalformedResponseError
	)
	switch {
	case errors.As(err, &transportErr):
		return ErrorTypeTransport
	case errors.As(err, &rejection):
		return ErrorTypeRejected
	case errors.As(err, &malformed):
		return ErrorTypeMalformed
	case errors.Is(err, shipper.ErrInvalidShipment):
		return ErrorTypeInvalid
	case errors.Is(err, shipper.ErrCarrierNotFound):
		return ErrorTypeNotFound
	default:
		return ErrorTypeOther
	}
}
