// Package shipper provides the carrier-agnostic shipment model and the
// interface every carrier integration implements.
package shipper

import (
	"context"
)

// Shipper defines the interface that all shipping carriers must implement.
type Shipper interface {
	// Name returns the carrier identifier (e.g., "dhl").
	Name() string

	// CreateShipment books a shipment with the carrier and returns its airway
	// bill and label.
	CreateShipment(ctx context.Context, req *ShipmentRequest) (*ShipmentResult, error)

	// CancelShipment cancels a booked shipment. Carriers without a cancellation
	// channel return a result with Supported set to false.
	CancelShipment(ctx context.Context, req *CancelRequest) (*CancelResult, error)
}
