// Package mock provides a mock shipper implementation for testing.
package mock

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/tournevent/shipbridge/pkg/shipper"
)

// Client is a mock shipper for testing.
type Client struct {
	name  string
	calls atomic.Int64

	// OnCreateShipment replaces the default behavior when set.
	OnCreateShipment func(ctx context.Context, req *shipper.ShipmentRequest) (*shipper.ShipmentResult, error)
}

// New creates a new mock shipper.
func New(name string) *Client {
	return &Client{name: name}
}

// Name returns the carrier name.
func (c *Client) Name() string {
	return c.name
}

// Calls returns how many shipments were requested.
func (c *Client) Calls() int {
	return int(c.calls.Load())
}

// CreateShipment returns a mock airway bill and a placeholder PDF label.
func (c *Client) CreateShipment(ctx context.Context, req *shipper.ShipmentRequest) (*shipper.ShipmentResult, error) {
	c.calls.Add(1)
	if c.OnCreateShipment != nil {
		return c.OnCreateShipment(ctx, req)
	}
	if req == nil || len(req.Parcels) == 0 {
		return nil, shipper.ErrInvalidShipment
	}

	tracking := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
	return &shipper.ShipmentResult{
		TrackingNumber: tracking,
		Carrier:        c.name,
		Label:          []byte("%PDF-1.4 mock label " + tracking),
		RawResponse:    fmt.Sprintf("<mock carrier=%q awb=%q/>", c.name, tracking),
	}, nil
}

// CancelShipment cancels a mock shipment.
func (c *Client) CancelShipment(ctx context.Context, req *shipper.CancelRequest) (*shipper.CancelResult, error) {
	return &shipper.CancelResult{
		ShipmentID: req.ShipmentID,
		Status:     shipper.StatusCancelled,
		Supported:  true,
	}, nil
}
