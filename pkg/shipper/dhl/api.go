package dhl

import (
	"context"
)

// APIClient submits a serialized ShipmentRequest to DHL XML-PI.
// This abstraction allows for mock implementations during testing
// and the HTTP implementation in production.
type APIClient interface {
	// Submit posts body and returns the raw response for any HTTP status
	// the carrier answers with a document. Network failures are returned as
	// *shipper.TransportError.
	Submit(ctx context.Context, body []byte) ([]byte, error)
}

// DefaultEndpoint is the production XML-PI servlet.
const DefaultEndpoint = "https://xmlpi-ea.dhl.com/XMLShippingServlet"

// Defaults stamped on requests when the configuration leaves them empty.
const (
	DefaultLabelTemplate    = "8X4_A4_PDF"
	DefaultLabelImageFormat = "PDF"
	DefaultProductCode      = "P"
	DefaultLanguageCode     = "en"
	DefaultSoftwareName     = "shipbridge"
)
