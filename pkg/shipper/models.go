package shipper

import (
	"time"

	"github.com/tournevent/shipbridge/pkg/measure"
)

// ShipmentStatus represents the normalized status of a shipment.
type ShipmentStatus string

const (
	StatusPending   ShipmentStatus = "pending"
	StatusConfirmed ShipmentStatus = "confirmed"
	StatusCancelled ShipmentStatus = "cancelled"
)

// UnitSystem selects the units every quantity of a request is sent in.
type UnitSystem string

const (
	Imperial UnitSystem = "imperial"
	Metric   UnitSystem = "metric"
)

// Units returns the length and mass units of the system. Anything other than
// Imperial is treated as Metric.
func (u UnitSystem) Units() (measure.LengthUnit, measure.MassUnit) {
	if u == Imperial {
		return measure.Inch, measure.Pound
	}
	return measure.Centimeter, measure.Kilogram
}

// Address represents a shipping address.
type Address struct {
	Line1        string
	Line2        string
	Line3        string
	City         string
	Division     string // state or province name
	ProvinceCode string // e.g., "ON", "QC", "BC"
	PostalCode   string
	CountryCode  string // ISO 3166-1 alpha-2, e.g., "CA", "US"
}

// Contact represents sender or recipient contact info.
type Contact struct {
	Name    string
	Company string
	Phone   string
	Email   string
	TaxID   string // For customs (international)
}

// ExportDeclaration is one customs line describing goods in the shipment.
type ExportDeclaration struct {
	Description       string
	Quantity          int
	Value             measure.Money // total for the line, not per unit
	Weight            measure.Mass
	OriginCountryCode string
}

// ShipmentRequest is the carrier-agnostic description of a shipment.
type ShipmentRequest struct {
	Sender           Contact
	SenderAddress    Address
	Recipient        Contact
	RecipientAddress Address
	Parcels          []Parcel
	UnitSystem       UnitSystem

	// SpecialServices are carrier add-on codes, sent in order.
	SpecialServices   []string
	SignatureRequired bool

	Dutiable          bool
	Currency          string
	Incoterm          string
	Contents          string        // defaults to the export declaration descriptions
	DeclaredValue     measure.Money // defaults to the sum of export declaration values
	InsuredValue      measure.Money // defaults to the sum of parcel insured values
	TransactionNumber string        // international transaction number (ITN)

	ExportDeclarations []ExportDeclaration
	InvoiceNumber      string
	Reference          string
	ProductCode        string
	ShipDate           time.Time

	// Overrides sets raw wire fields by dotted path after everything else has
	// been built, e.g. "ShipmentDetails.PackageType": "EE".
	Overrides map[string]any
}

// ShipmentResult is the outcome of a successful shipment creation.
type ShipmentResult struct {
	TrackingNumber string
	Carrier        string
	Label          []byte
	RawResponse    string
}

// CancelRequest is the request for cancelling a shipment.
type CancelRequest struct {
	ShipmentID string
	Reason     string
}

// CancelResult is the response from cancelling a shipment.
type CancelResult struct {
	ShipmentID string
	Status     ShipmentStatus
	Supported  bool
	Message    string
}
