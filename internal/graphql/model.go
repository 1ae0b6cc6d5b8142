package graphql

// Input and payload types of the schema. Field names follow the schema so
// that variables decode with encoding/json.

type AddressInput struct {
	Line1        string `json:"line1"`
	Line2        string `json:"line2,omitempty"`
	Line3        string `json:"line3,omitempty"`
	City         string `json:"city"`
	Division     string `json:"division,omitempty"`
	ProvinceCode string `json:"provinceCode,omitempty"`
	PostalCode   string `json:"postalCode,omitempty"`
	CountryCode  string `json:"countryCode"`
}

type ContactInput struct {
	Name    string `json:"name"`
	Company string `json:"company,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	TaxID   string `json:"taxId,omitempty"`
}

type ParcelInput struct {
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	Length       float64 `json:"length"`
	Weight       float64 `json:"weight"`
	InsuredValue string  `json:"insuredValue,omitempty"`
}

type ExportDeclarationInput struct {
	Description       string  `json:"description"`
	Quantity          int     `json:"quantity"`
	Value             string  `json:"value"`
	Weight            float64 `json:"weight"`
	OriginCountryCode string  `json:"originCountryCode,omitempty"`
}

type OverrideInput struct {
	Path  string  `json:"path"`
	Value *string `json:"value"`
}

type CreateShipmentInput struct {
	Carrier            string                   `json:"carrier"`
	Sender             ContactInput             `json:"sender"`
	SenderAddress      AddressInput             `json:"senderAddress"`
	Recipient          ContactInput             `json:"recipient"`
	RecipientAddress   AddressInput             `json:"recipientAddress"`
	Parcels            []ParcelInput            `json:"parcels"`
	UnitSystem         string                   `json:"unitSystem,omitempty"`
	SpecialServices    []string                 `json:"specialServices,omitempty"`
	SignatureRequired  bool                     `json:"signatureRequired,omitempty"`
	Dutiable           bool                     `json:"dutiable,omitempty"`
	Currency           string                   `json:"currency,omitempty"`
	Incoterm           string                   `json:"incoterm,omitempty"`
	Contents           string                   `json:"contents,omitempty"`
	DeclaredValue      string                   `json:"declaredValue,omitempty"`
	InsuredValue       string                   `json:"insuredValue,omitempty"`
	TransactionNumber  string                   `json:"transactionNumber,omitempty"`
	ExportDeclarations []ExportDeclarationInput `json:"exportDeclarations,omitempty"`
	InvoiceNumber      string                   `json:"invoiceNumber,omitempty"`
	Reference          string                   `json:"reference,omitempty"`
	ProductCode        string                   `json:"productCode,omitempty"`
	ShipDate           string                   `json:"shipDate,omitempty"`
	Overrides          []OverrideInput          `json:"overrides,omitempty"`
}

type CancelShipmentInput struct {
	Carrier    string `json:"carrier"`
	ShipmentID string `json:"shipmentId"`
	Reason     string `json:"reason,omitempty"`
}

type Health struct {
	Status   string `json:"status"`
	Carriers int    `json:"carriers"`
}

type Condition struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Error struct {
	Code        string       `json:"code"`
	Message     string       `json:"message"`
	CarrierCode *string      `json:"carrierCode"`
	Conditions  []*Condition `json:"conditions,omitempty"`
	Retryable   bool         `json:"retryable"`
}

type ResponseMetadata struct {
	RequestID  string `json:"requestId"`
	Timestamp  string `json:"timestamp"`
	DurationMs int    `json:"durationMs"`
}

type ShipmentPayload struct {
	Success        bool              `json:"success"`
	TrackingNumber *string           `json:"trackingNumber"`
	Carrier        *string           `json:"carrier"`
	Label          *string           `json:"label"` // base64
	Errors         []*Error          `json:"errors,omitempty"`
	Metadata       *ResponseMetadata `json:"metadata"`
}

type CancelPayload struct {
	Success    bool              `json:"success"`
	ShipmentID string            `json:"shipmentId"`
	Status     string            `json:"status"`
	Supported  bool              `json:"supported"`
	Message    *string           `json:"message"`
	Errors     []*Error          `json:"errors,omitempty"`
	Metadata   *ResponseMetadata `json:"metadata"`
}
