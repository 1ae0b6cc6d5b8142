package graphql

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tournevent/shipbridge/pkg/measure"
	"github.com/tournevent/shipbridge/pkg/shipper"
)

// ErrInvalidInput reports an input that cannot be converted to a shipment
// request.
var ErrInvalidInput = errors.New("invalid input")

const defaultCurrency = "USD"

// ToShipmentRequest converts a createShipment input into the domain request.
// Parcel and declaration quantities are read in the units of the input's unit
// system.
func ToShipmentRequest(input CreateShipmentInput) (*shipper.ShipmentRequest, error) {
	units, err := unitSystemToModel(input.UnitSystem)
	if err != nil {
		return nil, err
	}
	lengthUnit, massUnit := units.Units()

	currency := strings.ToUpper(input.Currency)
	if currency == "" {
		currency = defaultCurrency
	}

	req := &shipper.ShipmentRequest{
		Sender:            contactInputToModel(input.Sender),
		SenderAddress:     addressInputToModel(input.SenderAddress),
		Recipient:         contactInputToModel(input.Recipient),
		RecipientAddress:  addressInputToModel(input.RecipientAddress),
		UnitSystem:        units,
		SpecialServices:   input.SpecialServices,
		SignatureRequired: input.SignatureRequired,
		Dutiable:          input.Dutiable,
		Currency:          currency,
		Incoterm:          input.Incoterm,
		Contents:          input.Contents,
		TransactionNumber: input.TransactionNumber,
		InvoiceNumber:     input.InvoiceNumber,
		Reference:         input.Reference,
		ProductCode:       input.ProductCode,
	}

	if req.DeclaredValue, err = parseMoney("declaredValue", input.DeclaredValue, currency); err != nil {
		return nil, err
	}
	if req.InsuredValue, err = parseMoney("insuredValue", input.InsuredValue, currency); err != nil {
		return nil, err
	}

	for i, p := range input.Parcels {
		parcel, err := parcelInputToModel(p, lengthUnit, massUnit, currency)
		if err != nil {
			return nil, fmt.Errorf("parcels[%d]: %w", i, err)
		}
		req.Parcels = append(req.Parcels, parcel)
	}

	for i, d := range input.ExportDeclarations {
		value, err := parseMoney("value", d.Value, currency)
		if err != nil {
			return nil, fmt.Errorf("exportDeclarations[%d]: %w", i, err)
		}
		weight, err := measure.New(d.Weight, massUnit)
		if err != nil {
			return nil, fmt.Errorf("%w: exportDeclarations[%d].weight: %v", ErrInvalidInput, i, err)
		}
		req.ExportDeclarations = append(req.ExportDeclarations, shipper.ExportDeclaration{
			Description:       d.Description,
			Quantity:          d.Quantity,
			Value:             value,
			Weight:            weight,
			OriginCountryCode: d.OriginCountryCode,
		})
	}

	if input.ShipDate != "" {
		date, err := time.Parse("2006-01-02", input.ShipDate)
		if err != nil {
			return nil, fmt.Errorf("%w: shipDate must be YYYY-MM-DD: %v", ErrInvalidInput, err)
		}
		req.ShipDate = date
	}

	if len(input.Overrides) > 0 {
		req.Overrides = make(map[string]any, len(input.Overrides))
		for _, o := range input.Overrides {
			if o.Path == "" {
				return nil, fmt.Errorf("%w: override without path", ErrInvalidInput)
			}
			if o.Value == nil {
				req.Overrides[o.Path] = nil
				continue
			}
			req.Overrides[o.Path] = *o.Value
		}
	}

	return req, nil
}

func unitSystemToModel(s string) (shipper.UnitSystem, error) {
	switch strings.ToUpper(s) {
	case "", "METRIC":
		return shipper.Metric, nil
	case "IMPERIAL":
		return shipper.Imperial, nil
	default:
		return "", fmt.Errorf("%w: unknown unit system %q", ErrInvalidInput, s)
	}
}

func addressInputToModel(input AddressInput) shipper.Address {
	return shipper.Address{
		Line1:        input.Line1,
		Line2:        input.Line2,
		Line3:        input.Line3,
		City:         input.City,
		Division:     input.Division,
		ProvinceCode: input.ProvinceCode,
		PostalCode:   input.PostalCode,
		CountryCode:  strings.ToUpper(input.CountryCode),
	}
}

func contactInputToModel(input ContactInput) shipper.Contact {
	return shipper.Contact{
		Name:    input.Name,
		Company: input.Company,
		Phone:   input.Phone,
		Email:   input.Email,
		TaxID:   input.TaxID,
	}
}

func parcelInputToModel(input ParcelInput, lengthUnit measure.LengthUnit, massUnit measure.MassUnit, currency string) (shipper.Parcel, error) {
	var (
		p   shipper.Parcel
		err error
	)
	if p.Width, err = measure.New(input.Width, lengthUnit); err != nil {
		return p, fmt.Errorf("%w: width: %v", ErrInvalidInput, err)
	}
	if p.Height, err = measure.New(input.Height, lengthUnit); err != nil {
		return p, fmt.Errorf("%w: height: %v", ErrInvalidInput, err)
	}
	if p.Length, err = measure.New(input.Length, lengthUnit); err != nil {
		return p, fmt.Errorf("%w: length: %v", ErrInvalidInput, err)
	}
	if p.Weight, err = measure.New(input.Weight, massUnit); err != nil {
		return p, fmt.Errorf("%w: weight: %v", ErrInvalidInput, err)
	}
	if p.InsuredValue, err = parseMoney("insuredValue", input.InsuredValue, currency); err != nil {
		return p, err
	}
	return p, nil
}

// parseMoney reads a decimal amount such as "12.50". An empty string is zero.
func parseMoney(field, s, currency string) (measure.Money, error) {
	if s == "" {
		return measure.Money{Currency: currency}, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return measure.Money{}, fmt.Errorf("%w: %s must be a non-negative decimal, got %q", ErrInvalidInput, field, s)
	}
	return measure.MoneyFromDecimal(v, currency), nil
}

// Error codes reported in payload errors.
const (
	CodeInvalidInput      = "INVALID_INPUT"
	CodeCarrierNotFound   = "CARRIER_NOT_FOUND"
	CodeTransportError    = "TRANSPORT_ERROR"
	CodeCarrierRejected   = "CARRIER_REJECTED"
	CodeMalformedResponse = "MALFORMED_RESPONSE"
	CodeInternal          = "INTERNAL_ERROR"
)

func errorToGraphQL(err error) *Error {
	var (
		transportErr *shipper.TransportError
		rejection    *shipper.CarrierRejectionError
		malformed    *shipper.MalformedResponseError
	)

	out := &Error{Message: err.Error(), Retryable: shipper.IsRetryable(err)}
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, shipper.ErrInvalidShipment):
		out.Code = CodeInvalidInput
	case errors.Is(err, shipper.ErrCarrierNotFound):
		out.Code = CodeCarrierNotFound
	case errors.As(err, &transportErr):
		out.Code = CodeTransportError
	case errors.As(err, &rejection):
		out.Code = CodeCarrierRejected
		out.CarrierCode = &rejection.Code
		out.Message = rejection.Message
		for _, c := range rejection.Conditions {
			out.Conditions = append(out.Conditions, &Condition{Code: c.Code, Message: c.Message})
		}
	case errors.As(err, &malformed):
		out.Code = CodeMalformedResponse
	default:
		out.Code = CodeInternal
	}
	return out
}

func newMetadata(requestID string, start time.Time) *ResponseMetadata {
	return &ResponseMetadata{
		RequestID:  requestID,
		Timestamp:  start.UTC().Format(time.RFC3339),
		DurationMs: int(time.Since(start).Milliseconds()),
	}
}

func ptr[T any](v T) *T {
	return &v
}
