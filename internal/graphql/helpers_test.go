package graphql

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/shipbridge/pkg/measure"
	"github.com/tournevent/shipbridge/pkg/shipper"
)

func validInput() CreateShipmentInput {
	return CreateShipmentInput{
		Carrier:          "dhl",
		Sender:           ContactInput{Name: "John Doe", Company: "ACME Corp", Phone: "416-555-1234"},
		SenderAddress:    AddressInput{Line1: "123 Main St", City: "Toronto", ProvinceCode: "ON", PostalCode: "M5V1A1", CountryCode: "ca"},
		Recipient:        ContactInput{Name: "Jane Smith", Email: "jane@example.com"},
		RecipientAddress: AddressInput{Line1: "456 Oak Ave", Line2: "Suite 100", City: "Seattle", PostalCode: "98101", CountryCode: "US"},
		Parcels:          []ParcelInput{{Width: 10, Height: 8, Length: 6, Weight: 2.5, InsuredValue: "100"}},
		UnitSystem:       "IMPERIAL",
	}
}

func TestToShipmentRequest(t *testing.T) {
	value := "EE"
	input := validInput()
	input.Currency = "cad"
	input.Dutiable = true
	input.Incoterm = "DDP"
	input.SpecialServices = []string{"DD"}
	input.SignatureRequired = true
	input.DeclaredValue = "49.99"
	input.ShipDate = "2024-03-15"
	input.ExportDeclarations = []ExportDeclarationInput{
		{Description: "Shirts", Quantity: 3, Value: "30.00", Weight: 1.5, OriginCountryCode: "CN"},
	}
	input.Overrides = []OverrideInput{
		{Path: "ShipmentDetails.PackageType", Value: &value},
		{Path: "Consignee.AddressLine2"},
	}

	req, err := ToShipmentRequest(input)

	require.NoError(t, err)
	assert.Equal(t, shipper.Imperial, req.UnitSystem)
	assert.Equal(t, "CAD", req.Currency)
	assert.Equal(t, "CA", req.SenderAddress.CountryCode)
	assert.Equal(t, "ACME Corp", req.Sender.Company)
	assert.Equal(t, "Suite 100", req.RecipientAddress.Line2)
	require.Len(t, req.Parcels, 1)
	assert.Equal(t, measure.Length{Value: 10, Unit: measure.Inch}, req.Parcels[0].Width)
	assert.Equal(t, measure.Mass{Value: 2.5, Unit: measure.Pound}, req.Parcels[0].Weight)
	assert.Equal(t, measure.Money{Amount: 10000, Currency: "CAD"}, req.Parcels[0].InsuredValue)
	assert.Equal(t, measure.Money{Amount: 4999, Currency: "CAD"}, req.DeclaredValue)
	assert.True(t, req.InsuredValue.IsZero())
	require.Len(t, req.ExportDeclarations, 1)
	assert.Equal(t, measure.Mass{Value: 1.5, Unit: measure.Pound}, req.ExportDeclarations[0].Weight)
	assert.Equal(t, measure.Money{Amount: 3000, Currency: "CAD"}, req.ExportDeclarations[0].Value)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), req.ShipDate)
	assert.Equal(t, map[string]any{"ShipmentDetails.PackageType": "EE", "Consignee.AddressLine2": nil}, req.Overrides)
}

func TestToShipmentRequest_Defaults(t *testing.T) {
	input := validInput()
	input.UnitSystem = ""

	req, err := ToShipmentRequest(input)

	require.NoError(t, err)
	assert.Equal(t, shipper.Metric, req.UnitSystem)
	assert.Equal(t, "USD", req.Currency)
	assert.Equal(t, measure.Centimeter, req.Parcels[0].Width.Unit)
	assert.Nil(t, req.Overrides)
	assert.True(t, req.ShipDate.IsZero())
}

func TestToShipmentRequest_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateShipmentInput)
	}{
		{"unit system", func(in *CreateShipmentInput) { in.UnitSystem = "NAUTICAL" }},
		{"negative weight", func(in *CreateShipmentInput) { in.Parcels[0].Weight = -1 }},
		{"bad declared value", func(in *CreateShipmentInput) { in.DeclaredValue = "ten" }},
		{"negative insured value", func(in *CreateShipmentInput) { in.Parcels[0].InsuredValue = "-5" }},
		{"ship date", func(in *CreateShipmentInput) { in.ShipDate = "15/03/2024" }},
		{"override path", func(in *CreateShipmentInput) { in.Overrides = []OverrideInput{{Path: ""}} }},
		{"declaration value", func(in *CreateShipmentInput) {
			in.ExportDeclarations = []ExportDeclarationInput{{Description: "x", Value: "abc"}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)

			_, err := ToShipmentRequest(input)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestErrorToGraphQL(t *testing.T) {
	rejection := shipper.NewCarrierRejectionError("dhl",
		shipper.Condition{Code: "154", Message: "null field value is invalid"},
		shipper.Condition{Code: "111", Message: "parse error"},
	)

	got := errorToGraphQL(fmt.Errorf("dhl: %w", rejection))

	assert.Equal(t, CodeCarrierRejected, got.Code)
	require.NotNil(t, got.CarrierCode)
	assert.Equal(t, "154", *got.CarrierCode)
	assert.Equal(t, "null field value is invalid", got.Message)
	assert.Len(t, got.Conditions, 2)
	assert.False(t, got.Retryable)
}

func TestErrorToGraphQL_Codes(t *testing.T) {
	tests := []struct {
		err       error
		code      string
		retryable bool
	}{
		{&shipper.TransportError{Carrier: "dhl", Cause: errors.New("eof")}, CodeTransportError, true},
		{&shipper.MalformedResponseError{Carrier: "dhl", Body: "<html/>"}, CodeMalformedResponse, false},
		{fmt.Errorf("%w: ups", shipper.ErrCarrierNotFound), CodeCarrierNotFound, false},
		{fmt.Errorf("%w: no parcels", shipper.ErrInvalidShipment), CodeInvalidInput, false},
		{fmt.Errorf("%w: shipDate", ErrInvalidInput), CodeInvalidInput, false},
		{errors.New("boom"), CodeInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got := errorToGraphQL(tt.err)
			assert.Equal(t, tt.code, got.Code)
			assert.Equal(t, tt.retryable, got.Retryable)
			assert.Nil(t, got.CarrierCode)
		})
	}
}
