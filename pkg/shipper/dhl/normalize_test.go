package dhl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/shipbridge/pkg/measure"
	"github.com/tournevent/shipbridge/pkg/shipper"
)

func usd(cents int64) measure.Money {
	return measure.Money{Amount: cents, Currency: "USD"}
}

func TestNormalize_ImperialUnits(t *testing.T) {
	req := &shipper.ShipmentRequest{
		UnitSystem: shipper.Imperial,
		Parcels: []shipper.Parcel{
			{
				Width:  measure.Length{Value: 2.54, Unit: measure.Centimeter},
				Height: measure.Length{Value: 1, Unit: measure.Foot},
				Length: measure.Length{Value: 10, Unit: measure.Inch},
				Weight: measure.Mass{Value: 1, Unit: measure.Kilogram},
			},
			shipper.NewParcel(1, 1, 1, 2, 0),
		},
	}

	n := normalize(req)

	assert.Equal(t, measure.Inch, n.lengthUnit)
	assert.Equal(t, measure.Pound, n.massUnit)
	require.Len(t, n.parcels, 2)
	assert.InEpsilon(t, 1.0, n.parcels[0].Width.Value, 1e-9)
	assert.InEpsilon(t, 12.0, n.parcels[0].Height.Value, 1e-9)
	assert.Equal(t, measure.Inch, n.parcels[0].Length.Unit)
	assert.InEpsilon(t, 2.20462262, n.parcels[0].Weight.Value, 1e-6)
	assert.Equal(t, measure.Pound, n.totalWeight.Unit)
	assert.InEpsilon(t, 4.20462262, n.totalWeight.Value, 1e-6)
}

func TestNormalize_MetricUnits(t *testing.T) {
	req := &shipper.ShipmentRequest{
		UnitSystem: shipper.Metric,
		Parcels:    []shipper.Parcel{shipper.NewParcel(10, 10, 10, 10, 0)},
		ExportDeclarations: []shipper.ExportDeclaration{
			{Description: "Shoes", Weight: measure.Mass{Value: 16, Unit: measure.Ounce}},
		},
	}

	n := normalize(req)

	assert.Equal(t, measure.Centimeter, n.parcels[0].Width.Unit)
	assert.InEpsilon(t, 25.4, n.parcels[0].Width.Value, 1e-9)
	assert.Equal(t, measure.Kilogram, n.totalWeight.Unit)
	assert.InEpsilon(t, 4.5359237, n.totalWeight.Value, 1e-9)
	assert.Equal(t, measure.Kilogram, n.declarations[0].Weight.Unit)
	assert.InEpsilon(t, 0.45359237, n.declarations[0].Weight.Value, 1e-9)
	// The request itself is left untouched.
	assert.Equal(t, measure.Ounce, req.ExportDeclarations[0].Weight.Unit)
}

func TestNormalize_ContentsFromDeclarations(t *testing.T) {
	req := &shipper.ShipmentRequest{
		Parcels: []shipper.Parcel{shipper.NewParcel(1, 1, 1, 1, 0)},
		ExportDeclarations: []shipper.ExportDeclaration{
			{Description: "A", Quantity: 1, Value: usd(1000)},
			{Description: "B", Quantity: 2, Value: usd(550)},
		},
		Currency: "USD",
	}

	n := normalize(req)

	assert.Equal(t, "A,B", n.contents)
	assert.Equal(t, usd(1550), n.declaredValue)
	assert.Equal(t, "15.50", n.declaredValue.Format())
}

func TestNormalize_ExplicitValuesWin(t *testing.T) {
	req := &shipper.ShipmentRequest{
		Parcels:       []shipper.Parcel{shipper.NewParcel(1, 1, 1, 1, 2500)},
		Contents:      "Documents",
		DeclaredValue: measure.Money{Amount: 9900},
		InsuredValue:  usd(100),
		Currency:      "EUR",
		ExportDeclarations: []shipper.ExportDeclaration{
			{Description: "A", Value: usd(1000)},
		},
	}

	n := normalize(req)

	assert.Equal(t, "Documents", n.contents)
	assert.Equal(t, measure.Money{Amount: 9900, Currency: "EUR"}, n.declaredValue)
	assert.Equal(t, usd(100), n.insuredValue)
}

func TestNormalize_InsuredValueFromParcels(t *testing.T) {
	req := &shipper.ShipmentRequest{
		Parcels: []shipper.Parcel{
			shipper.NewParcel(1, 1, 1, 1, 1000),
			shipper.NewParcel(1, 1, 1, 1, 250),
		},
	}

	n := normalize(req)

	assert.Equal(t, usd(1250), n.insuredValue)
}

func TestNormalize_MixedCurrencies(t *testing.T) {
	req := &shipper.ShipmentRequest{
		Parcels: []shipper.Parcel{
			shipper.NewParcel(1, 1, 1, 1, 1000),
			{InsuredValue: measure.Money{Amount: 500, Currency: "JPY"}},
		},
		ExportDeclarations: []shipper.ExportDeclaration{
			{Description: "A", Quantity: 1, Value: usd(1000)},
			{Description: "B", Quantity: 1, Value: measure.Money{Amount: 550, Currency: "JPY"}},
			{Description: "C", Quantity: 1, Value: measure.Money{Amount: 200}},
		},
		Currency: "USD",
	}

	n := normalize(req)

	assert.Equal(t, usd(1200), n.declaredValue)
	assert.Equal(t, "12.00", n.declaredValue.Format())
	assert.Equal(t, usd(1000), n.insuredValue)
}

func TestNormalize_NoDeclarations(t *testing.T) {
	req := &shipper.ShipmentRequest{
		Parcels:  []shipper.Parcel{shipper.NewParcel(1, 1, 1, 1, 0)},
		Currency: "CAD",
	}

	n := normalize(req)

	assert.Empty(t, n.contents)
	assert.True(t, n.declaredValue.IsZero())
	assert.Equal(t, "CAD", n.declaredValue.Currency)
	assert.Empty(t, n.declarations)
}

func TestEffectiveServices(t *testing.T) {
	tests := []struct {
		name      string
		requested []string
		signature bool
		want      []string
	}{
		{"empty", nil, false, []string{}},
		{"signature appended", []string{"DD"}, true, []string{"DD", ServiceSignature}},
		{"signature already present", []string{ServiceSignature, "DD"}, true, []string{ServiceSignature, "DD"}},
		{"case-insensitive duplicate", []string{"sa"}, true, []string{"sa"}},
		{"order kept without signature", []string{"WY", "DD", "WY"}, false, []string{"WY", "DD"}},
		{"blanks dropped", []string{" ", "", " DD "}, false, []string{"DD"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, effectiveServices(tt.requested, tt.signature))
		})
	}
}

func TestEffectiveServices_Idempotent(t *testing.T) {
	once := effectiveServices([]string{"DD"}, true)
	twice := effectiveServices(once, true)

	assert.Equal(t, once, twice)
	assert.Equal(t, []string{"DD", ServiceSignature}, twice)
}
