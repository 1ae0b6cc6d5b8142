package dhl

import (
	"strings"

	"github.com/tournevent/shipbridge/pkg/measure"
	"github.com/tournevent/shipbridge/pkg/shipper"
)

// Special service codes.
const (
	ServiceSignature = "SA"
	ServiceInsurance = "II"
)

// normalizedRequest is a ShipmentRequest with every quantity expressed in one
// unit system and every defaulted value resolved.
type normalizedRequest struct {
	req *shipper.ShipmentRequest

	lengthUnit measure.LengthUnit
	massUnit   measure.MassUnit

	parcels      []shipper.Parcel
	declarations []shipper.ExportDeclaration
	totalWeight  measure.Mass

	contents      string
	declaredValue measure.Money
	insuredValue  measure.Money
	services      []string
}

// normalize never fails: missing values are defaulted, not rejected.
func normalize(req *shipper.ShipmentRequest) normalizedRequest {
	lengthUnit, massUnit := req.UnitSystem.Units()

	parcels := make([]shipper.Parcel, len(req.Parcels))
	for i, p := range req.Parcels {
		parcels[i] = p.ConvertTo(lengthUnit, massUnit)
	}

	declarations := make([]shipper.ExportDeclaration, len(req.ExportDeclarations))
	for i, d := range req.ExportDeclarations {
		d.Weight = d.Weight.ConvertTo(massUnit)
		declarations[i] = d
	}

	return normalizedRequest{
		req:           req,
		lengthUnit:    lengthUnit,
		massUnit:      massUnit,
		parcels:       parcels,
		declarations:  declarations,
		totalWeight:   shipper.TotalWeight(parcels, massUnit),
		contents:      contents(req),
		declaredValue: declaredValue(req),
		insuredValue:  insuredValue(req),
		services:      effectiveServices(req.SpecialServices, req.SignatureRequired),
	}
}

func contents(req *shipper.ShipmentRequest) string {
	if req.Contents != "" {
		return req.Contents
	}
	descriptions := make([]string, len(req.ExportDeclarations))
	for i, d := range req.ExportDeclarations {
		descriptions[i] = d.Description
	}
	return strings.Join(descriptions, ",")
}

// declaredValue sums export declaration values in the request currency when no
// explicit value was given.
func declaredValue(req *shipper.ShipmentRequest) measure.Money {
	if !req.DeclaredValue.IsZero() {
		return withCurrency(req.DeclaredValue, req.Currency)
	}
	values := make([]measure.Money, len(req.ExportDeclarations))
	for i, d := range req.ExportDeclarations {
		values[i] = d.Value
	}
	return sumIn(req.Currency, values)
}

// insuredValue falls back to the sum of the parcels' insured values.
func insuredValue(req *shipper.ShipmentRequest) measure.Money {
	if !req.InsuredValue.IsZero() {
		return withCurrency(req.InsuredValue, req.Currency)
	}
	values := make([]measure.Money, len(req.Parcels))
	for i, p := range req.Parcels {
		values[i] = p.InsuredValue
	}
	return withCurrency(sumIn(req.Currency, values), req.Currency)
}

// sumIn adds the amounts held in currency. Amounts without a currency count as
// currency; amounts in any other currency are left out. With no currency the
// first one seen is used.
func sumIn(currency string, values []measure.Money) measure.Money {
	total := measure.Money{Currency: currency}
	for _, v := range values {
		sum, err := total.Add(withCurrency(v, currency))
		if err != nil {
			continue
		}
		total = sum
	}
	return total
}

func withCurrency(m measure.Money, fallback string) measure.Money {
	if m.Currency == "" {
		m.Currency = fallback
	}
	return m
}

// effectiveServices returns the requested codes without blanks or repeats, in
// first-seen order, with the signature code appended when required.
func effectiveServices(requested []string, signatureRequired bool) []string {
	services := make([]string, 0, len(requested)+1)
	for _, code := range requested {
		services = appendUnique(services, strings.TrimSpace(code))
	}
	if signatureRequired {
		services = appendUnique(services, ServiceSignature)
	}
	return services
}

func appendUnique(codes []string, code string) []string {
	if code == "" {
		return codes
	}
	for _, c := range codes {
		if strings.EqualFold(c, code) {
			return codes
		}
	}
	return append(codes, code)
}
