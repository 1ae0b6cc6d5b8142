package shipper

import (
	"github.com/tournevent/shipbridge/pkg/measure"
)

// Parcel is one physical package. It is a value: conversions return copies.
type Parcel struct {
	Width        measure.Length
	Height       measure.Length
	Length       measure.Length
	Weight       measure.Mass
	InsuredValue measure.Money
}

// NewParcel builds a parcel measured in inches and pounds with an insured value
// in US cents.
func NewParcel(width, height, length, weight float64, insuredCents int64) Parcel {
	return Parcel{
		Width:        measure.Length{Value: width, Unit: measure.Inch},
		Height:       measure.Length{Value: height, Unit: measure.Inch},
		Length:       measure.Length{Value: length, Unit: measure.Inch},
		Weight:       measure.Mass{Value: weight, Unit: measure.Pound},
		InsuredValue: measure.Money{Amount: insuredCents, Currency: "USD"},
	}
}

// ConvertTo re-expresses the dimensions and weight in the given units. The
// insured value is left as is.
func (p Parcel) ConvertTo(lengthUnit measure.LengthUnit, massUnit measure.MassUnit) Parcel {
	return Parcel{
		Width:        p.Width.ConvertTo(lengthUnit),
		Height:       p.Height.ConvertTo(lengthUnit),
		Length:       p.Length.ConvertTo(lengthUnit),
		Weight:       p.Weight.ConvertTo(massUnit),
		InsuredValue: p.InsuredValue,
	}
}

// Volume returns width × height × length in cubic lengthUnit.
func (p Parcel) Volume(lengthUnit measure.LengthUnit) float64 {
	w := p.Width.ConvertTo(lengthUnit).Value
	h := p.Height.ConvertTo(lengthUnit).Value
	l := p.Length.ConvertTo(lengthUnit).Value
	if w <= 0 || h <= 0 || l <= 0 {
		return 0
	}
	return w * h * l
}

// TotalWeight sums the parcel weights in unit.
func TotalWeight(parcels []Parcel, unit measure.MassUnit) measure.Mass {
	total := measure.Mass{Unit: unit}
	for _, p := range parcels {
		total = total.Add(p.Weight)
	}
	return total
}
