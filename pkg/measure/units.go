package measure

// LengthUnit is a unit of distance.
type LengthUnit string

const (
	Inch       LengthUnit = "in"
	Foot       LengthUnit = "ft"
	Millimeter LengthUnit = "mm"
	Centimeter LengthUnit = "cm"
	Meter      LengthUnit = "m"
)

// meters per unit
func (u LengthUnit) factor() float64 {
	switch u {
	case Inch:
		return 0.0254
	case Foot:
		return 0.3048
	case Millimeter:
		return 0.001
	case Centimeter:
		return 0.01
	case Meter:
		return 1
	default:
		return 0
	}
}

// MassUnit is a unit of weight.
type MassUnit string

const (
	Ounce    MassUnit = "oz"
	Pound    MassUnit = "lb"
	Gram     MassUnit = "g"
	Kilogram MassUnit = "kg"
)

// kilograms per unit
func (u MassUnit) factor() float64 {
	switch u {
	case Ounce:
		return 0.028349523125
	case Pound:
		return 0.45359237
	case Gram:
		return 0.001
	case Kilogram:
		return 1
	default:
		return 0
	}
}
