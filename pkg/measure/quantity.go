// Package measure models the physical quantities and money amounts carried in
// shipment payloads.
package measure

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrInvalidMagnitude is returned when a quantity is negative, NaN or infinite.
var ErrInvalidMagnitude = errors.New("invalid magnitude")

// Unit is a unit of one physical dimension. The set of implementations is closed
// so a Quantity can only be converted within its own dimension.
type Unit interface {
	~string
	factor() float64
}

// Quantity is a magnitude tagged with a unit of dimension U. A non-zero
// Value requires a Unit; the zero Quantity converts to any unit.
type Quantity[U Unit] struct {
	Value float64
	Unit  U
}

// Length is a distance quantity.
type Length = Quantity[LengthUnit]

// Mass is a weight quantity.
type Mass = Quantity[MassUnit]

// New returns a quantity after checking the magnitude is finite and non-negative.
func New[U Unit](value float64, unit U) (Quantity[U], error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return Quantity[U]{}, fmt.Errorf("%w: %v %s", ErrInvalidMagnitude, value, string(unit))
	}
	return Quantity[U]{Value: value, Unit: unit}, nil
}

// ConvertTo re-expresses q in the target unit. It panics when q has a
// non-zero value and no unit.
func (q Quantity[U]) ConvertTo(target U) Quantity[U] {
	if q.Unit == target {
		return q
	}
	if q.Unit == "" && q.Value == 0 {
		return Quantity[U]{Unit: target}
	}
	from, to := q.Unit.factor(), target.factor()
	if from == 0 || to == 0 {
		panic(fmt.Sprintf("measure: unknown unit conversion %q -> %q", string(q.Unit), string(target)))
	}
	return Quantity[U]{Value: q.Value * from / to, Unit: target}
}

// Add returns q + other expressed in q's unit.
func (q Quantity[U]) Add(other Quantity[U]) Quantity[U] {
	if q.Unit == "" {
		return other
	}
	return Quantity[U]{Value: q.Value + other.ConvertTo(q.Unit).Value, Unit: q.Unit}
}

// IsZero reports whether the magnitude is zero.
func (q Quantity[U]) IsZero() bool {
	return q.Value == 0
}

// Format renders the magnitude in fixed-point notation with the given number of
// decimal places.
func (q Quantity[U]) Format(places int) string {
	return strconv.FormatFloat(q.Value, 'f', places, 64)
}

func (q Quantity[U]) String() string {
	return strconv.FormatFloat(q.Value, 'f', -1, 64) + " " + string(q.Unit)
}
