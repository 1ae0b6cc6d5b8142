package measure

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
)

// ErrCurrencyMismatch is returned when combining amounts in different currencies.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// Money is an amount in minor units (cents for USD) of an ISO 4217 currency.
type Money struct {
	Amount   int64
	Currency string
}

// MoneyFromDecimal converts a major-unit amount such as 15.5 into Money.
func MoneyFromDecimal(value float64, code string) Money {
	return Money{
		Amount:   int64(math.Round(value * math.Pow10(Scale(code)))),
		Currency: strings.ToUpper(code),
	}
}

// Scale returns the number of minor-unit digits for a currency code, 2 when the
// code is unknown.
func Scale(code string) int {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return 2
	}
	scale, _ := currency.Standard.Rounding(unit)
	return scale
}

// Add sums two amounts of the same currency. A zero amount with no currency
// adopts the other operand's currency.
func (m Money) Add(other Money) (Money, error) {
	switch {
	case m.Currency == "":
		if m.Amount != 0 {
			return Money{}, fmt.Errorf("%w: %q and %q", ErrCurrencyMismatch, m.Currency, other.Currency)
		}
		return other, nil
	case other.Currency == "" && other.Amount == 0:
		return m, nil
	case !strings.EqualFold(m.Currency, other.Currency):
		return Money{}, fmt.Errorf("%w: %q and %q", ErrCurrencyMismatch, m.Currency, other.Currency)
	}
	return Money{Amount: m.Amount + other.Amount, Currency: m.Currency}, nil
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.Amount == 0
}

// Decimal returns the amount in major units.
func (m Money) Decimal() float64 {
	return float64(m.Amount) / math.Pow10(Scale(m.Currency))
}

// Format renders the amount in major units using the currency's minor-unit scale.
// The conversion is done on integers so no rounding is introduced.
func (m Money) Format() string {
	scale := Scale(m.Currency)
	amount := m.Amount
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	if scale == 0 {
		return sign + strconv.FormatInt(amount, 10)
	}
	pow := int64(math.Pow10(scale))
	frac := strconv.FormatInt(amount%pow, 10)
	frac = strings.Repeat("0", scale-len(frac)) + frac
	return sign + strconv.FormatInt(amount/pow, 10) + "." + frac
}

func (m Money) String() string {
	return m.Format() + " " + m.Currency
}
