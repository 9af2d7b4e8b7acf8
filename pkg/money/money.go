package money

import (
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when a plan or report does not name one.
const DefaultCurrency = "INR"

// Money represents a monetary amount in a single currency with proper financial precision
type Money struct {
	decimal.Decimal
	Currency string
}

// New creates a new Money instance from a float64
func New(value float64, currency string) Money {
	return Money{Decimal: decimal.NewFromFloat(value), Currency: normalize(currency)}
}

// NewFromDecimal creates a new Money instance from a decimal.Decimal
func NewFromDecimal(d decimal.Decimal, currency string) Money {
	return Money{Decimal: d, Currency: normalize(currency)}
}

// NewFromString creates a new Money instance from a string
func NewFromString(value, currency string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{Decimal: d, Currency: normalize(currency)}, nil
}

// IsKnownCurrency reports whether code is an ISO 4217 code go-money can format.
func IsKnownCurrency(code string) bool {
	return gomoney.GetCurrency(strings.ToUpper(strings.TrimSpace(code))) != nil
}

// Round rounds the money amount to the currency's minor unit using banker's rounding
func (m Money) Round() Money {
	return Money{Decimal: m.Decimal.RoundBank(m.fraction()), Currency: m.Currency}
}

// Add adds another Money amount
func (m Money) Add(other Money) Money {
	return Money{Decimal: m.Decimal.Add(other.Decimal), Currency: m.Currency}
}

// Sub subtracts another Money amount
func (m Money) Sub(other Money) Money {
	return Money{Decimal: m.Decimal.Sub(other.Decimal), Currency: m.Currency}
}

// Fixed returns the amount with the currency's number of decimals and no grouping.
func (m Money) Fixed() string {
	return m.Decimal.StringFixed(m.fraction())
}

// String returns the amount formatted for display, e.g. "₹1,161,695.08" or "$1,234.50".
func (m Money) String() string {
	cur := m.currency()
	minor := m.Decimal.Shift(int32(cur.Fraction)).RoundBank(0)
	return cur.Formatter().Format(minor.IntPart())
}

func (m Money) fraction() int32 {
	return int32(m.currency().Fraction)
}

// currency never returns nil: unknown codes fall back to the default currency.
func (m Money) currency() gomoney.Currency {
	if c := gomoney.GetCurrency(m.Currency); c != nil {
		return *c
	}
	return *gomoney.GetCurrency(DefaultCurrency)
}

func normalize(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultCurrency
	}
	return code
}
