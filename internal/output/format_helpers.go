package output

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/stockmatrix/sipcalc/pkg/money"
)

// FormatCurrency formats an amount with the currency's symbol, grouping and minor units.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount float64, currency string) string {
	return money.New(amount, currency).String()
}

// FormatAmount formats an amount with the currency's decimals and no symbol or grouping (CSV).
func FormatAmount(amount float64, currency string) string {
	return money.New(amount, currency).Round().Fixed()
}

// FormatPercentage formats a percent value with 2 decimals.
func FormatPercentage(percent float64) string {
	return percentValue(percent) + "%"
}

// percentValue is a percent with 2 decimals and no sign, for CSV cells.
func percentValue(percent float64) string {
	return decimal.NewFromFloat(percent).StringFixed(2)
}

// FormatProbability formats a 0..1 probability as a percentage.
func FormatProbability(p float64) string {
	return FormatPercentage(p * 100)
}

func intToString(i int) string { return strconv.Itoa(i) }

func floatToString(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
