package entities

import "github.com/shopspring/decimal"

const (
	// MoneyPlaces is the number of decimal places kept for currency amounts
	MoneyPlaces = 2
	// PercentPlaces is the number of decimal places kept for ratios such as DiscountPercent
	PercentPlaces = 4
)

// RoundMoney rounds a finished currency computation to MoneyPlaces
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// FormatMoney renders an amount with exactly MoneyPlaces decimals
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(MoneyPlaces)
}

// FormatPercent renders a ratio with exactly PercentPlaces decimals
func FormatPercent(d decimal.Decimal) string {
	return d.StringFixed(PercentPlaces)
}

// FormatBool renders booleans the way the downstream BI files expect them
func FormatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// ParseBool accepts the forms written by FormatBool plus common spellings
func ParseBool(s string) (bool, bool) {
	switch s {
	case "True", "true", "TRUE", "1":
		return true, true
	case "False", "false", "FALSE", "0":
		return false, true
	default:
		return false, false
	}
}
