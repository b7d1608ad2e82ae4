// Package quotation converts the broker's fixed-point price representation
// to plain floats.
package quotation

import "range-trading-bot/internal/types"

const nanoFactor = 1_000_000_000

// ToFloat converts a Quotation to its real value: units + nano/1e9.
func ToFloat(q types.Quotation) float64 {
	return float64(q.Units) + float64(q.Nano)/nanoFactor
}

// MoneyToFloat converts a MoneyValue, ignoring the currency.
func MoneyToFloat(m types.MoneyValue) float64 {
	return ToFloat(m.Quotation())
}

// Lots truncates a fixed-point lot quantity to a whole lot count.
func Lots(q types.Quotation) int64 {
	return int64(ToFloat(q))
}
