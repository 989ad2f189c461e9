// Package currency formatea montos en Rupia indonesia (locale id-ID).
package currency

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.Indonesian)

// FormatIDR devuelve el monto con separadores indonesios, ej. "Rp85.000".
func FormatIDR(amount float64) string {
	return printer.Sprintf("Rp%v", number.Decimal(amount, number.MaxFractionDigits(0)))
}

// FormatIDRDecimal igual que FormatIDR para montos decimal.Decimal.
func FormatIDRDecimal(amount decimal.Decimal) string {
	f, _ := amount.Float64()
	return FormatIDR(f)
}
