package models

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Every price in the store is shown in Brazilian reais, whatever currency
// the provider reports.
const (
	CurrencySymbol = "R$"
	minorUnitExp   = -2
)

var priceLocale = language.BrazilianPortuguese

// FormatPrice formats a minor-unit amount (centavos) as a pt-BR BRL string,
// e.g. 1990 -> "R$ 19,90". Negative amounts lead with the sign: "-R$ 19,90".
func FormatPrice(unitAmount int64) string {
	major := decimal.New(unitAmount, minorUnitExp)

	sign := ""
	if major.IsNegative() {
		sign = "-"
	}

	p := message.NewPrinter(priceLocale)
	return sign + CurrencySymbol + " " + p.Sprintf("%v", number.Decimal(
		major.Abs().InexactFloat64(),
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}
