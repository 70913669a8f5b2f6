package receipts

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultSymbol is the colón sign used when the caller does not override it.
const DefaultSymbol = "₡"

// Printed forms group thousands with a comma and use a point for decimals,
// matching the cooperative's paper receipts.
var printer = message.NewPrinter(language.AmericanEnglish)

// FormatAmount renders a monetary amount with thousands separators and
// exactly two fraction digits: 15000.5 -> "₡15,000.50", 0 -> "₡0.00".
// Rounded values with no exact float64 form are grouped from the decimal
// string instead, so the output stays exact at any magnitude.
func FormatAmount(symbol string, amount decimal.Decimal) string {
	if len(symbol) == 0 {
		symbol = DefaultSymbol
	}

	rounded := amount.Round(2)

	if value, exact := rounded.Float64(); exact {
		return symbol + printer.Sprint(number.Decimal(value,
			number.MinFractionDigits(2),
			number.MaxFractionDigits(2),
		))
	}

	return symbol + groupDigits(rounded.StringFixed(2))
}

func groupDigits(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	dot := strings.IndexByte(s, '.')
	ints, frac := s[:dot], s[dot:]

	var b strings.Builder
	b.WriteString(sign)
	for i := 0; i < len(ints); i++ {
		if i > 0 && (len(ints)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(ints[i])
	}
	b.WriteString(frac)

	return b.String()
}
