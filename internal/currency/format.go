package currency

import (
	"math"
	"strings"

	xcurrency "golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/noah-isme/pos-tender/internal/money"
)

// DefaultLocale is used whenever a locale is empty or cannot be parsed.
const DefaultLocale = "en-US"

// CSS hints returned by Class.
const (
	ClassNegative = "text-red-600"
	ClassDefault  = "text-gray-900"
)

var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"INR": "₹",
	"EGP": "E£",
	"SAR": "﷼",
	"AED": "د.إ",
	"KES": "KSh",
	"NGN": "₦",
}

// Symbol returns the display symbol for an ISO currency code.
func Symbol(code string) string {
	return SymbolFor(code, DefaultLocale)
}

// SymbolFor resolves a symbol from the fixed table first, then from CLDR data
// for the locale, and finally falls back to the code itself.
func SymbolFor(code, locale string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	if sym, ok := symbols[code]; ok {
		return sym
	}
	unit, err := xcurrency.ParseISO(code)
	if err != nil {
		return code
	}
	if sym := cldrSymbol(unit, locale); sym != "" {
		return sym
	}
	return code
}

func cldrSymbol(unit xcurrency.Unit, locale string) (sym string) {
	defer func() {
		if recover() != nil {
			sym = ""
		}
	}()
	sym = strings.TrimSpace(message.NewPrinter(tagFor(locale)).Sprint(xcurrency.Symbol(unit)))
	if strings.Contains(sym, "%!") {
		// fmt reports formatter failures inline
		return ""
	}
	return sym
}

// Format renders v as "<symbol> <amount>" with locale grouping and two decimals.
// Negative values get a leading minus in front of the symbol. Non-finite input
// renders as an empty string.
func Format(v float64, code, locale string) string {
	if !finite(v) {
		return ""
	}
	rounded := money.Round2(v)
	text := formatAbs(math.Abs(rounded), locale)
	if sym := SymbolFor(code, locale); sym != "" {
		text = sym + " " + text
	}
	if rounded < 0 {
		return "-" + text
	}
	return text
}

// FormatNumber renders v with locale grouping and two decimals, without a symbol.
// Non-finite input renders as "0.00".
func FormatNumber(v float64, locale string) string {
	if !finite(v) {
		return "0.00"
	}
	rounded := money.Round2(v)
	text := formatAbs(math.Abs(rounded), locale)
	if rounded < 0 {
		return "-" + text
	}
	return text
}

// Class returns a style hint distinguishing negative amounts.
func Class(v float64) string {
	if v < 0 {
		return ClassNegative
	}
	return ClassDefault
}

func formatAbs(v float64, locale string) string {
	p := message.NewPrinter(tagFor(locale))
	return p.Sprint(number.Decimal(v, number.Scale(money.Places)))
}

func tagFor(locale string) language.Tag {
	locale = strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return language.AmericanEnglish
	}
	return tag
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
