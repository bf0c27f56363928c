package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// PriceFormatter renders prices for display in a fixed locale and currency,
// e.g. "R$ 1.234,50" for pt-BR/BRL. Amounts are always shown with two
// fraction digits and rounded half away from zero.
type PriceFormatter struct {
	tag        language.Tag
	unit       currency.Unit
	symbol     string
	printer    *message.Printer
	decimalSep string
}

// NewPriceFormatter creates a formatter for a BCP 47 locale and an ISO 4217
// currency code. An empty symbol falls back to the currency code.
func NewPriceFormatter(locale, currencyCode, symbol string) (*PriceFormatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(currencyCode)))
	if err != nil {
		return nil, fmt.Errorf("invalid currency %q: %w", currencyCode, err)
	}
	if strings.TrimSpace(symbol) == "" {
		symbol = unit.String()
	}

	p := message.NewPrinter(tag)
	return &PriceFormatter{
		tag:        tag,
		unit:       unit,
		symbol:     symbol,
		printer:    p,
		decimalSep: decimalSeparator(p),
	}, nil
}

// MustPriceFormatter is NewPriceFormatter for known-good settings
func MustPriceFormatter(locale, currencyCode, symbol string) *PriceFormatter {
	f, err := NewPriceFormatter(locale, currencyCode, symbol)
	if err != nil {
		panic(err)
	}
	return f
}

// Currency returns the ISO 4217 code
func (f *PriceFormatter) Currency() string {
	return f.unit.String()
}

// Locale returns the BCP 47 tag
func (f *PriceFormatter) Locale() string {
	return f.tag.String()
}

// Format renders the amount without a currency symbol, e.g. "1.234,50"
func (f *PriceFormatter) Format(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	intPart, fraction, _ := strings.Cut(rounded.Abs().StringFixed(2), ".")

	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		// beyond int64; skip grouping
		return rounded.StringFixed(2)
	}

	out := f.printer.Sprintf("%v", number.Decimal(n)) + f.decimalSep + fraction
	if rounded.IsNegative() {
		out = "-" + out
	}
	return out
}

// FormatWithSymbol renders the amount with the currency symbol, e.g. "R$ 1.234,50"
func (f *PriceFormatter) FormatWithSymbol(amount decimal.Decimal) string {
	return f.symbol + " " + f.Format(amount)
}

// FormatRange renders a single price or "min - max"
func (f *PriceFormatter) FormatRange(r catalog.PriceRange) string {
	if r.IsSinglePrice() {
		return f.FormatWithSymbol(r.Min)
	}
	return f.FormatWithSymbol(r.Min) + " - " + f.FormatWithSymbol(r.Max)
}

// decimalSeparator asks the locale how it writes one half
func decimalSeparator(p *message.Printer) string {
	half := p.Sprintf("%v", number.Decimal(0.5, number.Scale(1)))
	sep := strings.TrimSuffix(strings.TrimPrefix(half, "0"), "5")
	if sep == "" {
		return "."
	}
	return sep
}
