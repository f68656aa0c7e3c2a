// Package core provides the domain model and pure calculation rules for the
// budgeting dashboard: ledger aggregation, snapshot deltas, debt rules and
// the numeric/currency formatting helpers shared by every surface.
package core

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatThousands formats a numeric-looking string with a comma every three
// digits left of the decimal point. Any character that is not a digit or a
// dot is stripped first, so feeding an already-formatted string back in is a
// no-op (the function is idempotent). Empty input yields an empty string.
//
// Examples:
//
//	FormatThousands("1234567.89") -> "1,234,567.89"
//	FormatThousands("1,234.5")    -> "1,234.5"
func FormatThousands(input string) string {
	clean := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, input)
	if clean == "" {
		return ""
	}

	intPart := clean
	fracPart := ""
	if i := strings.IndexByte(clean, '.'); i >= 0 {
		intPart = clean[:i]
		rest := clean[i+1:]
		// Keep only the first fractional segment; extra dots are noise.
		if j := strings.IndexByte(rest, '.'); j >= 0 {
			rest = rest[:j]
		}
		fracPart = rest
	}

	grouped := groupThousands(intPart)
	if strings.Contains(clean, ".") {
		return grouped + "." + fracPart
	}
	return grouped
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	b.Grow(n + n/3)
	lead := n % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// StripThousands removes thousands separators, recovering the raw numeric
// string a formatted input was produced from.
func StripThousands(input string) string {
	return strings.ReplaceAll(input, ",", "")
}

// ToNumericValue parses a possibly-formatted amount string to a decimal.
// Parse failures yield zero rather than an error so currency displays never
// see NaN-like values.
func ToNumericValue(input string) decimal.Decimal {
	v, err := decimal.NewFromString(strings.TrimSpace(StripThousands(input)))
	if err != nil {
		return decimal.Zero
	}
	return v
}

var currencySymbols = map[string]string{
	"ILS": "₪",
	"USD": "$",
	"EUR": "€",
}

// FormatCurrency renders a whole-unit currency string (no fractional
// digits, half-up rounding) with a thousands-grouped magnitude and a
// leading minus for negative amounts. Unknown currency codes fall back to
// the code itself as the symbol.
func FormatCurrency(amount decimal.Decimal, currency string) string {
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = currency
	}
	rounded := amount.Round(0)
	neg := rounded.IsNegative()
	digits := rounded.Abs().String()
	out := symbol + groupThousands(digits)
	if neg {
		return "-" + out
	}
	return out
}

// FormatAmount formats a decimal with thousands separators and no currency
// symbol, for plain numeric cells.
func FormatAmount(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-" + FormatThousands(amount.Abs().String())
	}
	return FormatThousands(amount.String())
}

// FormatDate renders an ISO calendar date using the dd.mm.yyyy short
// convention. Unparseable input is returned unchanged.
func FormatDate(iso string) string {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(iso))
	if err != nil {
		return iso
	}
	return t.Format("02.01.2006")
}
