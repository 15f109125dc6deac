package services

import (
	"fmt"
	"strings"
)

// FormatPLN formats an amount in Polish złoty notation: thin-space thousand
// groups, comma decimal separator and a trailing currency symbol, e.g.
// "12 345,60 zł". The result always has exactly 2 decimal places; this is
// the only place where rounding to currency precision happens.
func FormatPLN(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(raw, ".", 2)
	intPart := groupThousands(parts[0])
	decPart := parts[1]

	result := intPart + "," + decPart + " zł"
	if negative {
		result = "-" + result
	}
	return result
}

// FormatPercent renders a discount or VAT rate without trailing zeros,
// e.g. 23 -> "23%", 12.5 -> "12,5%".
func FormatPercent(percent float64) string {
	s := fmt.Sprintf("%.2f", percent)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return strings.ReplaceAll(s, ".", ",") + "%"
}

// groupThousands inserts spaces into an integer string every 3 digits from
// the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + " " + result
		remaining = remaining[:len(remaining)-3]
	}
	return remaining + " " + result
}
