package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// hasCreditMarker reports whether an amount token carries a leading "+".
// Every supported issuer prints credits (refunds, received payments) with an
// explicit "+" and charges unsigned, so "+" amounts are never transactions.
func hasCreditMarker(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), "+")
}

// parseAmount converts a Brazilian-format amount like "R$ 1.234,56" to a
// float64. "." is the thousands separator and "," the decimal separator.
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "R$", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "+", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "") // non-breaking space
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")

	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	return strconv.ParseFloat(s, 64)
}
