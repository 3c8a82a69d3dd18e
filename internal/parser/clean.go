package parser

import (
	"regexp"
	"strings"
)

const (
	maxDescriptionLen = 200
	minDescriptionLen = 3

	// Below this length a description containing a structural word is
	// assumed to be boilerplate (column header, running total) rather than
	// a real merchant name that happens to include the word.
	shortDescriptionLen = 50
)

// Structural words that appear in statement boilerplate: column headers,
// totals, summary blocks. A description that reduces to one of these is not
// a transaction even when it sits next to a well-formed date and amount.
var structuralWords = []string{
	"TOTAL", "SUBTOTAL", "RESUMO", "FATURA", "VENCIMENTO", "PAGAMENTO",
	"SALDO", "CARTÃO", "CARTAO", "BENEFICIÁRIO", "BENEFICIARIO",
	"MOVIMENTAÇÃO", "MOVIMENTACAO", "DATA", "LANÇAMENTO", "LANCAMENTO",
	"LIMITE",
}

// Issuer brand tokens are multi-word so that merchants like
// "CP PARC SHOPPING INTER" survive the filter.
var issuerTokens = []string{"BANCO INTER", "C6 BANK"}

var (
	innerWhitespace = regexp.MustCompile(`\s+`)
	separatorOnly   = regexp.MustCompile(`^[\s|\-–]*$`)
)

func collapseWhitespace(s string) string {
	return strings.TrimSpace(innerWhitespace.ReplaceAllString(s, " "))
}

// cleanDescription normalizes a raw description token and reports whether it
// looks like a real transaction description at all.
func cleanDescription(raw string) (string, bool) {
	s := collapseWhitespace(raw)
	s = strings.Trim(s, "|-– ")
	s = collapseWhitespace(s)

	if separatorOnly.MatchString(s) {
		return "", false
	}
	if r := []rune(s); len(r) > maxDescriptionLen {
		s = strings.TrimSpace(string(r[:maxDescriptionLen]))
	}
	if len([]rune(s)) < minDescriptionLen {
		return "", false
	}
	if isStructural(s) {
		return "", false
	}
	return s, true
}

// isStructural rejects statement boilerplate: the description is exactly a
// structural word, or is short and contains one as a whole word or an issuer
// brand token.
func isStructural(desc string) bool {
	upper := strings.ToUpper(desc)

	for _, word := range structuralWords {
		if upper == word {
			return true
		}
	}
	for _, token := range issuerTokens {
		if upper == token {
			return true
		}
	}

	if len([]rune(upper)) >= shortDescriptionLen {
		return false
	}

	fields := strings.Fields(upper)
	for _, field := range fields {
		for _, word := range structuralWords {
			if field == word {
				return true
			}
		}
	}
	for _, token := range issuerTokens {
		if strings.Contains(upper, token) {
			return true
		}
	}
	return false
}
