package parser

import (
	"regexp"
	"strings"

	"github.com/contaviva/fatura-extractor/internal/models"
)

// Portuguese long-form date, e.g. "10 de nov. 2025" or "3 de dezembro de 2025".
// Inter is the only supported issuer that prints dates this way, so the shape
// doubles as a structural fingerprint when no brand token is present.
var longFormDatePattern = regexp.MustCompile(
	`(?i)\b\d{1,2}\s+de\s+(?:jan|fev|mar|abr|mai|jun|jul|ago|set|out|nov|dez)[a-zç]*\.?\s+(?:de\s+)?\d{4}\b`,
)

// DetectTemplate classifies a statement into one of the known issuer layouts.
// It never fails; an unrecognized statement gets the generic template.
func DetectTemplate(flattened string) models.BankTemplate {
	lower := strings.ToLower(flattened)

	if containsAny(lower, []string{"c6 bank", "c6 carbon", "cartão c6", "cartao c6"}) {
		return models.TemplateC6
	}
	if containsAny(lower, []string{"banco inter", "inter&co", "bancointer"}) {
		return models.TemplateInter
	}

	// No brand token — fall back to the date-shape heuristic.
	if longFormDatePattern.MatchString(flattened) {
		return models.TemplateInter
	}

	return models.TemplateGeneric
}

func containsAny(text string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}
