package parser

import (
	"regexp"

	"github.com/contaviva/fatura-extractor/internal/models"
)

// Building blocks shared by the pattern table. Dates and amounts render very
// differently across issuers; the table below deliberately carries redundant,
// overlapping patterns and lets the deduplicator reconcile the results —
// missed transactions cost more than duplicate noise.
const (
	// "10 de nov. 2025", "3 de dezembro de 2025" (Inter)
	reDateLong = `\d{1,2}\s+de\s+[a-zçé]+\.?\s+(?:de\s+)?\d{4}`
	// "05/02/2026", "05/02" (C6, generic)
	reDateSlash = `\d{1,2}/\d{1,2}(?:/\d{2,4})?`
	// "01 jan" — C6 prints no year on transaction rows
	reDateDayMonth = `\d{1,2}\s+(?:jan|fev|mar|abr|mai|jun|jul|ago|set|out|nov|dez)\.?`
	// "R$ 1.234,56", optionally signed
	reAmountRS = `[+\-]?\s*R\$\s*\d[\d.]*,\d{2}`
	// amount with or without the R$ prefix
	reAmountAny = `[+\-]?\s*(?:R\$\s*)?\d[\d.]*,\d{2}`
)

type fieldOrder int

const (
	dateDescAmount fieldOrder = iota
	descDateAmount
)

// patternSpec is one row of the recognizer table: a compiled pattern, the
// issuer template it applies to, and how its three capture groups map to
// fields. Supporting a new issuer means adding rows, not branching logic.
type patternSpec struct {
	id       string
	template models.BankTemplate
	re       *regexp.Regexp
	order    fieldOrder
}

var patternTable = []patternSpec{
	// Inter: "10 de nov. 2025 | CP PARC SHOPPING INTER (Parcela 03 de 10) | - | R$ 146,73"
	{
		id:       "inter-pipe-strict",
		template: models.TemplateInter,
		re:       regexp.MustCompile(`(?i)(` + reDateLong + `)\s*\|\s*([^|\n]+?)\s*\|[^|\n]*\|\s*(` + reAmountRS + `)`),
		order:    dateDescAmount,
	},
	{
		id:       "inter-pipe-loose",
		template: models.TemplateInter,
		re:       regexp.MustCompile(`(?i)(` + reDateLong + `)\s*\|\s*([^|\n]+?)\s*\|\s*(` + reAmountRS + `)`),
		order:    dateDescAmount,
	},
	// Space-delimited Inter rows: description sandwiched between the date and
	// the next R$ amount.
	{
		id:       "inter-next-amount",
		template: models.TemplateInter,
		re:       regexp.MustCompile(`(?i)(` + reDateLong + `)\s+([^|\n]+?)\s+(` + reAmountRS + `)`),
		order:    dateDescAmount,
	},
	// Last-resort Inter form: tolerates arbitrary tokens between the fields.
	{
		id:       "inter-permissive",
		template: models.TemplateInter,
		re:       regexp.MustCompile(`(?i)(` + reDateLong + `)\s*(.{3,200}?)\s*(` + reAmountRS + `)`),
		order:    dateDescAmount,
	},

	// C6: "01 jan IFD*IFOOD CLUB 5,95", optionally pipe-delimited, amounts
	// with or without R$, and both column orders.
	{
		id:       "c6-day-month",
		template: models.TemplateC6,
		re:       regexp.MustCompile(`(?i)\b(` + reDateDayMonth + `)\s*\|?\s*([^|\n]{3,}?)\s*\|?\s+(` + reAmountAny + `)\b`),
		order:    dateDescAmount,
	},
	{
		id:       "c6-day-month-desc-first",
		template: models.TemplateC6,
		re:       regexp.MustCompile(`(?i)\b([^|\n]{3,}?)\s*\|?\s+(` + reDateDayMonth + `)\s*\|?\s+(` + reAmountAny + `)\b`),
		order:    descDateAmount,
	},
	{
		id:       "c6-slash",
		template: models.TemplateC6,
		re:       regexp.MustCompile(`(?i)\b(` + reDateSlash + `)\s*\|?\s*([^|\n]{3,}?)\s*\|?\s+(` + reAmountAny + `)\b`),
		order:    dateDescAmount,
	},
	{
		id:       "c6-slash-desc-first",
		template: models.TemplateC6,
		re:       regexp.MustCompile(`(?i)\b([^|\n]{3,}?)\s+(` + reDateSlash + `)\s*\|?\s+(` + reAmountAny + `)\b`),
		order:    descDateAmount,
	},

	// Generic catch-all for unrecognized issuers.
	{
		id:       "generic-slash",
		template: models.TemplateGeneric,
		re:       regexp.MustCompile(`(?i)\b(` + reDateSlash + `)\s+(.{3,}?)\s+(` + reAmountRS + `)`),
		order:    dateDescAmount,
	},
	{
		id:       "generic-desc-first",
		template: models.TemplateGeneric,
		re:       regexp.MustCompile(`(?i)\b(.{3,}?)\s+(` + reDateSlash + `)\s+(` + reAmountRS + `)`),
		order:    descDateAmount,
	},
}

func patternsFor(template models.BankTemplate) []patternSpec {
	var out []patternSpec
	for _, p := range patternTable {
		if p.template == template {
			out = append(out, p)
		}
	}
	return out
}
