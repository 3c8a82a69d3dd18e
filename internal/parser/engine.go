package parser

import (
	"strings"

	"github.com/contaviva/fatura-extractor/internal/extractor"
	"github.com/contaviva/fatura-extractor/internal/models"
)

// Candidate is one raw pattern match that survived validation. Its date and
// amount are still text; Finalize performs the locale-aware conversion.
type Candidate struct {
	PatternID   string
	DateText    string
	Description string
	AmountText  string
}

// ExtractCandidates runs every pattern applicable to the template over every
// textual view of the document and pools the surviving matches. No pattern
// wins over another; overlap is resolved later by deduplication.
func ExtractCandidates(template models.BankTemplate, view extractor.TextView) []Candidate {
	var out []Candidate
	segments := buildSegments(view)

	for _, p := range patternsFor(template) {
		for _, segment := range segments {
			for _, m := range p.re.FindAllStringSubmatch(segment, -1) {
				if c, ok := candidateFromMatch(p, m); ok {
					out = append(out, c)
				}
			}
		}
	}
	return out
}

// CountByPattern tallies candidates per source pattern, for diagnostics.
func CountByPattern(cands []Candidate) map[string]int {
	counts := make(map[string]int)
	for _, c := range cands {
		counts[c.PatternID]++
	}
	return counts
}

// buildSegments returns the textual views a pattern runs against: each line
// on its own, sliding windows of 2 and 3 adjacent lines (a transaction split
// across consecutive lines only matches in a window), the line-preserving
// blob, and the fully flattened blob.
func buildSegments(view extractor.TextView) []string {
	segments := make([]string, 0, 2*len(view.Lines)+2)
	segments = append(segments, view.Lines...)
	for i := 0; i+1 < len(view.Lines); i++ {
		segments = append(segments, view.Lines[i]+" "+view.Lines[i+1])
	}
	for i := 0; i+2 < len(view.Lines); i++ {
		segments = append(segments, strings.Join(view.Lines[i:i+3], " "))
	}
	segments = append(segments, view.LinePreserving, view.Flattened)
	return segments
}

// candidateFromMatch maps the three capture groups to fields per the
// pattern's column order and applies the shared validation rules.
func candidateFromMatch(p patternSpec, m []string) (Candidate, bool) {
	if len(m) < 4 {
		return Candidate{}, false
	}

	var dateText, rawDesc, amountText string
	switch p.order {
	case descDateAmount:
		rawDesc, dateText, amountText = m[1], m[2], m[3]
	default:
		dateText, rawDesc, amountText = m[1], m[2], m[3]
	}

	// Credits are marked "+" by every supported issuer and are never
	// extracted; this subsystem only recovers charges.
	if hasCreditMarker(amountText) {
		return Candidate{}, false
	}
	if amount, err := parseAmount(amountText); err != nil || amount <= 0 {
		return Candidate{}, false
	}

	desc, ok := cleanDescription(rawDesc)
	if !ok {
		return Candidate{}, false
	}

	return Candidate{
		PatternID:   p.id,
		DateText:    strings.TrimSpace(dateText),
		Description: desc,
		AmountText:  strings.TrimSpace(amountText),
	}, true
}
