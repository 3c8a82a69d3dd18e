package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Overridable clock. Only the implied-year and billing-period fallbacks read
// it; every other parsing stage is a pure function of the input text.
var now = time.Now

// Portuguese month names, keyed by the three-letter abbreviation issuers use.
var ptMonths = map[string]time.Month{
	"jan": time.January,
	"fev": time.February,
	"mar": time.March,
	"abr": time.April,
	"mai": time.May,
	"jun": time.June,
	"jul": time.July,
	"ago": time.August,
	"set": time.September,
	"out": time.October,
	"nov": time.November,
	"dez": time.December,
}

var (
	// "10 de nov. 2025", "3 de dezembro de 2025"
	longFormDateCapture = regexp.MustCompile(`(?i)\b(\d{1,2})\s+de\s+([a-zçé]+)\.?\s+(?:de\s+)?(\d{4})\b`)
	// "05/02/2026", "05/02/26"
	slashDateCapture = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{2,4})\b`)
	// "05/02" with no year at all
	slashNoYearCapture = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})$`)
	// already-normalized ISO input passes through unchanged
	isoDateCapture = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	// "01 jan" — C6 prints no year on transaction rows
	dayMonthCapture = regexp.MustCompile(`(?i)\b(\d{1,2})\s+(jan|fev|mar|abr|mai|jun|jul|ago|set|out|nov|dez)\b`)

	// Year anchors for the day+month form: a 4-digit year near a statement
	// label, or any fully-dated occurrence elsewhere in the document.
	labelYearPattern = regexp.MustCompile(`(?i)(?:fatura|refer[êe]ncia|per[íi]odo).{0,24}?\b(20\d{2})\b`)
	slashYearPattern = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/(20\d{2})\b`)
)

// monthFromName resolves a Portuguese month name or abbreviation, with or
// without accents ("nov", "nov.", "novembro", "março", "marco").
func monthFromName(name string) (time.Month, bool) {
	name = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(name), "."))
	name = strings.NewReplacer("ç", "c", "é", "e").Replace(name)
	if len(name) < 3 {
		return 0, false
	}
	m, ok := ptMonths[name[:3]]
	return m, ok
}

// parseDate normalizes any supported date text to ISO YYYY-MM-DD.
// impliedYear supplies the year for forms that do not carry one.
func parseDate(s string, impliedYear int) (string, bool) {
	s = strings.TrimSpace(s)

	if m := isoDateCapture.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		return isoDate(year, time.Month(month), day)
	}

	if m := longFormDateCapture.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[3])
		if month, ok := monthFromName(m[2]); ok {
			return isoDate(year, month, day)
		}
	}

	if m := slashDateCapture.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if year < 100 {
			year += 2000
		}
		return isoDate(year, time.Month(month), day)
	}

	if m := slashNoYearCapture.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		return isoDate(impliedYear, time.Month(month), day)
	}

	if m := dayMonthCapture.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		if month, ok := monthFromName(m[2]); ok {
			return isoDate(impliedYear, month, day)
		}
	}

	return "", false
}

// isoDate formats a calendar date, rejecting impossible day/month values
// (time.Date silently normalizes them instead of failing).
func isoDate(year int, month time.Month, day int) (string, bool) {
	if year < 1900 || month < time.January || month > time.December || day < 1 || day > 31 {
		return "", false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != month {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

// ImpliedYear scans the document for the year that year-less transaction
// dates belong to: a 4-digit year near FATURA/REFERÊNCIA/PERÍODO labels, then
// any DD/MM/YYYY occurrence, then the current calendar year.
func ImpliedYear(flattened string) int {
	if m := labelYearPattern.FindStringSubmatch(flattened); m != nil {
		year, _ := strconv.Atoi(m[1])
		return year
	}
	if m := slashYearPattern.FindStringSubmatch(flattened); m != nil {
		year, _ := strconv.Atoi(m[1])
		return year
	}
	return now().Year()
}
