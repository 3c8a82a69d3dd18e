package parser

import (
	"regexp"
	"strconv"
	"time"

	"github.com/contaviva/fatura-extractor/internal/models"
)

var (
	// "VENCIMENTO 05/02/2026" — the statement's due date.
	dueDatePattern = regexp.MustCompile(`(?i)vencimento\s*:?\s*(\d{1,2})/(\d{1,2})/(\d{4})`)
	// "FATURA DE 01/2026", "REFERÊNCIA: 01/2026" — explicit period labels (C6).
	periodLabelPattern = regexp.MustCompile(`(?i)(?:fatura\s+de|refer[êe]ncia|per[íi]odo)\s*:?\s*(\d{1,2})/(\d{4})`)
	// every fully-dated occurrence, for the majority vote
	allSlashDates = regexp.MustCompile(`\b\d{1,2}/(\d{1,2})/(\d{4})\b`)
)

// InferBillingPeriod determines which billing month/year a statement covers.
// Strategies in priority order: due-date anchor (the billing month is the one
// before the due month), explicit period labels, majority vote over observed
// transaction dates, and finally the current calendar month. It never fails;
// only accuracy is at stake.
func InferBillingPeriod(flattened string) models.BillingPeriod {
	template := DetectTemplate(flattened)

	if m := dueDatePattern.FindStringSubmatch(flattened); m != nil {
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if month >= 1 && month <= 12 {
			return previousMonth(time.Month(month), year)
		}
	}

	if template == models.TemplateC6 {
		if m := periodLabelPattern.FindStringSubmatch(flattened); m != nil {
			month, _ := strconv.Atoi(m[1])
			year, _ := strconv.Atoi(m[2])
			if month >= 1 && month <= 12 {
				return models.BillingPeriod{Month: time.Month(month), Year: year}
			}
		}
	}

	if period, ok := majorityVote(flattened, template); ok {
		return period
	}

	current := now()
	return models.BillingPeriod{Month: current.Month(), Year: current.Year()}
}

// majorityVote picks the month appearing most often among the document's
// dates, paired with the year of the first dated occurrence. C6 statements
// vote with DD/MM/YYYY dates, the others with Portuguese long-form dates.
func majorityVote(flattened string, template models.BankTemplate) (models.BillingPeriod, bool) {
	votes := make(map[time.Month]int)
	firstYear := 0

	if template == models.TemplateC6 {
		for _, m := range allSlashDates.FindAllStringSubmatch(flattened, -1) {
			month, _ := strconv.Atoi(m[1])
			year, _ := strconv.Atoi(m[2])
			if month < 1 || month > 12 {
				continue
			}
			votes[time.Month(month)]++
			if firstYear == 0 {
				firstYear = year
			}
		}
	} else {
		for _, m := range longFormDateCapture.FindAllStringSubmatch(flattened, -1) {
			month, ok := monthFromName(m[2])
			if !ok {
				continue
			}
			year, _ := strconv.Atoi(m[3])
			votes[month]++
			if firstYear == 0 {
				firstYear = year
			}
		}
	}

	if len(votes) == 0 || firstYear == 0 {
		return models.BillingPeriod{}, false
	}

	best := time.Month(0)
	bestCount := 0
	for month := time.January; month <= time.December; month++ {
		if votes[month] > bestCount {
			best = month
			bestCount = votes[month]
		}
	}
	return models.BillingPeriod{Month: best, Year: firstYear}, true
}

func previousMonth(month time.Month, year int) models.BillingPeriod {
	if month == time.January {
		return models.BillingPeriod{Month: time.December, Year: year - 1}
	}
	return models.BillingPeriod{Month: month - 1, Year: year}
}
