package parser

import (
	"math"
	"sort"
	"strings"

	"github.com/contaviva/fatura-extractor/internal/models"
)

// Two amounts closer than this are the same charge seen by different patterns.
const amountEpsilon = 0.01

// Finalize converts candidates into normalized transactions, collapses
// near-duplicates and sorts the result chronologically. Two candidates are
// the same physical transaction when their uppercased descriptions, dates and
// amounts (within epsilon) all coincide; the first occurrence wins.
// impliedYear resolves date forms that carry no year of their own.
func Finalize(cands []Candidate, impliedYear int) []models.Transaction {
	type dedupKey struct {
		desc string
		date string
	}
	seen := make(map[dedupKey][]float64)

	out := make([]models.Transaction, 0, len(cands))
	for _, c := range cands {
		amount, err := parseAmount(c.AmountText)
		if err != nil || amount <= 0 {
			continue
		}
		date, ok := parseDate(c.DateText, impliedYear)
		if !ok {
			continue
		}

		key := dedupKey{desc: strings.ToUpper(collapseWhitespace(c.Description)), date: date}
		duplicate := false
		for _, prev := range seen[key] {
			if math.Abs(prev-amount) < amountEpsilon {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		seen[key] = append(seen[key], amount)

		out = append(out, models.Transaction{
			Description: c.Description,
			Amount:      amount,
			Date:        date,
		})
	}

	// ISO dates sort lexically; stable sort keeps discovery order for ties.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}
