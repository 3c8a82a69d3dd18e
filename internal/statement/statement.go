// Package statement exposes the two public operations of the extraction
// pipeline: recovering the transaction list from a statement PDF and
// inferring its billing period. Both are pure functions of the input bytes;
// calls share no mutable state and may run concurrently.
package statement

import (
	"github.com/charmbracelet/log"

	"github.com/contaviva/fatura-extractor/internal/extractor"
	"github.com/contaviva/fatura-extractor/internal/models"
	"github.com/contaviva/fatura-extractor/internal/parser"
)

// Extractor orchestrates the pipeline stages. Only the document loader can
// fail; every downstream stage is total.
type Extractor struct {
	logger *log.Logger
}

func New(logger *log.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Transactions extracts the normalized, deduplicated, chronologically sorted
// charge list from a statement PDF. Loader failures (ErrNotPDF, ErrEmptyFile,
// ErrUnreadableDocument, ErrNoTextContent) propagate unchanged.
func (e *Extractor) Transactions(data []byte, mimeType string) ([]models.Transaction, error) {
	return e.TransactionsWithTemplate(data, mimeType, "")
}

// TransactionsWithTemplate is Transactions with the issuer template forced
// instead of auto-detected. An empty template means auto-detect.
func (e *Extractor) TransactionsWithTemplate(data []byte, mimeType string, template models.BankTemplate) ([]models.Transaction, error) {
	doc, err := extractor.LoadDocument(data, mimeType)
	if err != nil {
		return nil, err
	}
	view := extractor.ReconstructLines(doc)

	if template == "" {
		template = parser.DetectTemplate(view.Flattened)
	}
	e.logger.Debug("template detected", "template", template, "pages", doc.PageCount)

	candidates := parser.ExtractCandidates(template, view)
	for id, count := range parser.CountByPattern(candidates) {
		e.logger.Debug("pattern matches", "pattern", id, "count", count)
	}

	transactions := parser.Finalize(candidates, parser.ImpliedYear(view.Flattened))
	e.logger.Debug("extraction complete",
		"candidates", len(candidates), "transactions", len(transactions))

	return transactions, nil
}

// Period infers the statement's billing month and year. It shares the loader
// with Transactions and propagates the same failures; the inference itself
// never fails, only possibly returns an inaccurate period.
func (e *Extractor) Period(data []byte, mimeType string) (models.BillingPeriod, error) {
	doc, err := extractor.LoadDocument(data, mimeType)
	if err != nil {
		return models.BillingPeriod{}, err
	}
	view := extractor.ReconstructLines(doc)

	period := parser.InferBillingPeriod(view.Flattened)
	e.logger.Debug("billing period inferred", "month", int(period.Month), "year", period.Year)
	return period, nil
}
