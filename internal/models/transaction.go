package models

import "time"

// Transaction is a single charge recovered from a credit-card statement PDF.
// Date is always normalized to YYYY-MM-DD regardless of the source format.
// Category is left empty here; the importing application assigns it later.
type Transaction struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Category    string  `json:"category,omitempty"`
}

// BillingPeriod is the statement's billing month and year.
type BillingPeriod struct {
	Month time.Month `json:"month"`
	Year  int        `json:"year"`
}

// BankTemplate identifies which issuer layout produced a statement.
type BankTemplate string

const (
	TemplateInter   BankTemplate = "inter"
	TemplateC6      BankTemplate = "c6"
	TemplateGeneric BankTemplate = "generic"
)
