package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/contaviva/fatura-extractor/internal/models"
)

// CSVWriter writes extracted transactions to CSV format.
type CSVWriter struct {
	// IncludeHeader adds billing-period metadata rows before the columns.
	IncludeHeader bool
}

// WriteToFile writes transactions to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, txns []models.Transaction, period *models.BillingPeriod) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, txns, period)
}

// Write writes transactions in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, txns []models.Transaction, period *models.BillingPeriod) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	if w.IncludeHeader && period != nil {
		writer.Write([]string{"# Billing Month", strconv.Itoa(int(period.Month))})
		writer.Write([]string{"# Billing Year", strconv.Itoa(period.Year)})
	}

	header := []string{"Date", "Description", "Amount"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, txn := range txns {
		row := []string{
			txn.Date,
			txn.Description,
			strconv.FormatFloat(txn.Amount, 'f', 2, 64),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}
