// Package report reads transactions from CSV files and writes categorization results
// back out as CSV.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/pennywise/internal/common"
	"github.com/Veraticus/pennywise/internal/model"
	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// TransactionRow is one line of a transaction import file. Only description and amount
// are required; the others may be missing columns or empty cells.
type TransactionRow struct {
	Date        string `csv:"date"`
	Description string `csv:"description"`
	Amount      string `csv:"amount"`
	Type        string `csv:"type"`
	ExternalID  string `csv:"external_id"`
}

// dateLayouts are tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"02/01/2006",
	"02.01.2006",
}

// Reader parses transaction import files.
type Reader struct {
	// Comma is the field delimiter, ',' when zero.
	Comma rune
}

// ReadTransactions parses r into uncategorized transactions owned by userID. Rows that
// cannot be converted are skipped with a warning; a malformed file is an error.
func (rd Reader) ReadTransactions(r io.Reader, userID int64) ([]model.Transaction, error) {
	csvReader := csv.NewReader(r)
	if rd.Comma != 0 {
		csvReader.Comma = rd.Comma
	}
	csvReader.TrimLeadingSpace = true

	var rows []*TransactionRow
	if err := gocsv.UnmarshalCSV(csvReader, &rows); err != nil {
		return nil, fmt.Errorf("error reading transaction CSV: %w", err)
	}

	transactions := make([]model.Transaction, 0, len(rows))
	for i, row := range rows {
		txn, err := row.toTransaction(userID)
		if err != nil {
			// Header is line 1
			slog.Warn("Skipping CSV row", "line", i+2, "error", err)
			continue
		}
		transactions = append(transactions, txn)
	}

	slog.Info("Parsed transaction CSV", "rows", len(rows), "transactions", len(transactions))
	return transactions, nil
}

func (row TransactionRow) toTransaction(userID int64) (model.Transaction, error) {
	amount, err := ParseAmount(row.Amount)
	if err != nil {
		return model.Transaction{}, err
	}

	txn := model.Transaction{
		UserID:      userID,
		Description: strings.TrimSpace(row.Description),
		Amount:      amount,
		ExternalID:  strings.TrimSpace(row.ExternalID),
	}

	if row.Date != "" {
		date, err := parseDate(row.Date)
		if err != nil {
			return model.Transaction{}, err
		}
		txn.Date = date
	}

	switch t := strings.ToLower(strings.TrimSpace(row.Type)); t {
	case "":
		txn.Type = model.DirectionOf(amount)
	default:
		typ, err := model.ParseCategoryType(t)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("%w: %w", common.ErrInvalidInput, err)
		}
		txn.Type = typ
	}

	return txn, nil
}

// ParseAmount parses a decimal amount written either as 1234.56 or in the Brazilian
// style 1.234,56. A leading currency symbol is ignored.
func ParseAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "R$")
	clean = strings.ReplaceAll(clean, " ", "")
	if clean == "" {
		return decimal.Zero, fmt.Errorf("%w: empty amount", common.ErrInvalidAmount)
	}

	if strings.Contains(clean, ",") {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	}

	amount, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", common.ErrInvalidAmount, s)
	}
	return amount, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unrecognized date %q", common.ErrInvalidInput, s)
}

// WriteBatchDetails writes one CSV line per batch detail.
func WriteBatchDetails(w io.Writer, details []model.BatchDetail) error {
	if details == nil {
		details = []model.BatchDetail{}
	}
	if err := gocsv.MarshalCSV(details, gocsv.NewSafeCSVWriter(csv.NewWriter(w))); err != nil {
		return fmt.Errorf("error writing batch CSV: %w", err)
	}
	return nil
}
