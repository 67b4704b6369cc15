// Package importer turns categorized transaction rows, as produced by an
// external bank-statement categorizer, into raw month records ready for
// repair and upsert.
package importer

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"fjacquet/budget-ledger/internal/config"
	"fjacquet/budget-ledger/internal/dateutils"
	"fjacquet/budget-ledger/internal/models"
)

var log = config.Logger

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Pseudo-categories that feed the income fields instead of the expense map.
const (
	incomeColumn      = "income"
	otherIncomeColumn = "otherIncome"
)

// TransactionRow is one categorized transaction as read from CSV.
type TransactionRow struct {
	MonthKey string `csv:"month"`
	Category string `csv:"category"`
	Amount   string `csv:"amount"`
	Shared   string `csv:"shared"`
}

// SetDelimiter configures the CSV delimiter used when reading rows.
func SetDelimiter(delim rune) {
	gocsv.TagSeparator = fmt.Sprintf("%c", delim)
}

// ReadTransactionRows reads categorized transaction rows from a CSV file.
func ReadTransactionRows(filePath string) ([]TransactionRow, error) {
	log.WithField("file", filePath).Info("Reading transactions CSV file")

	file, err := os.Open(filePath)
	if err != nil {
		log.WithError(err).Error("Failed to open CSV file")
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	var rows []TransactionRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		log.WithError(err).Error("Failed to parse CSV file")
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	log.WithField("count", len(rows)).Info("Successfully read transaction rows")
	return rows, nil
}

// Aggregate sums transaction rows into one raw candidate record per month,
// ordered chronologically. Rows with an unusable month key or amount are
// skipped with a warning; a row whose category is "income" or
// "otherIncome" contributes to the matching income field instead of the
// expense map. A "shared" column value of true/yes/1 flags the category
// as split.
func Aggregate(rows []TransactionRow) []models.RawEntry {
	type accumulator struct {
		income      decimal.Decimal
		otherIncome decimal.Decimal
		expenses    map[string]decimal.Decimal
		shared      map[string]bool
	}
	months := make(map[string]*accumulator)

	for _, row := range rows {
		monthKey := dateutils.CleanDateString(row.MonthKey)
		if _, err := dateutils.ParseMonthKey(monthKey); err != nil {
			log.WithField("month", row.MonthKey).Warn("Skipping row with unusable month key")
			continue
		}

		amount, err := parseAmount(row.Amount)
		if err != nil {
			log.WithFields(logrus.Fields{
				"month":    monthKey,
				"category": row.Category,
				"amount":   row.Amount,
			}).Warn("Skipping row with unusable amount")
			continue
		}

		acc, ok := months[monthKey]
		if !ok {
			acc = &accumulator{
				expenses: make(map[string]decimal.Decimal),
				shared:   make(map[string]bool),
			}
			months[monthKey] = acc
		}

		category := strings.TrimSpace(row.Category)
		switch category {
		case incomeColumn:
			acc.income = acc.income.Add(amount)
		case otherIncomeColumn:
			acc.otherIncome = acc.otherIncome.Add(amount)
		default:
			acc.expenses[category] = acc.expenses[category].Add(amount)
			if parseShared(row.Shared) {
				acc.shared[category] = true
			}
		}
	}

	keys := make([]string, 0, len(months))
	for key := range months {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		di, _ := dateutils.ParseMonthKey(keys[i])
		dj, _ := dateutils.ParseMonthKey(keys[j])
		return di.Before(dj)
	})

	out := make([]models.RawEntry, 0, len(keys))
	for _, key := range keys {
		acc := months[key]
		expenses := make(map[string]any, len(acc.expenses))
		for category, amount := range acc.expenses {
			expenses[category] = amount
		}
		flags := make(map[string]any, len(acc.shared))
		for category, shared := range acc.shared {
			flags[category] = shared
		}
		out = append(out, models.RawEntry{
			MonthKey:    key,
			Income:      acc.income,
			OtherIncome: acc.otherIncome,
			Expenses:    expenses,
			SharedFlags: flags,
		})
	}
	return out
}

// ImportFile reads and aggregates a transactions CSV in one step.
func ImportFile(filePath string) ([]models.RawEntry, error) {
	rows, err := ReadTransactionRows(filePath)
	if err != nil {
		return nil, err
	}
	return Aggregate(rows), nil
}

// parseAmount parses a CSV amount, tolerating a comma decimal separator
// and surrounding whitespace.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	return decimal.NewFromString(s)
}

func parseShared(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "1":
		return true
	default:
		return false
	}
}
