// Package normalize validates and repairs raw budget records before they
// enter the ledger. All coercion of malformed numeric and boolean fields
// lives here, in exactly one place, so every consumer downstream sees
// pre-sanitized values.
package normalize

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"fjacquet/budget-ledger/internal/config"
	"fjacquet/budget-ledger/internal/models"
)

var log = config.Logger

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// ErrMissingIdentity marks a raw record that lacks a usable month key or a
// valid income. Such records are rejected outright and never stored; every
// other malformed field is silently repaired instead.
var ErrMissingIdentity = errors.New("record is missing its month key or a valid income")

var two = decimal.NewFromInt(2)

// Repair validates a raw record against the schema, coerces malformed
// fields and recomputes the derived totals from the raw inputs.
//
// The order is fixed: expense amounts are coerced first, shared flags
// second, then the total is accumulated category by category with the
// shared-halving rule and the housing-allowance reduction, and finally
// the balance is derived. A shared reduction category subtracts half its
// amount from the total; an unshared one subtracts it in full.
func Repair(schema models.Schema, raw models.RawEntry) (models.BudgetEntry, error) {
	monthKey, ok := coerceString(raw.MonthKey)
	if !ok || monthKey == "" {
		log.WithField("monthKey", raw.MonthKey).Warn("Rejecting record without a month key")
		return models.BudgetEntry{}, ErrMissingIdentity
	}

	income, ok := coerceAmount(raw.Income)
	if !ok {
		log.WithField("monthKey", monthKey).Warn("Rejecting record without a valid income")
		return models.BudgetEntry{}, ErrMissingIdentity
	}

	otherIncome, ok := coerceAmount(raw.OtherIncome)
	if !ok {
		otherIncome = decimal.Zero
	}

	expenses := make(map[models.Category]decimal.Decimal, len(raw.Expenses))
	for name, value := range raw.Expenses {
		amount, ok := coerceAmount(value)
		if !ok {
			log.WithFields(logrus.Fields{
				"monthKey": monthKey,
				"category": name,
			}).Debug("Coerced malformed expense amount to zero")
			amount = decimal.Zero
		}
		expenses[models.Category(name)] = amount
	}

	flags := make(map[models.Category]bool, len(raw.SharedFlags))
	for name, value := range raw.SharedFlags {
		flags[models.Category(name)] = coerceFlag(value)
	}

	// The halving rule is applied to whatever category carries the flag,
	// shareable or not, matching the permissive historical behavior.
	total := decimal.Zero
	for category, amount := range expenses {
		adjusted := amount
		if flags[category] {
			adjusted = amount.Div(two)
		}
		if schema.IsReduction(category) {
			total = total.Sub(adjusted)
		} else {
			total = total.Add(adjusted)
		}
	}

	balance := income.Add(otherIncome).Sub(total)

	return models.BudgetEntry{
		MonthKey:      monthKey,
		Income:        income,
		OtherIncome:   otherIncome,
		Expenses:      expenses,
		SharedFlags:   flags,
		TotalExpenses: total,
		Balance:       balance,
		SavedAt:       coerceTime(raw.SavedAt),
	}, nil
}

// coerceString accepts only genuine strings; anything else is rejected.
func coerceString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(s), true
}

// coerceAmount accepts finite, non-negative numeric values and reports
// everything else as invalid. Negative raw amounts are invalid too: the
// only negative monetary value in the model is a derived balance.
func coerceAmount(v any) (decimal.Decimal, bool) {
	var d decimal.Decimal
	switch n := v.(type) {
	case decimal.Decimal:
		d = n
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Zero, false
		}
		d = decimal.NewFromFloat(n)
	case float32:
		if math.IsNaN(float64(n)) || math.IsInf(float64(n), 0) {
			return decimal.Zero, false
		}
		d = decimal.NewFromFloat32(n)
	case int:
		d = decimal.NewFromInt(int64(n))
	case int64:
		d = decimal.NewFromInt(n)
	case int32:
		d = decimal.NewFromInt32(n)
	case uint64:
		d = decimal.NewFromUint64(n)
	default:
		return decimal.Zero, false
	}
	if d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}

// coerceFlag treats anything that is not strictly boolean as false.
func coerceFlag(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

// coerceTime parses a persisted savedAt timestamp, falling back to the
// current time when the stored value is unusable.
func coerceTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Now().UTC()
}
