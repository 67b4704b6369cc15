package models

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"fjacquet/budget-ledger/internal/dateutils"
)

// RawEntry is the wire shape of one month's record as exchanged with the
// persistence and importer collaborators. Fields are deliberately loose:
// a record written by an older schema version may carry strings, nulls or
// other junk in numeric slots, and unmarshalling must not lose it before
// the repair step gets a chance to coerce it.
type RawEntry struct {
	MonthKey      any            `json:"monthKey" yaml:"monthKey"`
	Income        any            `json:"income" yaml:"income"`
	OtherIncome   any            `json:"otherIncome,omitempty" yaml:"otherIncome,omitempty"`
	Expenses      map[string]any `json:"expenses,omitempty" yaml:"expenses,omitempty"`
	SharedFlags   map[string]any `json:"sharedFlags,omitempty" yaml:"sharedFlags,omitempty"`
	TotalExpenses any            `json:"totalExpenses,omitempty" yaml:"totalExpenses,omitempty"`
	Balance       any            `json:"balance,omitempty" yaml:"balance,omitempty"`
	SavedAt       any            `json:"savedAt,omitempty" yaml:"savedAt,omitempty"`
}

// BudgetEntry is one month's repaired record: raw inputs plus derived
// totals. Entries are immutable by convention; changing a field means
// building a new raw record and repairing it again, so the derived
// fields can never drift out of sync with their inputs.
type BudgetEntry struct {
	MonthKey      string
	Income        decimal.Decimal
	OtherIncome   decimal.Decimal
	Expenses      map[Category]decimal.Decimal
	SharedFlags   map[Category]bool
	TotalExpenses decimal.Decimal
	Balance       decimal.Decimal
	SavedAt       time.Time
}

// Date returns the calendar month the entry's key encodes.
func (e BudgetEntry) Date() (time.Time, error) {
	return dateutils.ParseMonthKey(e.MonthKey)
}

// Amount returns the recorded amount for a category, zero when absent.
func (e BudgetEntry) Amount(c Category) decimal.Decimal {
	return e.Expenses[c]
}

// IsShared reports whether a category was flagged as split with a partner.
func (e BudgetEntry) IsShared(c Category) bool {
	return e.SharedFlags[c]
}

// CategoriesSorted returns the entry's expense categories in stable order.
func (e BudgetEntry) CategoriesSorted() []Category {
	out := make([]Category, 0, len(e.Expenses))
	for c := range e.Expenses {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clone returns a deep copy of the entry.
func (e BudgetEntry) Clone() BudgetEntry {
	cp := e
	cp.Expenses = make(map[Category]decimal.Decimal, len(e.Expenses))
	for c, v := range e.Expenses {
		cp.Expenses[c] = v
	}
	cp.SharedFlags = make(map[Category]bool, len(e.SharedFlags))
	for c, v := range e.SharedFlags {
		cp.SharedFlags[c] = v
	}
	return cp
}

// Raw converts the entry back into its wire shape for persistence.
func (e BudgetEntry) Raw() RawEntry {
	expenses := make(map[string]any, len(e.Expenses))
	for c, v := range e.Expenses {
		expenses[string(c)] = v.InexactFloat64()
	}
	flags := make(map[string]any, len(e.SharedFlags))
	for c, v := range e.SharedFlags {
		flags[string(c)] = v
	}
	return RawEntry{
		MonthKey:      e.MonthKey,
		Income:        e.Income.InexactFloat64(),
		OtherIncome:   e.OtherIncome.InexactFloat64(),
		Expenses:      expenses,
		SharedFlags:   flags,
		TotalExpenses: e.TotalExpenses.InexactFloat64(),
		Balance:       e.Balance.InexactFloat64(),
		SavedAt:       e.SavedAt.UTC().Format(time.RFC3339),
	}
}
