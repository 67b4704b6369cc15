// Package add handles saving one month's budget record
package add

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"fjacquet/budget-ledger/cmd/common"
	"fjacquet/budget-ledger/cmd/root"
	"fjacquet/budget-ledger/internal/models"
	"fjacquet/budget-ledger/internal/normalize"
)

var (
	month       string
	income      float64
	otherIncome float64
	expenses    []string
	shared      []string
)

// Cmd represents the add command
var Cmd = &cobra.Command{
	Use:   "add",
	Short: "Save one month's budget record",
	Long: `Save a complete budget record for one month. An existing record for the
same month is fully replaced. Expense amounts are given as category=amount
pairs; categories flagged --shared count for half their amount.`,
	Run: addFunc,
}

func init() {
	Cmd.Flags().StringVarP(&month, "month", "m", "", "Month key, e.g. \"March 2025\" (required)")
	Cmd.Flags().Float64VarP(&income, "income", "i", 0, "Primary income for the month (required)")
	Cmd.Flags().Float64Var(&otherIncome, "other-income", 0, "Secondary income for the month")
	Cmd.Flags().StringArrayVarP(&expenses, "expense", "e", nil, "Expense as category=amount (repeatable)")
	Cmd.Flags().StringArrayVarP(&shared, "shared", "s", nil, "Category whose cost is split (repeatable)")
	if err := Cmd.MarkFlagRequired("month"); err != nil {
		root.Log.Warnf("Failed to mark month flag required: %v", err)
	}
	if err := Cmd.MarkFlagRequired("income"); err != nil {
		root.Log.Warnf("Failed to mark income flag required: %v", err)
	}
}

func addFunc(cmd *cobra.Command, args []string) {
	raw := models.RawEntry{
		MonthKey:    month,
		Income:      income,
		OtherIncome: otherIncome,
		Expenses:    make(map[string]any),
		SharedFlags: make(map[string]any),
	}

	for _, pair := range expenses {
		category, amount, err := splitExpense(pair)
		if err != nil {
			root.Log.Fatalf("Invalid --expense value %q: %v", pair, err)
		}
		raw.Expenses[category] = amount
	}
	for _, category := range shared {
		raw.SharedFlags[strings.TrimSpace(category)] = true
	}

	l, err := common.OpenLedger(root.Log)
	if err != nil {
		root.Log.Fatalf("Error opening ledger: %v", err)
	}

	entry, err := normalize.Repair(l.Schema(), raw)
	if err != nil {
		root.Log.Fatalf("Could not save: %v", err)
	}

	if _, err := l.Upsert(entry); err != nil {
		root.Log.Fatalf("Error saving entry: %v", err)
	}

	root.Log.WithField("monthKey", entry.MonthKey).Info("Budget entry saved")
	fmt.Printf("%s: total expenses %s, balance %s\n",
		entry.MonthKey, entry.TotalExpenses.StringFixed(2), entry.Balance.StringFixed(2))
}

func splitExpense(pair string) (string, float64, error) {
	parts := strings.SplitN(pair, "=", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" {
		return "", 0, fmt.Errorf("expected category=amount")
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return "", 0, fmt.Errorf("amount is not a number")
	}
	return strings.TrimSpace(parts[0]), amount, nil
}
