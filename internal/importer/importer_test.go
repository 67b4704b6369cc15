package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/budget-ledger/internal/models"
	"fjacquet/budget-ledger/internal/normalize"
)

func TestAggregateSumsPerMonthAndCategory(t *testing.T) {
	rows := []TransactionRow{
		{MonthKey: "January 2025", Category: "food", Amount: "25.50"},
		{MonthKey: "January 2025", Category: "food", Amount: "14.50"},
		{MonthKey: "January 2025", Category: "rent", Amount: "400"},
		{MonthKey: "February 2025", Category: "food", Amount: "60"},
	}

	candidates := Aggregate(rows)
	require.Len(t, candidates, 2)

	assert.Equal(t, "January 2025", candidates[0].MonthKey)
	assert.Equal(t, "February 2025", candidates[1].MonthKey)

	food := candidates[0].Expenses["food"].(decimal.Decimal)
	assert.Equal(t, "40", food.String())
	rent := candidates[0].Expenses["rent"].(decimal.Decimal)
	assert.Equal(t, "400", rent.String())
}

func TestAggregateIncomePseudoCategories(t *testing.T) {
	rows := []TransactionRow{
		{MonthKey: "January 2025", Category: "income", Amount: "1400"},
		{MonthKey: "January 2025", Category: "otherIncome", Amount: "100"},
		{MonthKey: "January 2025", Category: "rent", Amount: "400"},
	}

	candidates := Aggregate(rows)
	require.Len(t, candidates, 1)

	income := candidates[0].Income.(decimal.Decimal)
	assert.Equal(t, "1400", income.String())
	other := candidates[0].OtherIncome.(decimal.Decimal)
	assert.Equal(t, "100", other.String())
	assert.NotContains(t, candidates[0].Expenses, "income")
}

func TestAggregateSharedFlags(t *testing.T) {
	rows := []TransactionRow{
		{MonthKey: "January 2025", Category: "food", Amount: "30", Shared: "true"},
		{MonthKey: "January 2025", Category: "food", Amount: "30"},
		{MonthKey: "January 2025", Category: "rent", Amount: "400", Shared: "no"},
	}

	candidates := Aggregate(rows)
	require.Len(t, candidates, 1)

	assert.Equal(t, true, candidates[0].SharedFlags["food"])
	assert.NotContains(t, candidates[0].SharedFlags, "rent")
}

func TestAggregateSkipsBadRows(t *testing.T) {
	rows := []TransactionRow{
		{MonthKey: "January 2025", Category: "food", Amount: "30"},
		{MonthKey: "not a month", Category: "food", Amount: "30"},
		{MonthKey: "January 2025", Category: "fuel", Amount: "thirty"},
		{MonthKey: "January 2025", Category: "gym", Amount: ""},
	}

	candidates := Aggregate(rows)
	require.Len(t, candidates, 1)
	assert.Len(t, candidates[0].Expenses, 1)
	assert.Contains(t, candidates[0].Expenses, "food")
}

func TestAggregateCommaDecimalSeparator(t *testing.T) {
	rows := []TransactionRow{
		{MonthKey: "January 2025", Category: "food", Amount: "12,50"},
	}

	candidates := Aggregate(rows)
	require.Len(t, candidates, 1)
	food := candidates[0].Expenses["food"].(decimal.Decimal)
	assert.Equal(t, "12.5", food.String())
}

func TestAggregatedCandidatesSurviveRepair(t *testing.T) {
	rows := []TransactionRow{
		{MonthKey: "January 2025", Category: "income", Amount: "1400"},
		{MonthKey: "January 2025", Category: "rent", Amount: "400"},
		{MonthKey: "January 2025", Category: "food", Amount: "60", Shared: "true"},
	}

	candidates := Aggregate(rows)
	require.Len(t, candidates, 1)

	entry, err := normalize.Repair(models.DefaultSchema(), candidates[0])
	require.NoError(t, err)
	assert.Equal(t, "430", entry.TotalExpenses.String())
	assert.Equal(t, "970", entry.Balance.String())
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()
	csvFile := filepath.Join(dir, "transactions.csv")
	content := "month,category,amount,shared\n" +
		"January 2025,income,1400,\n" +
		"January 2025,rent,400,false\n" +
		"January 2025,food,25.50,true\n" +
		"January 2025,food,34.50,true\n"
	require.NoError(t, os.WriteFile(csvFile, []byte(content), 0644))

	candidates, err := ImportFile(csvFile)
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	food := candidates[0].Expenses["food"].(decimal.Decimal)
	assert.Equal(t, "60", food.String())
	assert.Equal(t, true, candidates[0].SharedFlags["food"])
}

func TestImportFileMissing(t *testing.T) {
	_, err := ImportFile(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
