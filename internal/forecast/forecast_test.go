package forecast

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/budget-ledger/internal/models"
	"fjacquet/budget-ledger/internal/normalize"
	"fjacquet/budget-ledger/internal/trend"
)

func entryFor(t *testing.T, monthKey string, income float64, expenses map[string]any, flags map[string]any) models.BudgetEntry {
	t.Helper()
	entry, err := normalize.Repair(models.DefaultSchema(), models.RawEntry{
		MonthKey:    monthKey,
		Income:      income,
		Expenses:    expenses,
		SharedFlags: flags,
	})
	require.NoError(t, err)
	return entry
}

func TestTrendForCategory(t *testing.T) {
	entries := []models.BudgetEntry{
		entryFor(t, "January 2025", 1400, map[string]any{"food": 100.0}, nil),
		entryFor(t, "February 2025", 1400, map[string]any{"food": 100.0}, nil),
		entryFor(t, "March 2025", 1400, map[string]any{"food": 100.0}, nil),
		entryFor(t, "April 2025", 1400, map[string]any{"food": 200.0}, nil),
		entryFor(t, "May 2025", 1400, map[string]any{"food": 200.0}, nil),
		entryFor(t, "June 2025", 1400, map[string]any{"food": 200.0}, nil),
	}

	result := TrendForCategory(entries, models.CategoryFood)

	assert.InDelta(t, 1.0, result.TrendRatio, 1e-9)
	assert.Equal(t, trend.Rising, result.Direction)
	assert.Equal(t, "200", result.Current.String())
	assert.Equal(t, "400", result.Predicted.String())
}

func TestTrendTableCoversAllCategories(t *testing.T) {
	entries := []models.BudgetEntry{
		entryFor(t, "January 2025", 1400, map[string]any{"rent": 400.0}, nil),
		entryFor(t, "February 2025", 1400, map[string]any{"food": 60.0}, nil),
	}

	table := TrendTable(entries)
	require.Len(t, table, 2)
	assert.Equal(t, models.CategoryFood, table[0].Category)
	assert.Equal(t, models.CategoryRent, table[1].Category)
}

func TestTrendForAggregates(t *testing.T) {
	entries := []models.BudgetEntry{
		entryFor(t, "January 2025", 1000, map[string]any{"rent": 400.0}, nil),
		entryFor(t, "February 2025", 1000, map[string]any{"rent": 400.0}, nil),
		entryFor(t, "March 2025", 1000, map[string]any{"rent": 400.0}, nil),
		entryFor(t, "April 2025", 1000, map[string]any{"rent": 440.0}, nil),
		entryFor(t, "May 2025", 1000, map[string]any{"rent": 440.0}, nil),
		entryFor(t, "June 2025", 1000, map[string]any{"rent": 440.0}, nil),
	}

	aggregates := TrendForAggregates(entries)

	assert.Equal(t, trend.Stable, aggregates.Income.Direction)
	assert.Equal(t, trend.Rising, aggregates.Expenses.Direction)
	assert.InDelta(t, 0.1, aggregates.Expenses.TrendRatio, 1e-9)

	// Balance fell from 600 to 560.
	assert.Equal(t, trend.Falling, aggregates.Balance.Direction)
}

func TestForGroupForecast(t *testing.T) {
	schema := models.DefaultSchema()
	entries := []models.BudgetEntry{
		entryFor(t, "January 2025", 1400, map[string]any{"food": 100.0, "fuel": 50.0}, nil),
		entryFor(t, "February 2025", 1400, map[string]any{"food": 100.0, "fuel": 50.0}, nil),
		entryFor(t, "March 2025", 1400, map[string]any{"food": 100.0, "fuel": 50.0}, nil),
		entryFor(t, "April 2025", 1400, map[string]any{"food": 200.0, "fuel": 100.0}, nil),
		entryFor(t, "May 2025", 1400, map[string]any{"food": 200.0, "fuel": 100.0}, nil),
		entryFor(t, "June 2025", 1400, map[string]any{"food": 200.0, "fuel": 100.0}, nil),
	}

	result := ForGroup(schema, entries, models.GroupVariable)

	assert.False(t, result.InsufficientData)
	assert.Equal(t, "300", result.Current.String())
	assert.Equal(t, "600", result.Predicted.String())
	assert.InDelta(t, 1.0, result.TrendRatio, 1e-9)
	assert.InDelta(t, 100.0, result.PercentChange, 1e-9)
	assert.Equal(t, trend.Rising, result.Direction)
}

func TestForGroupInsufficientData(t *testing.T) {
	schema := models.DefaultSchema()

	result := ForGroup(schema, nil, models.GroupSavings)
	assert.True(t, result.InsufficientData)
	assert.Zero(t, result.TrendRatio)
	assert.True(t, result.Current.IsZero())

	// One month of history is still not enough.
	entries := []models.BudgetEntry{
		entryFor(t, "January 2025", 1400, map[string]any{"savings": 100.0}, nil),
	}
	result = ForGroup(schema, entries, models.GroupSavings)
	assert.True(t, result.InsufficientData)
}

func TestForAllGroups(t *testing.T) {
	entries := []models.BudgetEntry{
		entryFor(t, "January 2025", 1400, map[string]any{"rent": 400.0}, nil),
		entryFor(t, "February 2025", 1400, map[string]any{"rent": 400.0}, nil),
	}

	results := ForAllGroups(models.DefaultSchema(), entries)
	require.Len(t, results, 3)
	assert.Equal(t, models.GroupFixed, results[0].Group)
	assert.Equal(t, models.GroupVariable, results[1].Group)
	assert.Equal(t, models.GroupSavings, results[2].Group)
	assert.False(t, results[0].InsufficientData)
	assert.True(t, results[1].InsufficientData)
}

func TestProjectRunRate(t *testing.T) {
	result := ProjectRunRate(decimal.NewFromInt(300), 10, 30, decimal.NewFromInt(500))

	assert.Equal(t, "30", result.DailyRate.String())
	assert.Equal(t, "600", result.ProjectedRemaining.String())
	assert.Equal(t, "-100", result.ProjectedEndBalance.String())
	assert.Equal(t, StatusAtRisk, result.Status)
}

func TestProjectRunRateSafe(t *testing.T) {
	result := ProjectRunRate(decimal.NewFromInt(100), 10, 30, decimal.NewFromInt(500))

	assert.Equal(t, "10", result.DailyRate.String())
	assert.Equal(t, "200", result.ProjectedRemaining.String())
	assert.Equal(t, "300", result.ProjectedEndBalance.String())
	assert.Equal(t, StatusSafe, result.Status)
}

func TestProjectRunRateClampsElapsedDays(t *testing.T) {
	// Day zero must not divide by zero.
	result := ProjectRunRate(decimal.NewFromInt(60), 0, 30, decimal.NewFromInt(500))
	assert.Equal(t, "60", result.DailyRate.String())
}
