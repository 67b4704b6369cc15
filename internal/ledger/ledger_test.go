package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/budget-ledger/internal/models"
	"fjacquet/budget-ledger/internal/normalize"
	"fjacquet/budget-ledger/internal/store"
)

func repairedEntry(t *testing.T, monthKey string, income float64, expenses map[string]any) models.BudgetEntry {
	t.Helper()
	entry, err := normalize.Repair(models.DefaultSchema(), models.RawEntry{
		MonthKey: monthKey,
		Income:   income,
		Expenses: expenses,
	})
	require.NoError(t, err)
	return entry
}

func TestUpsertReplacesOnSameKey(t *testing.T) {
	l := New(models.DefaultSchema(), nil)

	first := repairedEntry(t, "March 2025", 1400, map[string]any{"rent": 400.0})
	second := repairedEntry(t, "March 2025", 1500, map[string]any{"rent": 450.0})

	_, err := l.Upsert(first)
	require.NoError(t, err)
	snapshot, err := l.Upsert(second)
	require.NoError(t, err)

	assert.Len(t, snapshot, 1)
	got, ok := l.GetByKey("March 2025")
	require.True(t, ok)
	assert.True(t, got.Income.Equal(decimal.NewFromInt(1500)))
	assert.True(t, got.Amount("rent").Equal(decimal.NewFromInt(450)))
}

func TestDeleteByKey(t *testing.T) {
	l := New(models.DefaultSchema(), nil)
	_, err := l.Upsert(repairedEntry(t, "March 2025", 1400, nil))
	require.NoError(t, err)

	require.NoError(t, l.DeleteByKey("March 2025"))
	_, ok := l.GetByKey("March 2025")
	assert.False(t, ok)

	// Deleting an absent key is a no-op, not an error.
	assert.NoError(t, l.DeleteByKey("March 2025"))
	assert.NoError(t, l.DeleteByKey("Never 9999"))
}

func TestOrderedByDate(t *testing.T) {
	l := New(models.DefaultSchema(), nil)

	// Inserted out of order on purpose.
	for _, key := range []string{"March 2025", "December 2024", "January 2025"} {
		_, err := l.Upsert(repairedEntry(t, key, 1000, nil))
		require.NoError(t, err)
	}

	ordered := l.OrderedByDate()
	require.Len(t, ordered, 3)
	assert.Equal(t, "December 2024", ordered[0].MonthKey)
	assert.Equal(t, "January 2025", ordered[1].MonthKey)
	assert.Equal(t, "March 2025", ordered[2].MonthKey)
}

func TestLoadAllDropsBadRecords(t *testing.T) {
	l := New(models.DefaultSchema(), nil)

	dropped := l.LoadAll([]models.RawEntry{
		{MonthKey: "January 2025", Income: 1400.0},
		{Income: 500.0},          // no month key
		{MonthKey: "March 2025"}, // no income
		{MonthKey: "February 2025", Income: 1400.0},
	})

	assert.Equal(t, 2, dropped)
	assert.Equal(t, 2, l.Len())
	_, ok := l.GetByKey("January 2025")
	assert.True(t, ok)
	_, ok = l.GetByKey("February 2025")
	assert.True(t, ok)
}

func TestLoadAllRepairsSurvivors(t *testing.T) {
	l := New(models.DefaultSchema(), nil)

	dropped := l.LoadAll([]models.RawEntry{{
		MonthKey:      "January 2025",
		Income:        1400.0,
		Expenses:      map[string]any{"rent": 400.0, "food": "junk"},
		TotalExpenses: "stale",
	}})

	assert.Zero(t, dropped)
	entry, ok := l.GetByKey("January 2025")
	require.True(t, ok)
	assert.Equal(t, "400", entry.TotalExpenses.String())
	assert.Equal(t, "1000", entry.Balance.String())
}

func TestPersistenceOnMutation(t *testing.T) {
	blob := store.NewMemoryStore()
	l := New(models.DefaultSchema(), blob)

	_, err := l.Upsert(repairedEntry(t, "January 2025", 1400, map[string]any{"rent": 400.0}))
	require.NoError(t, err)
	assert.Equal(t, 1, blob.Saves)
	require.Len(t, blob.Snapshot, 1)
	assert.Equal(t, "January 2025", blob.Snapshot[0].MonthKey)

	require.NoError(t, l.DeleteByKey("January 2025"))
	assert.Equal(t, 2, blob.Saves)
	assert.Empty(t, blob.Snapshot)
}

func TestLoadFromStore(t *testing.T) {
	blob := store.NewMemoryStore()
	blob.Snapshot = []models.RawEntry{
		{MonthKey: "January 2025", Income: 1400.0},
		{Income: 1.0}, // dropped
	}

	l := New(models.DefaultSchema(), blob)
	dropped, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, 1, dropped)
	assert.Equal(t, 1, l.Len())
}

func TestSnapshotRoundTripThroughStore(t *testing.T) {
	blob := store.NewMemoryStore()
	l := New(models.DefaultSchema(), blob)

	_, err := l.Upsert(repairedEntry(t, "January 2025", 1400, map[string]any{
		"rent":             400.0,
		"housingAllowance": 100.0,
	}))
	require.NoError(t, err)

	reloaded := New(models.DefaultSchema(), blob)
	dropped, err := reloaded.Load()
	require.NoError(t, err)
	assert.Zero(t, dropped)

	entry, ok := reloaded.GetByKey("January 2025")
	require.True(t, ok)
	assert.Equal(t, "300", entry.TotalExpenses.String())
}

func TestGetByKeyReturnsCopy(t *testing.T) {
	l := New(models.DefaultSchema(), nil)
	_, err := l.Upsert(repairedEntry(t, "January 2025", 1400, map[string]any{"rent": 400.0}))
	require.NoError(t, err)

	entry, ok := l.GetByKey("January 2025")
	require.True(t, ok)
	entry.Expenses["rent"] = decimal.NewFromInt(1)

	again, _ := l.GetByKey("January 2025")
	assert.Equal(t, "400", again.Amount("rent").String())
}
