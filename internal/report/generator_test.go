package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/budget-ledger/internal/models"
)

func TestGenerateJSONEnvelope(t *testing.T) {
	payload := map[string]string{"hello": "world"}

	data, err := NewGenerator().Generate("trends", payload, "json")
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.NotEmpty(t, decoded.ID)
	assert.Equal(t, "trends", decoded.Kind)
	assert.False(t, decoded.GeneratedAt.IsZero())
}

func TestGenerateUnsupportedFormat(t *testing.T) {
	_, err := NewGenerator().Generate("trends", nil, "xml")
	assert.Error(t, err)
}

func TestWriteLedgerCSV(t *testing.T) {
	entries := []models.BudgetEntry{
		{
			MonthKey:      "January 2025",
			Income:        decimal.NewFromInt(1400),
			TotalExpenses: decimal.NewFromInt(430),
			Balance:       decimal.NewFromInt(970),
			SavedAt:       time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	csvFile := filepath.Join(t.TempDir(), "out", "ledger.csv")
	require.NoError(t, NewGenerator().WriteLedgerCSV(entries, csvFile))

	data, err := os.ReadFile(csvFile)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "month")
	assert.Contains(t, lines[1], "January 2025")
	assert.Contains(t, lines[1], "430.00")
	assert.Contains(t, lines[1], "970.00")
}
