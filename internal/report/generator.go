// Package report renders ledger, trend and forecast results for the
// presentation collaborator.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"fjacquet/budget-ledger/internal/config"
	"fjacquet/budget-ledger/internal/models"
)

// Report wraps a rendered payload with its identity and generation time.
type Report struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	GeneratedAt time.Time `json:"generatedAt"`
	Payload     any       `json:"payload"`
}

// EntryRow is the flat CSV representation of one ledger entry.
type EntryRow struct {
	Month         string `csv:"month"`
	Income        string `csv:"income"`
	OtherIncome   string `csv:"other_income"`
	TotalExpenses string `csv:"total_expenses"`
	Balance       string `csv:"balance"`
	SavedAt       string `csv:"saved_at"`
}

// Generator renders reports in the supported output formats.
type Generator struct {
	logger *logrus.Logger
}

// NewGenerator creates a new report generator.
func NewGenerator() *Generator {
	return &Generator{logger: config.Logger}
}

// Generate wraps a payload in a report envelope and renders it in the
// requested format. Only "json" is supported for arbitrary payloads.
func (g *Generator) Generate(kind string, payload any, format string) ([]byte, error) {
	switch format {
	case "json":
		return g.generateJSON(kind, payload)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *Generator) generateJSON(kind string, payload any) ([]byte, error) {
	report := Report{
		ID:          uuid.NewString(),
		Kind:        kind,
		GeneratedAt: time.Now().UTC(),
		Payload:     payload,
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		g.logger.Errorf("Failed to marshal JSON report: %v", err)
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return data, nil
}

// WriteLedgerCSV writes the ledger entries to a CSV file, creating the
// parent directory if needed.
func (g *Generator) WriteLedgerCSV(entries []models.BudgetEntry, csvFile string) error {
	g.logger.WithFields(logrus.Fields{
		"file":  csvFile,
		"count": len(entries),
	}).Info("Writing ledger to CSV file")

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, 0750); err != nil {
		g.logger.WithError(err).Error("Failed to create directory")
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		g.logger.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			g.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	rows := make([]EntryRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, EntryRow{
			Month:         entry.MonthKey,
			Income:        entry.Income.StringFixed(2),
			OtherIncome:   entry.OtherIncome.StringFixed(2),
			TotalExpenses: entry.TotalExpenses.StringFixed(2),
			Balance:       entry.Balance.StringFixed(2),
			SavedAt:       entry.SavedAt.UTC().Format(time.RFC3339),
		})
	}

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		g.logger.WithError(err).Error("Failed to write CSV file")
		return fmt.Errorf("error writing CSV file: %w", err)
	}
	return nil
}
