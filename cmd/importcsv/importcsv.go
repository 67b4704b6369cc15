// Package importcsv handles importing categorized transactions from CSV
package importcsv

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/budget-ledger/cmd/common"
	"fjacquet/budget-ledger/cmd/root"
	"fjacquet/budget-ledger/internal/importer"
	"fjacquet/budget-ledger/internal/normalize"
)

var input string

// Cmd represents the import command
var Cmd = &cobra.Command{
	Use:   "import",
	Short: "Import categorized transactions from a CSV file",
	Long: `Import categorized transactions from a CSV file with month, category,
amount and optional shared columns. Rows are aggregated into one candidate
record per month; each candidate replaces any stored entry for that month.
Rows whose category is "income" or "otherIncome" feed the income fields.`,
	Run: importFunc,
}

func init() {
	Cmd.Flags().StringVarP(&input, "input", "i", "", "Input CSV file (required)")
	if err := Cmd.MarkFlagRequired("input"); err != nil {
		root.Log.Warnf("Failed to mark input flag required: %v", err)
	}
}

func importFunc(cmd *cobra.Command, args []string) {
	root.Log.Infof("Importing transactions from %s", input)

	candidates, err := importer.ImportFile(input)
	if err != nil {
		root.Log.Fatalf("Error importing transactions: %v", err)
	}
	if len(candidates) == 0 {
		root.Log.Warn("No usable transactions found in the input file")
		return
	}

	l, err := common.OpenLedger(root.Log)
	if err != nil {
		root.Log.Fatalf("Error opening ledger: %v", err)
	}

	saved := 0
	rejected := 0
	for _, raw := range candidates {
		entry, err := normalize.Repair(l.Schema(), raw)
		if err != nil {
			root.Log.WithError(err).WithField("monthKey", raw.MonthKey).Warn("Rejected imported month")
			rejected++
			continue
		}
		if _, err := l.Upsert(entry); err != nil {
			root.Log.Fatalf("Error saving imported entry: %v", err)
		}
		saved++
	}

	fmt.Printf("Imported %d month(s), rejected %d\n", saved, rejected)
}
