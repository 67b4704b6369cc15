// Package list handles displaying and exporting the stored ledger
package list

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/budget-ledger/cmd/common"
	"fjacquet/budget-ledger/cmd/root"
	"fjacquet/budget-ledger/internal/report"
)

// Cmd represents the list command
var Cmd = &cobra.Command{
	Use:   "list",
	Short: "List stored budget entries in chronological order",
	Long: `List all stored budget entries sorted by calendar month. With --output the
ledger is exported to a CSV file instead; with --format json it is printed
as a JSON report.`,
	Run: listFunc,
}

func listFunc(cmd *cobra.Command, args []string) {
	l, err := common.OpenLedger(root.Log)
	if err != nil {
		root.Log.Fatalf("Error opening ledger: %v", err)
	}

	entries := l.OrderedByDate()
	if len(entries) == 0 {
		fmt.Println("The ledger is empty.")
		return
	}

	generator := report.NewGenerator()

	if root.SharedFlags.Output != "" {
		if err := generator.WriteLedgerCSV(entries, root.SharedFlags.Output); err != nil {
			root.Log.Fatalf("Error exporting ledger: %v", err)
		}
		root.Log.Infof("Ledger exported to %s", root.SharedFlags.Output)
		return
	}

	if root.SharedFlags.Format == "json" {
		data, err := generator.Generate("ledger", entries, "json")
		if err != nil {
			root.Log.Fatalf("Error rendering ledger: %v", err)
		}
		fmt.Println(string(data))
		return
	}

	fmt.Printf("%-16s %12s %12s %12s %12s\n", "MONTH", "INCOME", "OTHER", "EXPENSES", "BALANCE")
	for _, entry := range entries {
		fmt.Printf("%-16s %12s %12s %12s %12s\n",
			entry.MonthKey,
			entry.Income.StringFixed(2),
			entry.OtherIncome.StringFixed(2),
			entry.TotalExpenses.StringFixed(2),
			entry.Balance.StringFixed(2))
	}
}
