// Package reportcmd handles the first-vs-last comparison report
package reportcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/budget-ledger/cmd/common"
	"fjacquet/budget-ledger/cmd/root"
	"fjacquet/budget-ledger/internal/forecast"
	"fjacquet/budget-ledger/internal/report"
)

// Cmd represents the report command
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Show what changed between the first and last stored months",
	Long: `Compare the chronologically first and last stored months category by
category and emit advisories when rent, food or leisure rose past their
thresholds, or when the average savings rate falls below 10%.`,
	Run: reportFunc,
}

func reportFunc(cmd *cobra.Command, args []string) {
	l, err := common.OpenLedger(root.Log)
	if err != nil {
		root.Log.Fatalf("Error opening ledger: %v", err)
	}

	comparison := forecast.Compare(l.OrderedByDate())

	if root.SharedFlags.Format == "json" {
		data, err := report.NewGenerator().Generate("comparison", comparison, "json")
		if err != nil {
			root.Log.Fatalf("Error rendering report: %v", err)
		}
		fmt.Println(string(data))
		return
	}

	if comparison.InsufficientData {
		fmt.Println("Not enough stored months to compare; save at least two.")
		return
	}

	fmt.Printf("Comparing %s to %s\n\n", comparison.FirstKey, comparison.LastKey)
	fmt.Printf("%-20s %12s %12s %12s %9s  %s\n", "CATEGORY", "FIRST", "LAST", "CHANGE", "PERCENT", "DIRECTION")
	for _, change := range comparison.Changes {
		fmt.Printf("%-20s %12s %12s %12s %8.1f%%  %s\n",
			change.Category, change.First.StringFixed(2), change.Last.StringFixed(2),
			change.Change.StringFixed(2), change.ChangePercent, change.Direction)
	}

	fmt.Printf("\nAverage savings rate: %.1f%%\n", comparison.SavingsRatePct)
	if len(comparison.Advisories) > 0 {
		fmt.Println("\nAdvisories:")
		for _, advisory := range comparison.Advisories {
			fmt.Printf("  - %s\n", advisory.Message)
		}
	}
}
