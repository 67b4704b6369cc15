// Package trends handles the per-category trend report
package trends

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/budget-ledger/cmd/common"
	"fjacquet/budget-ledger/cmd/root"
	"fjacquet/budget-ledger/internal/forecast"
	"fjacquet/budget-ledger/internal/report"
)

// Cmd represents the trends command
var Cmd = &cobra.Command{
	Use:   "trends",
	Short: "Show per-category and aggregate spending trends",
	Long: `Compare the recent months against the months before them and classify each
category and the income/expense/balance aggregates as rising, falling or
stable.`,
	Run: trendsFunc,
}

func trendsFunc(cmd *cobra.Command, args []string) {
	l, err := common.OpenLedger(root.Log)
	if err != nil {
		root.Log.Fatalf("Error opening ledger: %v", err)
	}

	entries := l.OrderedByDate()
	table := forecast.TrendTable(entries)
	aggregates := forecast.TrendForAggregates(entries)

	if root.SharedFlags.Format == "json" {
		payload := struct {
			Categories []forecast.CategoryTrend `json:"categories"`
			Aggregates forecast.AggregateTrends `json:"aggregates"`
		}{table, aggregates}

		data, err := report.NewGenerator().Generate("trends", payload, "json")
		if err != nil {
			root.Log.Fatalf("Error rendering trends: %v", err)
		}
		fmt.Println(string(data))
		return
	}

	fmt.Printf("%-20s %12s %12s %8s  %s\n", "CATEGORY", "CURRENT", "PREDICTED", "TREND", "DIRECTION")
	for _, row := range table {
		fmt.Printf("%-20s %12s %12s %7.1f%%  %s\n",
			row.Category, row.Current.StringFixed(2), row.Predicted.StringFixed(2),
			row.TrendRatio*100, row.Direction)
	}
	fmt.Println()
	for _, row := range []forecast.CategoryTrend{aggregates.Income, aggregates.Expenses, aggregates.Balance} {
		fmt.Printf("%-20s %12s %12s %7.1f%%  %s\n",
			row.Category, row.Current.StringFixed(2), row.Predicted.StringFixed(2),
			row.TrendRatio*100, row.Direction)
	}
}
