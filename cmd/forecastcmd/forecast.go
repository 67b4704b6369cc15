// Package forecastcmd handles next-month and run-rate forecasting
package forecastcmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"fjacquet/budget-ledger/cmd/common"
	"fjacquet/budget-ledger/cmd/root"
	"fjacquet/budget-ledger/internal/dateutils"
	"fjacquet/budget-ledger/internal/forecast"
	"fjacquet/budget-ledger/internal/report"
)

var (
	spentSoFar  float64
	elapsedDays int
	month       string
)

// Cmd represents the forecast command
var Cmd = &cobra.Command{
	Use:   "forecast",
	Short: "Predict next-month spending per category group",
	Long: `Forecast the fixed, variable and savings groupings for the next month from
the stored history. When --spent and --day are given, a same-month run-rate
projection of the end-of-month balance is added for the open month.`,
	Run: forecastFunc,
}

func init() {
	Cmd.Flags().Float64Var(&spentSoFar, "spent", 0, "Amount spent so far in the open month")
	Cmd.Flags().IntVar(&elapsedDays, "day", 0, "Day of the open month reached so far")
	Cmd.Flags().StringVarP(&month, "month", "m", "", "Open month key for the run-rate projection (defaults to the latest stored month)")
}

func forecastFunc(cmd *cobra.Command, args []string) {
	l, err := common.OpenLedger(root.Log)
	if err != nil {
		root.Log.Fatalf("Error opening ledger: %v", err)
	}

	entries := l.OrderedByDate()
	groups := forecast.ForAllGroups(l.Schema(), entries)

	var runRate *forecast.RunRate
	if elapsedDays > 0 {
		key := month
		if key == "" && len(entries) > 0 {
			key = entries[len(entries)-1].MonthKey
		}
		if key == "" {
			root.Log.Fatal("No stored months; pass --month for the run-rate projection")
		}

		daysInMonth, err := dateutils.DaysInMonthKey(key)
		if err != nil {
			root.Log.Fatalf("Invalid month key %q: %v", key, err)
		}

		balance := decimal.Zero
		if entry, ok := l.GetByKey(key); ok {
			balance = entry.Balance
		}

		projection := forecast.ProjectRunRate(decimal.NewFromFloat(spentSoFar), elapsedDays, daysInMonth, balance)
		runRate = &projection
	}

	if root.SharedFlags.Format == "json" {
		payload := struct {
			Groups  []forecast.GroupForecast `json:"groups"`
			RunRate *forecast.RunRate        `json:"runRate,omitempty"`
		}{groups, runRate}

		data, err := report.NewGenerator().Generate("forecast", payload, "json")
		if err != nil {
			root.Log.Fatalf("Error rendering forecast: %v", err)
		}
		fmt.Println(string(data))
		return
	}

	fmt.Printf("%-12s %12s %12s %9s  %s\n", "GROUP", "CURRENT", "PREDICTED", "CHANGE", "DIRECTION")
	for _, g := range groups {
		if g.InsufficientData {
			fmt.Printf("%-12s %36s\n", g.Group, "insufficient data")
			continue
		}
		fmt.Printf("%-12s %12s %12s %8.1f%%  %s\n",
			g.Group, g.Current.StringFixed(2), g.Predicted.StringFixed(2), g.PercentChange, g.Direction)
	}

	if runRate != nil {
		fmt.Println()
		fmt.Printf("Daily rate:            %s\n", runRate.DailyRate.StringFixed(2))
		fmt.Printf("Projected remaining:   %s\n", runRate.ProjectedRemaining.StringFixed(2))
		fmt.Printf("Projected end balance: %s (%s)\n", runRate.ProjectedEndBalance.StringFixed(2), runRate.Status)
	}
}
