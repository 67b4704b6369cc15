// Package remove handles deleting a month's record from the ledger
package remove

import (
	"github.com/spf13/cobra"

	"fjacquet/budget-ledger/cmd/common"
	"fjacquet/budget-ledger/cmd/root"
)

var month string

// Cmd represents the remove command
var Cmd = &cobra.Command{
	Use:   "remove",
	Short: "Delete the budget entry for a month",
	Long:  `Delete the budget entry for the given month key. Removing a month that is not stored is a no-op.`,
	Run:   removeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&month, "month", "m", "", "Month key, e.g. \"March 2025\" (required)")
	if err := Cmd.MarkFlagRequired("month"); err != nil {
		root.Log.Warnf("Failed to mark month flag required: %v", err)
	}
}

func removeFunc(cmd *cobra.Command, args []string) {
	l, err := common.OpenLedger(root.Log)
	if err != nil {
		root.Log.Fatalf("Error opening ledger: %v", err)
	}

	if _, ok := l.GetByKey(month); !ok {
		root.Log.WithField("monthKey", month).Info("No entry stored for that month")
		return
	}

	if err := l.DeleteByKey(month); err != nil {
		root.Log.Fatalf("Error deleting entry: %v", err)
	}
	root.Log.WithField("monthKey", month).Info("Budget entry deleted")
}
