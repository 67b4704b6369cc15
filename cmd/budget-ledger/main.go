// Package main provides the entry point for the budget-ledger CLI application.
package main

import (
	"os"

	"fjacquet/budget-ledger/cmd/add"
	"fjacquet/budget-ledger/cmd/forecastcmd"
	"fjacquet/budget-ledger/cmd/importcsv"
	"fjacquet/budget-ledger/cmd/list"
	"fjacquet/budget-ledger/cmd/remove"
	"fjacquet/budget-ledger/cmd/reportcmd"
	"fjacquet/budget-ledger/cmd/root"
	"fjacquet/budget-ledger/cmd/trends"
)

func main() {
	root.Init()

	root.Cmd.AddCommand(add.Cmd)
	root.Cmd.AddCommand(list.Cmd)
	root.Cmd.AddCommand(remove.Cmd)
	root.Cmd.AddCommand(importcsv.Cmd)
	root.Cmd.AddCommand(trends.Cmd)
	root.Cmd.AddCommand(forecastcmd.Cmd)
	root.Cmd.AddCommand(reportcmd.Cmd)

	if err := root.Cmd.Execute(); err != nil {
		root.Log.Error(err)
		os.Exit(1)
	}
}
