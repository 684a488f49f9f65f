package commands

import (
	"fmt"

	"juscraper/lib/cnj"
	"juscraper/lib/util/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	cnjCmd.AddCommand(cnjFormatCmd)
	cnjCmd.AddCommand(cnjSplitCmd)
	rootCmd.AddCommand(cnjCmd)
}

var cnjCmd = &cobra.Command{
	Use:   "cnj",
	Short: "Utilities for the unified process numbering scheme.",
}

var cnjFormatCmd = &cobra.Command{
	Use:   "format <number>",
	Short: "Prints a process number in canonical punctuated form.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		formatted, err := cnj.Format(args[0])
		if err != nil {
			serviceutil.Fatal("invalid process number", err)
		}
		fmt.Println(formatted)
	},
}

var cnjSplitCmd = &cobra.Command{
	Use:   "split <number>",
	Short: "Prints the components of a process number.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parts, err := cnj.Split(args[0])
		if err != nil {
			serviceutil.Fatal("invalid process number", err)
		}

		t := newTableWriter()
		t.AppendHeader(table.Row{"Component", "Value"})
		t.AppendRow(table.Row{"sequential", parts.Sequential})
		t.AppendRow(table.Row{"check digit", parts.CheckDigit})
		t.AppendRow(table.Row{"year", parts.Year})
		t.AppendRow(table.Row{"branch", parts.Branch})
		t.AppendRow(table.Row{"court", parts.Court})
		t.AppendRow(table.Row{"unit", parts.Unit})
		t.Render()
	},
}
