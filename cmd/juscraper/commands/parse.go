package commands

import (
	"juscraper/lib/courts"
	"juscraper/lib/pipeline"
	"juscraper/lib/util/serviceutil"

	"github.com/spf13/cobra"
)

var parseCourt *string

func init() {
	parseCourt = parseCmd.Flags().String("court", "", "Which court's extraction rules to apply.")
	cobra.CheckErr(parseCmd.MarkFlagRequired("court"))
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse --court <name> <path/to/run-dir-or-file>",
	Short: "Parses previously downloaded page files into a table without touching the network.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		entry, err := courts.Lookup(*parseCourt)
		if err != nil {
			serviceutil.Fatal("unknown court", err)
		}

		result, err := pipeline.Parse(cmd.Context(), entry.Profile(), args[0], *verbose)
		if err != nil {
			serviceutil.Fatal("parse failed", err)
		}
		renderTable(result)
	},
}
