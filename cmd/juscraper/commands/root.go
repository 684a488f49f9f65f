package commands

import (
	"context"
	"fmt"
	"os"

	"juscraper/lib/telemetry"

	"github.com/spf13/cobra"
)

var verbose *bool

var rootCmd = &cobra.Command{
	Use:   "juscraper",
	Short: "juscraper downloads and tabulates decisions from brazilian court portals.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)
	},
}

func init() {
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging and keep heavy fields in the output.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
