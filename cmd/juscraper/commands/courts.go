package commands

import (
	"fmt"

	"juscraper/lib/courts"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(courtsCmd)
}

var courtsCmd = &cobra.Command{
	Use:   "courts",
	Short: "Lists the court portals this tool knows how to search.",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range courts.Names() {
			fmt.Println(name)
		}
	},
}
