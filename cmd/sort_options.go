package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/chrisdamba/takeaway/internal/models"
)

var sortOptionsCmd = &cobra.Command{
	Use:   "sort-options",
	Short: "Print the available sort options",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, o := range models.SortOptions() {
			marker := " "
			if o == cfg.SortOption {
				marker = "*"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", marker, o.Key(), o)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(sortOptionsCmd)
}
