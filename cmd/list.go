package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mitchellh/colorstring"
	"github.com/spf13/cobra"

	"github.com/chrisdamba/takeaway/internal/listing"
	"github.com/chrisdamba/takeaway/internal/models"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the restaurant list in display order",
	RunE: func(cmd *cobra.Command, args []string) error {
		option, err := sortFlag(cmd)
		if err != nil {
			return err
		}
		query, _ := cmd.Flags().GetString("search")
		plain, _ := cmd.Flags().GetBool("no-color")

		a, err := openApp(cmd.Context(), listing.WithSortOption(option))
		if err != nil {
			return err
		}
		defer a.Close()

		if query != "" {
			a.screen.Search(cmd.Context(), query)
		}
		return printRows(cmd.OutOrStdout(), a.screen.Rows(), !plain)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().String("sort", "", "sort option label or key (default from config)")
	listCmd.Flags().String("search", "", "case-insensitive name filter")
	listCmd.Flags().Bool("no-color", false, "print status without colors")
}

var statusColors = map[string]string{
	models.RestaurantStatusOpen:       "[green]",
	models.RestaurantStatusOrderAhead: "[yellow]",
	models.RestaurantStatusClosed:     "[red]",
}

// statusWidth is the widest status label.
var statusWidth = len(models.StatusOrderAhead.Label())

// statusCell pads the visible label to statusWidth, outside any color codes.
func statusCell(row listing.Row, color bool) string {
	padding := strings.Repeat(" ", max(statusWidth-len(row.StatusLabel), 0))
	if !color || row.StatusLabel == "" {
		return row.StatusLabel + padding
	}
	return colorstring.Color(statusColors[row.Status]+row.StatusLabel+"[reset]") + padding
}

// printRows aligns the marker and name columns with a tabwriter. Status and
// metric go in the trailing cell, which the tabwriter leaves unmeasured.
func printRows(out io.Writer, rows []listing.Row, color bool) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, row := range rows {
		marker := " "
		if row.Favorite {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s  %s\n", marker, row.Name, statusCell(row, color), row.SortLabel)
	}
	return tw.Flush()
}
