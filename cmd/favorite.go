package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var favoriteCmd = &cobra.Command{
	Use:     "favorite",
	Aliases: []string{"fav"},
	Short:   "Inspect or change favorite restaurants",
}

var favoriteToggleCmd = &cobra.Command{
	Use:   "toggle NAME",
	Short: "Mark a restaurant as favorite, or unmark it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		name := args[0]
		favorite, err := a.favorites.Toggle(cmd.Context(), name)
		if err != nil {
			return fmt.Errorf("failed to save favorite %q: %w", name, err)
		}
		if favorite {
			fmt.Fprintf(cmd.OutOrStdout(), "%s added to favorites\n", name)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s removed from favorites\n", name)
		}
		return nil
	},
}

var favoriteListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print favorite names in the order they were added",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		for _, name := range a.favorites.Set().Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(favoriteCmd)
	favoriteCmd.AddCommand(favoriteToggleCmd, favoriteListCmd)
}
