package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chrisdamba/takeaway/internal/catalog"
	"github.com/chrisdamba/takeaway/internal/factories"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a synthetic restaurant catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		seed, _ := cmd.Flags().GetInt64("seed")
		out, _ := cmd.Flags().GetString("out")
		if count < 0 {
			return fmt.Errorf("count must not be negative, got %d", count)
		}

		factory := factories.NewRestaurantFactory(seed)
		restaurants := factory.CreateCatalog(count, cmd.ErrOrStderr())
		fmt.Fprintln(cmd.ErrOrStderr())

		var w io.Writer = cmd.OutOrStdout()
		if out != "" && out != "-" {
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			defer f.Close()
			w = f
		}

		if err := catalog.Encode(w, restaurants); err != nil {
			return fmt.Errorf("failed to write catalog: %w", err)
		}
		log.Info("catalog generated", zap.Int("restaurants", len(restaurants)), zap.String("out", out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().Int("count", 100, "number of restaurants")
	generateCmd.Flags().Int64("seed", 42, "random seed")
	generateCmd.Flags().String("out", "-", "output file, - for stdout")
}
