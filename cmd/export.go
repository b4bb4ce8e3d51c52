package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chrisdamba/takeaway/internal/cloudwriter"
	"github.com/chrisdamba/takeaway/internal/export"
	"github.com/chrisdamba/takeaway/internal/listing"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the ordered list to a parquet file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		option, err := sortFlag(cmd)
		if err != nil {
			return err
		}
		query, _ := cmd.Flags().GetString("search")
		out, _ := cmd.Flags().GetString("out")
		cloud, _ := cmd.Flags().GetBool("cloud")

		a, err := openApp(cmd.Context(), listing.WithSortOption(option))
		if err != nil {
			return err
		}
		defer a.Close()
		if query != "" {
			a.screen.Search(cmd.Context(), query)
		}

		opts := []export.Option{export.WithProgress(cmd.ErrOrStderr())}
		if cloud {
			if cfg.CloudStorage.BucketName == "" {
				return errors.New("--cloud needs cloud_storage.bucket_name")
			}
			factory, err := cloudwriter.NewS3WriterFactory(cmd.Context(), cfg.CloudStorage.Region)
			if err != nil {
				return err
			}
			opts = append(opts, export.WithCloud(factory, cfg.CloudStorage.BucketName))
		}

		rows := export.BuildRows(a.screen.Restaurants(), option, a.favorites)
		written, err := export.NewExporter(log, opts...).Export(rows, out)
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		log.Info("list exported", zap.Int("rows", written), zap.String("out", out), zap.Bool("cloud", cloud))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().String("sort", "", "sort option label or key (default from config)")
	exportCmd.Flags().String("search", "", "case-insensitive name filter")
	exportCmd.Flags().String("out", "restaurants.parquet", "output path, or object key with --cloud")
	exportCmd.Flags().Bool("cloud", false, "upload to the configured S3 bucket")
}
