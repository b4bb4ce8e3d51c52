package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/chrisdamba/takeaway/internal/catalog"
	"github.com/chrisdamba/takeaway/internal/events"
	"github.com/chrisdamba/takeaway/internal/favorites"
	"github.com/chrisdamba/takeaway/internal/listing"
	"github.com/chrisdamba/takeaway/internal/logger"
	"github.com/chrisdamba/takeaway/internal/models"
	"github.com/chrisdamba/takeaway/internal/preferences"
)

var (
	cfgFile string
	cfg     *models.Config
	log     *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "takeaway",
	Short: "Browse a restaurant catalog sorted by favorites, status and metric",
	Long: `takeaway lists restaurants from a catalog file, ordered with favorites first,
then by opening status, then by the selected sort metric. Favorites are kept
in a local preference store.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = models.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
			return err
		}
		log = logger.Get()
		if used := viper.ConfigFileUsed(); used != "" {
			log.Debug("using config file", zap.String("path", used))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initEnv)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.takeaway.yaml)")

	rootCmd.PersistentFlags().String("catalog", "", "catalog file or s3://bucket/key (default is the bundled sample)")
	rootCmd.PersistentFlags().String("store", models.StoreBackendFile, "preference store backend: memory, file, sqlite or postgres")
	rootCmd.PersistentFlags().String("store-path", "", "preference file or sqlite database path")
	rootCmd.PersistentFlags().String("database-url", "", "postgres connection string for the postgres store")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("environment", "development", "development or production logging")
	rootCmd.PersistentFlags().Bool("kafka-enabled", false, "publish favorite changes to Kafka")
	rootCmd.PersistentFlags().String("kafka-broker-list", "localhost:9092", "Kafka broker list")

	bindFlag("catalog_path", "catalog")
	bindFlag("store.backend", "store")
	bindFlag("store.path", "store-path")
	bindFlag("store.database_url", "database-url")
	bindFlag("log_level", "log-level")
	bindFlag("environment", "environment")
	bindFlag("kafka.enabled", "kafka-enabled")
	bindFlag("kafka.broker_list", "kafka-broker-list")
}

func bindFlag(key, flag string) {
	cobra.CheckErr(viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)))
}

func initEnv() {
	// a missing .env is the normal case
	_ = godotenv.Load()
}

// app is everything a command needs to drive the list screen.
type app struct {
	screen    *listing.Screen
	favorites *favorites.Service
	store     preferences.ClosableStore
	publisher events.Publisher
}

func (a *app) Close() {
	if err := a.publisher.Close(); err != nil {
		log.Warn("failed to close publisher", zap.Error(err))
	}
	if err := a.store.Close(); err != nil {
		log.Warn("failed to close preference store", zap.Error(err))
	}
}

func openApp(ctx context.Context, opts ...listing.Option) (*app, error) {
	store, err := preferences.Open(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to open preference store: %w", err)
	}

	publisher, err := events.New(cfg.Kafka, log)
	if err != nil {
		store.Close()
		return nil, err
	}

	source, err := catalog.Open(ctx, cfg.CatalogPath, cfg.CloudStorage.Region, log)
	if err != nil {
		publisher.Close()
		store.Close()
		return nil, err
	}

	favs := favorites.NewService(store, cfg.FavoritesKey, log, favorites.WithPublisher(publisher, cfg.Kafka.FavoritesTopic))
	opts = append([]listing.Option{listing.WithSortOption(cfg.SortOption)}, opts...)

	return &app{
		screen:    listing.New(ctx, source, favs, log, opts...),
		favorites: favs,
		store:     store,
		publisher: publisher,
	}, nil
}

// sortFlag resolves a --sort value, falling back to the configured option.
func sortFlag(cmd *cobra.Command) (models.SortOption, error) {
	raw, _ := cmd.Flags().GetString("sort")
	if raw == "" {
		return cfg.SortOption, nil
	}
	return models.ParseSortOption(raw)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
