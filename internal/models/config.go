package models

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type StoreConfig struct {
	Backend     string `mapstructure:"backend"`
	Path        string `mapstructure:"path"`
	DatabaseURL string `mapstructure:"database_url"`
}

type KafkaConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	BrokerList     string `mapstructure:"broker_list"`
	FavoritesTopic string `mapstructure:"favorites_topic"`
}

type ServerConfig struct {
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	Region     string `mapstructure:"region"`
	BucketName string `mapstructure:"bucket_name"`
}

type Config struct {
	Environment  string             `mapstructure:"environment"`
	LogLevel     string             `mapstructure:"log_level"`
	CatalogPath  string             `mapstructure:"catalog_path"`
	SortOption   SortOption         `mapstructure:"sort_option"`
	FavoritesKey string             `mapstructure:"favorites_key"`
	Store        StoreConfig        `mapstructure:"store"`
	Kafka        KafkaConfig        `mapstructure:"kafka"`
	Server       ServerConfig       `mapstructure:"server"`
	CloudStorage CloudStorageConfig `mapstructure:"cloud_storage"`
}

// SetDefaults registers the default of every key so env vars and flags can
// override keys that never appear in a config file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("catalog_path", "")
	v.SetDefault("sort_option", DefaultSortOption.String())
	v.SetDefault("favorites_key", DefaultFavoritesKey)
	v.SetDefault("store.backend", StoreBackendFile)
	v.SetDefault("store.path", defaultStorePath())
	v.SetDefault("store.database_url", "")
	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.broker_list", "localhost:9092")
	v.SetDefault("kafka.favorites_topic", DefaultFavoriteTopic)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("cloud_storage.provider", "s3")
	v.SetDefault("cloud_storage.region", "us-east-1")
	v.SetDefault("cloud_storage.bucket_name", "")
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".takeaway", "preferences.yaml")
	}
	return filepath.Join(home, ".takeaway", "preferences.yaml")
}

// LoadConfig initializes and reads the configuration using the global Viper
func LoadConfig(cfgFile string) (*Config, error) {
	return LoadConfigFrom(viper.GetViper(), cfgFile)
}

// LoadConfigFrom reads the configuration into v. An explicit cfgFile must
// exist; without one, a missing $HOME/.takeaway.yaml is not an error.
func LoadConfigFrom(v *viper.Viper, cfgFile string) (*Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".takeaway")
	}

	v.SetEnvPrefix("takeaway")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.TextUnmarshallerHookFunc(),
		)
	})
	if err := v.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (cfg *Config) Validate() error {
	switch cfg.Store.Backend {
	case StoreBackendMemory, StoreBackendFile, StoreBackendSQLite:
	case StoreBackendPostgres:
		if cfg.Store.DatabaseURL == "" {
			return fmt.Errorf("store.database_url is required for the %s backend", StoreBackendPostgres)
		}
	default:
		return fmt.Errorf("unsupported store backend: %q", cfg.Store.Backend)
	}
	if cfg.FavoritesKey == "" {
		return errors.New("favorites_key must not be empty")
	}
	if cfg.Kafka.Enabled && cfg.Kafka.BrokerList == "" {
		return errors.New("kafka.broker_list is required when kafka is enabled")
	}
	return nil
}
