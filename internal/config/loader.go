package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	apperrors "github.com/md-dataset/md-dataset/internal/pkg/errors"
)

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration like Load, reading path instead of searching
// the default locations when path is set. A missing explicit file is an error.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read from environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/md-dataset")

		// Ignore error if config file not found
		var notFound viper.ConfigFileNotFoundError
		if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config

	cfg.Env = v.GetString("env")

	// Object storage
	cfg.Storage.Endpoint = v.GetString("minio_endpoint")
	cfg.Storage.AccessKey = v.GetString("minio_access_key")
	cfg.Storage.SecretKey = v.GetString("minio_secret_key")
	cfg.Storage.UseSSL = v.GetBool("minio_use_ssl")
	cfg.Storage.Region = v.GetString("minio_region")
	cfg.Storage.DefaultBucket = v.GetString("default_bucket")
	cfg.Storage.CreateBucket = v.GetBool("create_bucket")

	// Logging
	cfg.Log.Level = v.GetString("log_level")
	cfg.Log.Format = v.GetString("log_format")

	// Metrics
	cfg.Metrics.Addr = v.GetString("metrics_addr")

	// Validate required fields
	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")

	// Object storage defaults
	v.SetDefault("minio_endpoint", "localhost:9000")
	v.SetDefault("minio_access_key", "")
	v.SetDefault("minio_secret_key", "")
	v.SetDefault("minio_use_ssl", false)
	v.SetDefault("minio_region", "")
	v.SetDefault("default_bucket", "")
	v.SetDefault("create_bucket", false)

	// Logging defaults
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	// Metrics defaults
	v.SetDefault("metrics_addr", "")
}

func validate(cfg *Config) error {
	if cfg.IsProduction() && cfg.Storage.DefaultBucket == "" {
		return apperrors.Configuration("default_bucket must be set in production")
	}
	if cfg.Storage.UseSSL && cfg.Storage.Endpoint == "" {
		return apperrors.Configuration("minio_use_ssl requires minio_endpoint")
	}
	return nil
}
