package config

// Config holds all configuration for the application
type Config struct {
	Env     string
	Storage StorageConfig
	Log     LogConfig
	Metrics MetricsConfig
}

// StorageConfig holds object storage configuration
type StorageConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Region    string `mapstructure:"region"`
	// DefaultBucket is used when a table does not name its bucket, and for
	// every upload
	DefaultBucket string `mapstructure:"default_bucket"`
	// CreateBucket creates the default bucket at startup when it is missing
	CreateBucket bool `mapstructure:"create_bucket"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig holds Prometheus exposition configuration
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// IsDevelopment returns true if running in development mode
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c Config) IsProduction() bool {
	return c.Env == "production"
}
