package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/md-dataset/md-dataset/internal/config"
	"github.com/md-dataset/md-dataset/internal/pkg/logger"
	"github.com/md-dataset/md-dataset/internal/storage"
)

var (
	// Version is set at build time
	Version = "0.1.0"

	// Global flags
	configPath string
	verbose    bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "mddataset",
	Short: "Typed dataset tables on object storage",
	Long: `mddataset loads, validates and stores the parquet tables of pipeline datasets.

Commands:
  inspect - Load one table and print its shape and columns
  run     - Run the forwarding step over input datasets and print the manifest

Example:
  mddataset inspect --bucket upstream --key in/intensity.parquet
  mddataset run --input inputs.json --output-type INTENSITY --name "HelloWorld Output"`,
	Version:           Version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: search ./config.yaml, ./config, /etc/md-dataset)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(runCmd)
}

// Execute runs the CLI
func Execute() error {
	defer func() { _ = logger.Sync() }()
	return rootCmd.ExecuteContext(context.Background())
}

func setup(_ *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logCfg := logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}
	if verbose {
		logCfg.Level = "debug"
	}
	if err := logger.Init(logCfg); err != nil {
		return err
	}

	logger.Debug("configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("endpoint", cfg.Storage.Endpoint),
		zap.String("default_bucket", cfg.Storage.DefaultBucket),
	)
	return nil
}

// newManager builds the storage manager from the loaded config
func newManager(ctx context.Context) (*storage.Manager, error) {
	client, err := storage.NewMinioClient(cfg.Storage)
	if err != nil {
		return nil, err
	}
	store := storage.NewMinioStore(client)

	if cfg.Storage.CreateBucket && cfg.Storage.DefaultBucket != "" {
		if err := store.EnsureBucket(ctx, cfg.Storage.DefaultBucket); err != nil {
			return nil, err
		}
	}

	return storage.NewManager(store, cfg.Storage.DefaultBucket, logger.Log), nil
}

// serveMetrics exposes the Prometheus registry while a command runs. The
// returned function stops the server.
func serveMetrics() func() {
	if cfg.Metrics.Addr == "" {
		return func() {}
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              cfg.Metrics.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("serving metrics", zap.String("addr", cfg.Metrics.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server error", zap.Error(err))
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("metrics server shutdown", zap.Error(err))
		}
	}
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
