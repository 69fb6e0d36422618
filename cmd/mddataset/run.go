package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/md-dataset/md-dataset/internal/domain"
	"github.com/md-dataset/md-dataset/internal/pkg/logger"
	"github.com/md-dataset/md-dataset/internal/process"
)

var (
	runInputPath  string
	runName       string
	runOutputType string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Forward the tables of input datasets into a new output dataset",
	Long: `Run reads a JSON array of input datasets, hydrates their tables, forwards the
tables of the first input by kind into an output dataset of the requested type
and prints the manifest of the saved dataset.

Input format:
  [{"name": "HelloWorld", "type": "INTENSITY",
    "tables": [{"name": "Protein_Intensity", "bucket": "upstream", "key": "in/intensity.parquet"}]}]`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runInputPath, "input", "i", "-", "Input datasets JSON file, - for stdin")
	runCmd.Flags().StringVarP(&runName, "name", "n", "", "Output dataset name (default: first input's name)")
	runCmd.Flags().StringVarP(&runOutputType, "output-type", "t", string(domain.DatasetTypeIntensity), "Output dataset type")
}

func runRun(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	outputType, err := domain.ParseDatasetType(runOutputType)
	if err != nil {
		return err
	}

	raw, err := readInput(runInputPath)
	if err != nil {
		return fmt.Errorf("failed to read input datasets: %w", err)
	}
	inputs, err := domain.DecodeInputDatasets(raw)
	if err != nil {
		return err
	}

	stop := serveMetrics()
	defer stop()

	manager, err := newManager(ctx)
	if err != nil {
		return err
	}

	runner := process.NewRunner(manager, logger.Log)
	manifest, err := runner.Run(ctx, process.ForwardTables, inputs, process.Params{Name: runName}, outputType)
	if err != nil {
		logger.Error("run failed", zap.Error(err))
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(manifest)
}
