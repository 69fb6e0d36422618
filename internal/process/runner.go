package process

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/md-dataset/md-dataset/internal/domain"
	apperrors "github.com/md-dataset/md-dataset/internal/pkg/errors"
	"github.com/md-dataset/md-dataset/internal/pkg/id"
	"github.com/md-dataset/md-dataset/internal/pkg/logger"
)

// Storage loads input tables and saves output tables
type Storage interface {
	domain.TableLoader
	SaveTables(ctx context.Context, tables []domain.PathTable) error
}

// Params are the step parameters known to the runner. Values are passed to
// the step untouched.
type Params struct {
	// Name of the output dataset. Defaults to the first input's name.
	Name   string
	Values map[string]any
}

// StepFunc computes the tables of an output dataset. The returned map is
// keyed by lowercase table kind (intensity, metadata, ...).
type StepFunc func(ctx context.Context, inputs []domain.InputDataset, params Params, outputType domain.DatasetType) (map[string]any, error)

// Runner executes steps
type Runner struct {
	storage  Storage
	logger   *zap.Logger
	newRunID func() uuid.UUID
}

// NewRunner creates a new step runner
func NewRunner(storage Storage, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		storage:  storage,
		logger:   logger,
		newRunID: id.NewRunID,
	}
}

// Run populates the inputs, calls step and saves its result as an output
// dataset of outputType. The result is validated before anything is
// written; a step result missing a required table writes nothing. Errors
// from storage and from the step are returned unchanged.
func (r *Runner) Run(ctx context.Context, step StepFunc, inputs []domain.InputDataset, params Params, outputType domain.DatasetType) (*domain.Manifest, error) {
	if !outputType.IsValid() {
		return nil, apperrors.Validation(fmt.Sprintf("unknown output dataset type %q", outputType)).
			WithDetail("type", string(outputType))
	}

	name, err := outputName(inputs, params)
	if err != nil {
		return nil, err
	}

	run := domain.RunIdentity{RunID: r.newRunID(), Name: name}
	log := logger.WithDataset(logger.WithRunID(r.logger, run.RunID.String()), name, string(outputType))
	start := time.Now()

	for _, in := range inputs {
		if err := in.PopulateTables(ctx, r.storage); err != nil {
			log.Error("failed to populate input dataset", zap.String("input", in.Name()), zap.Error(err))
			return nil, err
		}
	}

	result, err := step(ctx, inputs, params, outputType)
	if err != nil {
		log.Error("step failed", zap.Error(err))
		return nil, err
	}

	out, err := domain.NewOutputDataset(run, outputType, result)
	if err != nil {
		log.Warn("step returned an invalid output dataset", zap.Error(err))
		return nil, err
	}

	if err := r.storage.SaveTables(ctx, out.Tables()); err != nil {
		log.Error("failed to save output tables", zap.Error(err))
		return nil, err
	}

	manifest := out.Manifest()
	log.Info("step completed",
		zap.Int("inputs", len(inputs)),
		zap.Int("tables", len(manifest.Tables)),
		zap.Duration("duration", time.Since(start)),
	)

	return &manifest, nil
}

func outputName(inputs []domain.InputDataset, params Params) (string, error) {
	if params.Name != "" {
		return params.Name, nil
	}
	if len(inputs) > 0 && inputs[0].Name() != "" {
		return inputs[0].Name(), nil
	}
	return "", apperrors.Validation("output dataset name is required when there are no inputs").
		WithDetail("name", "field required")
}

// ForwardTables is a step that returns the hydrated tables of the first
// input by kind, for every kind the output type owns. Kinds the input does
// not carry are left out.
func ForwardTables(_ context.Context, inputs []domain.InputDataset, _ Params, outputType domain.DatasetType) (map[string]any, error) {
	if len(inputs) == 0 {
		return nil, apperrors.Validation("forward step needs at least one input dataset")
	}

	src := inputs[0]
	result := make(map[string]any)
	for _, kind := range outputType.TableKinds() {
		if t, ok := src.Table(kind); ok && t.Data != nil {
			result[kind.Field()] = t.Data
		}
	}
	return result, nil
}
