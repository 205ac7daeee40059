package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	goerrors "github.com/go-errors/errors"

	"github.com/artie-labs/credit-approval/lib/config"
	"github.com/artie-labs/credit-approval/lib/config/constants"
	"github.com/artie-labs/credit-approval/lib/table"
	"github.com/artie-labs/credit-approval/lib/telemetry/metrics/base"
	"github.com/artie-labs/credit-approval/models/artifact"
)

const (
	rowsLoadedMetric        = "ingestion.rows.loaded"
	duplicatesRemovedMetric = "ingestion.duplicates.removed"
	rowsUnmatchedMetric     = "ingestion.rows.unmatched"
	rowsMergedMetric        = "ingestion.rows.merged"
	outputSizeMetric        = "ingestion.output.bytes"
	durationMetric          = "ingestion.duration"
)

// Ingestion loads the internal and external datasets, merges them on the merge key and writes the result to the interim path.
type Ingestion struct {
	cfg     config.Ingestion
	logger  *slog.Logger
	metrics base.Client
}

func New(cfg config.Ingestion, logger *slog.Logger, metricsClient base.Client) *Ingestion {
	logger.Info("Data ingestion component initialized")
	return &Ingestion{
		cfg:     cfg,
		logger:  logger,
		metrics: metricsClient,
	}
}

func (i *Ingestion) internalRequiredColumns() []string {
	return []string{i.cfg.MergeKey}
}

func (i *Ingestion) externalRequiredColumns() []string {
	return []string{i.cfg.MergeKey, i.cfg.TargetColumn}
}

func (i *Ingestion) fail(step Step, err error) *PipelineError {
	pipelineErr := &PipelineError{Step: step, Err: err}
	i.logger.Error("Error occurred in data ingestion", slog.String("step", string(step)), slog.Any("err", pipelineErr))
	return pipelineErr
}

// Run executes every step in order and stops at the first failure. No artifact is produced unless every step succeeds.
func (i *Ingestion) Run(_ context.Context) (_ artifact.DataIngestionArtifact, err error) {
	start := time.Now()
	step := StepLocate
	defer func() {
		if r := recover(); r != nil {
			err = i.fail(step, goerrors.Wrap(fmt.Errorf("panic: %v", r), 2))
		}

		status := "success"
		if err != nil {
			status = "failed"
		}

		i.metrics.Timing(durationMetric, time.Since(start), map[string]string{"status": status, "step": string(step)})
	}()

	i.logger.Info("Starting data ingestion")
	for _, path := range []string{i.cfg.InternalDataPath, i.cfg.ExternalDataPath} {
		if err := locateInput(path); err != nil {
			return artifact.DataIngestionArtifact{}, i.fail(step, err)
		}
	}
	i.logger.Info("All input files found")

	step = StepLoadInternal
	internal, err := i.load(i.cfg.InternalDataPath, i.cfg.InternalSheet, constants.InternalDatasetName)
	if err != nil {
		return artifact.DataIngestionArtifact{}, i.fail(step, err)
	}

	step = StepLoadExternal
	external, err := i.load(i.cfg.ExternalDataPath, i.cfg.ExternalSheet, constants.ExternalDatasetName)
	if err != nil {
		return artifact.DataIngestionArtifact{}, i.fail(step, err)
	}

	step = StepValidateInternal
	if err = validateRequiredColumns(internal, i.internalRequiredColumns(), constants.InternalDatasetName); err != nil {
		return artifact.DataIngestionArtifact{}, i.fail(step, err)
	}

	step = StepValidateExternal
	if err = validateRequiredColumns(external, i.externalRequiredColumns(), constants.ExternalDatasetName); err != nil {
		return artifact.DataIngestionArtifact{}, i.fail(step, err)
	}
	i.logger.Info("Schema validation passed")

	step = StepDedupInternal
	internal, err = i.dropDuplicates(internal, constants.InternalDatasetName)
	if err != nil {
		return artifact.DataIngestionArtifact{}, i.fail(step, err)
	}

	step = StepDedupExternal
	external, err = i.dropDuplicates(external, constants.ExternalDatasetName)
	if err != nil {
		return artifact.DataIngestionArtifact{}, i.fail(step, err)
	}

	step = StepMerge
	var merged *table.Table
	merged, err = i.merge(internal, external)
	if err != nil {
		return artifact.DataIngestionArtifact{}, i.fail(step, err)
	}

	step = StepValidateTarget
	if err = i.validateTarget(merged, internal, external); err != nil {
		return artifact.DataIngestionArtifact{}, i.fail(step, err)
	}

	step = StepPersist
	if err = i.persist(merged); err != nil {
		return artifact.DataIngestionArtifact{}, i.fail(step, err)
	}

	i.metrics.Count(rowsMergedMetric, int64(merged.NumRows()), nil)
	return artifact.DataIngestionArtifact{
		MergedDataPath: i.cfg.InterimDataPath,
		NumRecords:     merged.NumRows(),
	}, nil
}
