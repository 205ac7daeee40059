package ingestion

import (
	"log/slog"

	"github.com/artie-labs/credit-approval/lib/config/constants"
	"github.com/artie-labs/credit-approval/lib/table"
)

func (i *Ingestion) joinOptions() table.JoinOptions {
	if i.cfg.JoinSuffixes == nil {
		return table.JoinOptions{}
	}

	return table.JoinOptions{
		LeftSuffix:  i.cfg.JoinSuffixes.Internal,
		RightSuffix: i.cfg.JoinSuffixes.External,
	}
}

func (i *Ingestion) merge(internal, external *table.Table) (*table.Table, error) {
	i.logger.Info("Merging internal and external datasets", slog.String("key", i.cfg.MergeKey))
	merged, stats, err := table.InnerJoin(internal, external, i.cfg.MergeKey, i.joinOptions())
	if err != nil {
		return nil, raise(err)
	}

	// Rows without a counterpart are dropped by the inner join, make that visible.
	if stats.LeftUnmatched > 0 || stats.RightUnmatched > 0 {
		i.logger.Warn("Rows dropped by inner join",
			slog.Int("internalUnmatched", stats.LeftUnmatched),
			slog.Int("externalUnmatched", stats.RightUnmatched),
		)
	}

	i.metrics.Count(rowsUnmatchedMetric, int64(stats.LeftUnmatched), map[string]string{"dataset": constants.InternalDatasetName})
	i.metrics.Count(rowsUnmatchedMetric, int64(stats.RightUnmatched), map[string]string{"dataset": constants.ExternalDatasetName})
	return merged, nil
}

func (i *Ingestion) validateTarget(merged, internal, external *table.Table) error {
	if !merged.HasColumn(i.cfg.TargetColumn) {
		return raise(TargetColumnMissingError{Column: i.cfg.TargetColumn})
	}

	rows, columns := merged.Shape()
	i.logger.Info("Merge completed",
		slog.Int("internalRecords", internal.NumRows()),
		slog.Int("externalRecords", external.NumRows()),
		slog.Int("mergedRecords", rows),
		slog.Int("totalColumns", columns),
	)
	return nil
}
