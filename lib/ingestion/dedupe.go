package ingestion

import (
	"log/slog"

	"github.com/artie-labs/credit-approval/lib/table"
)

func (i *Ingestion) dropDuplicates(tbl *table.Table, dataset string) (*table.Table, error) {
	deduped, removed, err := tbl.DropDuplicates(i.cfg.MergeKey)
	if err != nil {
		return nil, raise(err)
	}

	if removed > 0 {
		i.logger.Warn("Removed duplicate keys",
			slog.String("dataset", dataset),
			slog.String("key", i.cfg.MergeKey),
			slog.Int("removed", removed),
		)
	}

	i.metrics.Count(duplicatesRemovedMetric, int64(removed), map[string]string{"dataset": dataset})
	return deduped, nil
}
