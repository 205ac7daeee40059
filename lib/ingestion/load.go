package ingestion

import (
	"log/slog"
	"time"

	"github.com/artie-labs/credit-approval/lib"
	"github.com/artie-labs/credit-approval/lib/spreadsheet"
	"github.com/artie-labs/credit-approval/lib/table"
)

const heartbeatDelay = 15 * time.Second

func (i *Ingestion) load(path, sheet, dataset string) (*table.Table, error) {
	i.logger.Info("Reading data", slog.String("dataset", dataset), slog.String("path", path))
	// Large workbooks can take a while to parse.
	stopHeartbeats := lib.NewHeartbeats(i.logger, heartbeatDelay, heartbeatDelay, "load", slog.String("dataset", dataset)).Start()
	tbl, err := spreadsheet.Load(path, spreadsheet.Options{Sheet: sheet})
	stopHeartbeats()
	if err != nil {
		return nil, raise(DataLoadError{Path: path, Err: err})
	}

	rows, columns := tbl.Shape()
	i.logger.Info("Data loaded",
		slog.String("dataset", dataset),
		slog.Int("rows", rows),
		slog.Int("columns", columns),
	)
	i.metrics.Count(rowsLoadedMetric, int64(rows), map[string]string{"dataset": dataset})
	return tbl, nil
}
