package ingestion

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/artie-labs/credit-approval/lib/csvwriter"
	"github.com/artie-labs/credit-approval/lib/table"
)

// writeTable writes [tbl] with a header row and no index column. [path] is only replaced once every row is written.
func writeTable(tbl *table.Table, path string) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	writer, err := csvwriter.NewAtomicWriter(path)
	if err != nil {
		return 0, err
	}

	if err = writer.Write(tbl.Columns()); err != nil {
		_ = writer.Abort()
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	for _, row := range tbl.Rows() {
		if err = writer.Write(row); err != nil {
			_ = writer.Abort()
			return 0, fmt.Errorf("failed to write row: %w", err)
		}
	}

	if err = writer.Commit(); err != nil {
		return 0, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat output file: %w", err)
	}

	return info.Size(), nil
}

func (i *Ingestion) persist(tbl *table.Table) error {
	path := i.cfg.InterimDataPath
	i.logger.Info("Saving merged data", slog.String("path", path))
	size, err := writeTable(tbl, path)
	if err != nil {
		return raise(PersistenceError{Path: path, Err: err})
	}

	i.logger.Info("Merged data saved",
		slog.String("path", path),
		slog.Int("records", tbl.NumRows()),
		slog.String("size", fmt.Sprintf("%.2f KB", float64(size)/1024)),
	)
	i.metrics.Gauge(outputSizeMetric, float64(size), nil)
	return nil
}
