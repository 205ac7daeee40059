package parquetutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/artie-labs/credit-approval/lib/table"
)

// DefaultBatchSize is the number of rows buffered per arrow record.
const DefaultBatchSize = 1000

// BuildArrowSchema maps every column of [tbl] to a nullable string field.
// Spreadsheet cells carry no reliable types, casting is left to the transformation stage.
func BuildArrowSchema(tbl *table.Table) *arrow.Schema {
	fields := make([]arrow.Field, 0, tbl.NumColumns())
	for _, column := range tbl.Columns() {
		fields = append(fields, arrow.Field{Name: column, Type: arrow.BinaryTypes.String, Nullable: true})
	}

	return arrow.NewSchema(fields, nil)
}

// WriteTable writes [tbl] to [path] as a gzip compressed parquet file. Empty cells are written as nulls.
func WriteTable(tbl *table.Table, path string, batchSize int) error {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer file.Close()

	schema := BuildArrowSchema(tbl)
	writer, err := pqarrow.NewFileWriter(schema, file, parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Gzip)), pqarrow.DefaultWriterProps())
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}

	if err = writeBatches(writer, schema, tbl.Rows(), batchSize); err != nil {
		_ = writer.Close()
		return err
	}

	if err = writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}

	return nil
}

func writeBatches(writer *pqarrow.FileWriter, schema *arrow.Schema, rows [][]string, batchSize int) error {
	pool := memory.NewGoAllocator()
	for start := 0; start < len(rows); start += batchSize {
		batch := rows[start:min(start+batchSize, len(rows))]
		if err := writeBatch(writer, schema, pool, batch); err != nil {
			return fmt.Errorf("failed to write rows %d-%d: %w", start, start+len(batch), err)
		}
	}

	return nil
}

func writeBatch(writer *pqarrow.FileWriter, schema *arrow.Schema, pool memory.Allocator, rows [][]string) error {
	builders := make([]*array.StringBuilder, schema.NumFields())
	for i := range builders {
		builders[i] = array.NewStringBuilder(pool)
		defer builders[i].Release()
	}

	for _, row := range rows {
		for i, value := range row {
			if value == "" {
				builders[i].AppendNull()
			} else {
				builders[i].Append(value)
			}
		}
	}

	arrays := make([]arrow.Array, len(builders))
	for i, builder := range builders {
		arrays[i] = builder.NewArray()
		defer arrays[i].Release()
	}

	record := array.NewRecord(schema, arrays, int64(len(rows)))
	defer record.Release()

	return writer.Write(record)
}
