package csvwriter

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func readCSV(t *testing.T, path string, gzipped bool) [][]string {
	file, err := os.Open(path)
	assert.NoError(t, err)
	defer file.Close()

	if !gzipped {
		records, err := csv.NewReader(file).ReadAll()
		assert.NoError(t, err)
		return records
	}

	gzipReader, err := gzip.NewReader(file)
	assert.NoError(t, err)
	defer gzipReader.Close()

	records, err := csv.NewReader(gzipReader).ReadAll()
	assert.NoError(t, err)
	return records
}

func TestAtomicWriter(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "merged_credit_data.csv")
	writer, err := NewAtomicWriter(filePath)
	assert.NoError(t, err)

	rows := [][]string{
		{"PROSPECTID", "Approved_Flag"},
		{"P1", "P2"},
		{"", ""},                          // Test empty row
		{"hello,dusty", "newline\nvalue"}, // Test special characters
	}

	for _, row := range rows {
		assert.NoError(t, writer.Write(row))
	}

	// Nothing is visible until commit.
	_, err = os.Stat(filePath)
	assert.ErrorIs(t, err, os.ErrNotExist)

	assert.NoError(t, writer.Commit())
	assert.Equal(t, rows, readCSV(t, filePath, false))

	info, err := os.Stat(filePath)
	assert.NoError(t, err)
	assert.Equal(t, DefaultFileMode, info.Mode().Perm())

	// Temporary file is gone.
	_, err = os.Stat(writer.TempFileName())
	assert.ErrorIs(t, err, os.ErrNotExist)

	// Commit twice
	assert.ErrorContains(t, writer.Commit(), "already closed")
	// Abort after commit is a no-op and keeps the destination.
	assert.NoError(t, writer.Abort())
	assert.Equal(t, rows, readCSV(t, filePath, false))
}

func TestAtomicWriter_Overwrite(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "out.csv")
	assert.NoError(t, os.WriteFile(filePath, []byte("old,content\n1,2\n3,4\n"), 0o644))
	assert.NoError(t, os.Chmod(filePath, 0o640))

	writer, err := NewAtomicWriter(filePath)
	assert.NoError(t, err)
	assert.NoError(t, writer.Write([]string{"new"}))
	assert.NoError(t, writer.Commit())

	assert.Equal(t, [][]string{{"new"}}, readCSV(t, filePath, false))

	// The existing mode is kept.
	info, err := os.Stat(filePath)
	assert.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
}

func TestAtomicWriter_Abort(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "out.csv")
	assert.NoError(t, os.WriteFile(filePath, []byte("previous\n"), 0o644))

	writer, err := NewAtomicWriter(filePath)
	assert.NoError(t, err)
	assert.NoError(t, writer.Write([]string{"partial"}))
	assert.NoError(t, writer.Abort())

	// Previous file is intact and no temporary file is left behind.
	assert.Equal(t, [][]string{{"previous"}}, readCSV(t, filePath, false))
	entries, err := os.ReadDir(filepath.Dir(filePath))
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAtomicWriter_Gzip(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "large_test.csv.gz")
	writer, err := NewAtomicWriter(filePath)
	assert.NoError(t, err)

	largeRows := make([][]string, 1_000)
	for i := range largeRows {
		largeRows[i] = []string{fmt.Sprintf("value%d", i), fmt.Sprintf("value%d", i)}
	}

	for _, row := range largeRows {
		assert.NoError(t, writer.Write(row))
	}

	assert.NoError(t, writer.Commit())
	assert.Equal(t, largeRows, readCSV(t, filePath, true))
}

func TestNewAtomicWriter_MissingDirectory(t *testing.T) {
	_, err := NewAtomicWriter(filepath.Join(t.TempDir(), "does", "not", "exist.csv"))
	assert.ErrorContains(t, err, "failed to create temporary file")
}
