package spreadsheet

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/artie-labs/credit-approval/lib/table"
)

var ErrUnsupportedFormat = errors.New("unsupported file format")

type Format string

const (
	Excel   Format = "excel"
	CSV     Format = "csv"
	GzipCSV Format = "csv.gz"
)

type Options struct {
	// Sheet - optional, name of the worksheet to read. Defaults to the first sheet. Ignored for CSV.
	Sheet string
	// KeepBlankRows - keep rows where every value is empty instead of skipping them.
	KeepBlankRows bool
}

// DetectFormat returns the format based on the file extension.
func DetectFormat(path string) (Format, error) {
	if strings.HasSuffix(strings.ToLower(path), ".csv.gz") {
		return GzipCSV, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return Excel, nil
	case ".csv":
		return CSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads the file at [path] into a table. The first row is the header.
func Load(path string, opts Options) (*table.Table, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	var records [][]string
	switch format {
	case Excel:
		records, err = readExcel(path, opts.Sheet)
	case CSV:
		records, err = readCSV(path, false)
	case GzipCSV:
		records, err = readCSV(path, true)
	}

	if err != nil {
		return nil, err
	}

	return toTable(records, opts.KeepBlankRows)
}

func toTable(records [][]string, keepBlankRows bool) (*table.Table, error) {
	if len(records) == 0 {
		return table.Empty(), nil
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var rows [][]string
	for _, record := range records[1:] {
		if !keepBlankRows && isBlank(record) {
			continue
		}

		rows = append(rows, record)
	}

	tbl, err := table.New(header, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to build table: %w", err)
	}

	return tbl, nil
}

func isBlank(record []string) bool {
	for _, value := range record {
		if value != "" {
			return false
		}
	}

	return true
}
