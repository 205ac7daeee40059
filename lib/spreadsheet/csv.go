package spreadsheet

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

func readCSV(path string, gzipped bool) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	defer file.Close()

	var r io.Reader = file
	if gzipped {
		gzipReader, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}

		defer gzipReader.Close()
		r = gzipReader
	}

	reader := csv.NewReader(r)
	// Row width is checked against the header when the table is built.
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}

	return records, nil
}
