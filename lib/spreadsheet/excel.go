package spreadsheet

import (
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
	timeLayout     = "15:04:05"
)

type cellKind int

const (
	plainCell cellKind = iota
	dateCell
	timeCell
)

// Quoted literals, escaped characters and bracketed sections such as colours or locales.
var numFmtNoise = regexp.MustCompile(`"[^"]*"|\\.|\[[^\]]*\]`)

// builtInDateFormats are the number format IDs Excel reserves for dates and times.
var builtInDateFormats = map[int]cellKind{
	14: dateCell, 15: dateCell, 16: dateCell, 17: dateCell, 22: dateCell,
	18: timeCell, 19: timeCell, 20: timeCell, 21: timeCell, 45: timeCell, 46: timeCell, 47: timeCell,
}

func classifyNumFmt(style *excelize.Style) cellKind {
	if style == nil {
		return plainCell
	}

	if style.CustomNumFmt != nil {
		code := strings.ToLower(numFmtNoise.ReplaceAllString(*style.CustomNumFmt, ""))
		switch {
		case strings.ContainsAny(code, "yd"):
			return dateCell
		case strings.ContainsAny(code, "hs"):
			return timeCell
		default:
			return plainCell
		}
	}

	return builtInDateFormats[style.NumFmt]
}

func formatExcelTime(value time.Time, kind cellKind) string {
	value = value.Round(time.Millisecond)
	layout := dateTimeLayout
	switch {
	case kind == timeCell:
		layout = timeLayout
	case value.Hour() == 0 && value.Minute() == 0 && value.Second() == 0 && value.Nanosecond() == 0:
		return value.Format(dateLayout)
	}

	if value.Nanosecond() != 0 {
		layout += ".000"
	}

	return value.Format(layout)
}

// formatDates rewrites the serial numbers of date formatted cells as ISO 8601 text. Other cells keep their raw value.
func formatDates(file *excelize.File, sheet string, rows [][]string) error {
	var date1904 bool
	if props, err := file.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	kinds := make(map[int]cellKind)
	for r, row := range rows {
		for c, value := range row {
			if value == "" {
				continue
			}

			serial, err := strconv.ParseFloat(value, 64)
			if err != nil {
				continue
			}

			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}

			styleID, err := file.GetCellStyle(sheet, cell)
			if err != nil {
				return fmt.Errorf("failed to read style of cell %s: %w", cell, err)
			}

			kind, ok := kinds[styleID]
			if !ok {
				style, err := file.GetStyle(styleID)
				if err != nil {
					return fmt.Errorf("failed to read style %d: %w", styleID, err)
				}

				kind = classifyNumFmt(style)
				kinds[styleID] = kind
			}

			if kind == plainCell {
				continue
			}

			parsed, err := excelize.ExcelDateToTime(serial, date1904)
			if err != nil {
				continue
			}

			rows[r][c] = formatExcelTime(parsed, kind)
		}
	}

	return nil
}

func readExcel(path, sheet string) ([][]string, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			slog.Warn("Failed to close workbook", slog.Any("err", closeErr), slog.String("path", path))
		}
	}()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	if sheet == "" {
		sheet = sheets[0]
	} else if !slices.Contains(sheets, sheet) {
		return nil, fmt.Errorf("sheet %q does not exist, available sheets: %v", sheet, sheets)
	}

	// Raw values so that number formats applied in the workbook do not round the data.
	rows, err := file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	if err = formatDates(file, sheet, rows); err != nil {
		return nil, fmt.Errorf("failed to read dates in sheet %q: %w", sheet, err)
	}

	return rows, nil
}

// WriteExcel writes [records] into the first sheet of a new workbook at [path].
func WriteExcel(path string, records [][]string) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to build cell name: %w", err)
		}

		values := make([]any, len(record))
		for j, value := range record {
			values[j] = value
		}

		if err = file.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}
