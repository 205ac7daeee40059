package spreadsheet

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"

	"github.com/artie-labs/credit-approval/lib/csvwriter"
)

func TestDetectFormat(t *testing.T) {
	testCases := []struct {
		path           string
		expectedFormat Format
		expectedErr    string
	}{
		{path: "data/raw/internal/internal_bank_data.xlsx", expectedFormat: Excel},
		{path: "data.XLSX", expectedFormat: Excel},
		{path: "macro.xlsm", expectedFormat: Excel},
		{path: "merged.csv", expectedFormat: CSV},
		{path: "merged.CSV.gz", expectedFormat: GzipCSV},
		{path: "archive.gz", expectedErr: `unsupported file format: ".gz"`},
		{path: "legacy.xls", expectedErr: `unsupported file format: ".xls"`},
		{path: "noext", expectedErr: `unsupported file format: ""`},
	}

	for _, tc := range testCases {
		format, err := DetectFormat(tc.path)
		if tc.expectedErr != "" {
			assert.ErrorContains(t, err, tc.expectedErr, tc.path)
			assert.True(t, errors.Is(err, ErrUnsupportedFormat), tc.path)
		} else {
			assert.NoError(t, err, tc.path)
			assert.Equal(t, tc.expectedFormat, format, tc.path)
		}
	}
}

func TestLoad_Excel(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "internal.xlsx")
	assert.NoError(t, WriteExcel(fp, [][]string{
		{"PROSPECTID", "Age", "NETMONTHLYINCOME"},
		{"P1", "31", "45000.75"},
		{"P2", "", "12000"},
		{},
		{"P3", "52"},
	}))

	tbl, err := Load(fp, Options{})
	assert.NoError(t, err)
	assert.Equal(t, []string{"PROSPECTID", "Age", "NETMONTHLYINCOME"}, tbl.Columns())
	assert.Equal(t, [][]string{
		{"P1", "31", "45000.75"},
		{"P2", "", "12000"},
		{"P3", "52", ""},
	}, tbl.Rows())
}

func TestLoad_ExcelDates(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "dates.xlsx")
	file := excelize.NewFile()
	sheet := file.GetSheetName(0)
	assert.NoError(t, file.SetSheetRow(sheet, "A1", &[]any{"PROSPECTID", "Opened", "Updated", "Income", "Closed", "Called"}))
	assert.NoError(t, file.SetSheetRow(sheet, "A2", &[]any{
		"P1",
		time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 1, 15, 13, 30, 0, 0, time.UTC),
		45000.755,
		44941,
		0.5,
	}))

	moneyStyle, err := file.NewStyle(&excelize.Style{NumFmt: 2})
	assert.NoError(t, err)
	assert.NoError(t, file.SetCellStyle(sheet, "D2", "D2", moneyStyle))

	customDate := "yyyy/mm/dd"
	dateStyle, err := file.NewStyle(&excelize.Style{CustomNumFmt: &customDate})
	assert.NoError(t, err)
	assert.NoError(t, file.SetCellStyle(sheet, "E2", "E2", dateStyle))

	timeStyle, err := file.NewStyle(&excelize.Style{NumFmt: 20})
	assert.NoError(t, err)
	assert.NoError(t, file.SetCellStyle(sheet, "F2", "F2", timeStyle))

	assert.NoError(t, file.SaveAs(fp))
	assert.NoError(t, file.Close())

	tbl, err := Load(fp, Options{})
	assert.NoError(t, err)
	assert.Equal(t, [][]string{{"P1", "2023-01-15", "2023-01-15 13:30:00", "45000.755", "2023-01-15", "12:00:00"}}, tbl.Rows())
}

func TestClassifyNumFmt(t *testing.T) {
	code := func(value string) *excelize.Style {
		return &excelize.Style{CustomNumFmt: &value}
	}

	assert.Equal(t, plainCell, classifyNumFmt(nil))
	assert.Equal(t, plainCell, classifyNumFmt(&excelize.Style{}))
	assert.Equal(t, plainCell, classifyNumFmt(&excelize.Style{NumFmt: 4}))
	assert.Equal(t, dateCell, classifyNumFmt(&excelize.Style{NumFmt: 14}))
	assert.Equal(t, timeCell, classifyNumFmt(&excelize.Style{NumFmt: 21}))
	assert.Equal(t, dateCell, classifyNumFmt(code("dd-mmm-yyyy")))
	assert.Equal(t, dateCell, classifyNumFmt(code("[$-409]m/d/yy h:mm AM/PM")))
	assert.Equal(t, timeCell, classifyNumFmt(code("[h]:mm:ss")))
	assert.Equal(t, plainCell, classifyNumFmt(code("#,##0.00 \"days\"")))
	assert.Equal(t, plainCell, classifyNumFmt(code("[Red]0.00")))
}

func TestFormatExcelTime(t *testing.T) {
	assert.Equal(t, "2023-01-15", formatExcelTime(time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), dateCell))
	assert.Equal(t, "2023-01-15 08:05:09", formatExcelTime(time.Date(2023, 1, 15, 8, 5, 9, 0, time.UTC), dateCell))
	assert.Equal(t, "2023-01-15 08:05:09.250", formatExcelTime(time.Date(2023, 1, 15, 8, 5, 9, 250_000_000, time.UTC), dateCell))
	assert.Equal(t, "00:00:00", formatExcelTime(time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC), timeCell))
	assert.Equal(t, "18:00:00", formatExcelTime(time.Date(1899, 12, 30, 17, 59, 59, 999_900_000, time.UTC), timeCell))
}

func TestLoad_ExcelSheet(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "workbook.xlsx")
	file := excelize.NewFile()
	_, err := file.NewSheet("bureau")
	assert.NoError(t, err)
	assert.NoError(t, file.SetSheetRow("bureau", "A1", &[]any{"PROSPECTID", "Approved_Flag"}))
	assert.NoError(t, file.SetSheetRow("bureau", "A2", &[]any{"P1", "P2"}))
	assert.NoError(t, file.SaveAs(fp))
	assert.NoError(t, file.Close())

	{
		// First sheet is empty
		tbl, err := Load(fp, Options{})
		assert.NoError(t, err)
		assert.Equal(t, 0, tbl.NumColumns())
		assert.Equal(t, 0, tbl.NumRows())
	}
	{
		tbl, err := Load(fp, Options{Sheet: "bureau"})
		assert.NoError(t, err)
		assert.Equal(t, []string{"PROSPECTID", "Approved_Flag"}, tbl.Columns())
		assert.Equal(t, 1, tbl.NumRows())
	}
	{
		_, err := Load(fp, Options{Sheet: "missing"})
		assert.ErrorContains(t, err, `sheet "missing" does not exist`)
	}
}

func TestLoad_CSV(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "merged.csv")
	assert.NoError(t, os.WriteFile(fp, []byte("\ufeffPROSPECTID,Approved_Flag\nP1,P2\n\nP2,\"P1\"\n"), 0o644))

	tbl, err := Load(fp, Options{})
	assert.NoError(t, err)
	assert.Equal(t, []string{"PROSPECTID", "Approved_Flag"}, tbl.Columns())
	assert.Equal(t, [][]string{{"P1", "P2"}, {"P2", "P1"}}, tbl.Rows())
}

func TestLoad_KeepBlankRows(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "merged.csv")
	assert.NoError(t, os.WriteFile(fp, []byte("PROSPECTID,Approved_Flag\nP1,P2\n,\n"), 0o644))
	{
		tbl, err := Load(fp, Options{})
		assert.NoError(t, err)
		assert.Equal(t, [][]string{{"P1", "P2"}}, tbl.Rows())
	}
	{
		tbl, err := Load(fp, Options{KeepBlankRows: true})
		assert.NoError(t, err)
		assert.Equal(t, [][]string{{"P1", "P2"}, {"", ""}}, tbl.Rows())
	}
}

func TestLoad_GzipCSV(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "merged.csv.gz")
	writer, err := csvwriter.NewAtomicWriter(fp)
	assert.NoError(t, err)
	assert.NoError(t, writer.Write([]string{"PROSPECTID", "Approved_Flag"}))
	assert.NoError(t, writer.Write([]string{"P1", "P2"}))
	assert.NoError(t, writer.Commit())

	tbl, err := Load(fp, Options{})
	assert.NoError(t, err)
	assert.Equal(t, []string{"PROSPECTID", "Approved_Flag"}, tbl.Columns())
	assert.Equal(t, [][]string{{"P1", "P2"}}, tbl.Rows())
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	{
		// Not a workbook
		fp := filepath.Join(dir, "corrupt.xlsx")
		assert.NoError(t, os.WriteFile(fp, []byte("definitely not a zip archive"), 0o644))
		_, err := Load(fp, Options{})
		assert.ErrorContains(t, err, "failed to open workbook")
	}
	{
		// Unsupported format
		fp := filepath.Join(dir, "data.json")
		assert.NoError(t, os.WriteFile(fp, []byte("{}"), 0o644))
		_, err := Load(fp, Options{})
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	}
	{
		// Duplicate header
		fp := filepath.Join(dir, "dupe.csv")
		assert.NoError(t, os.WriteFile(fp, []byte("a,a\n1,2\n"), 0o644))
		_, err := Load(fp, Options{})
		assert.ErrorContains(t, err, `failed to build table: duplicate column "a"`)
	}
	{
		// Does not exist
		_, err := Load(filepath.Join(dir, "missing.csv"), Options{})
		assert.ErrorContains(t, err, "no such file or directory")
	}
}
