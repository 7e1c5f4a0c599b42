package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/inference-sim/funnelsim/table"
)

// Output file names.
const (
	ReportFile   = "comparative_summary.md"
	WorkbookFile = "comparative_summary.xlsx"
)

// CSVFileName returns the export name for a configuration: the base name
// without its extension, prefixed with "results_".
func CSVFileName(configuration string) string {
	base := filepath.Base(configuration)
	return "results_" + strings.TrimSuffix(base, filepath.Ext(base)) + ".csv"
}

// WriteCSV writes t with a header row and no index column. Missing cells are
// left empty.
func WriteCSV(w io.Writer, t *table.Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Columns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for j, c := range row {
			if c.IsMissing() {
				record[j] = ""
			} else {
				record[j] = c.String()
			}
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// ExportCSV atomically writes t to path as CSV.
func ExportCSV(path string, t *table.Table) error {
	return WriteFileAtomic(path, func(w io.Writer) error {
		return WriteCSV(w, t)
	})
}

// comparisonSheet is the workbook sheet holding the comparison table.
const comparisonSheet = "Comparison"

// WriteWorkbook writes an XLSX workbook: the comparison table on the first
// sheet, then one sheet per run with its detail table.
func WriteWorkbook(w io.Writer, comparison *table.Table, runs []Run) error {
	wb := excelize.NewFile()
	defer func() { _ = wb.Close() }()

	if err := wb.SetSheetName(wb.GetSheetName(0), comparisonSheet); err != nil {
		return fmt.Errorf("naming comparison sheet: %w", err)
	}
	if err := writeSheet(wb, comparisonSheet, comparison); err != nil {
		return err
	}

	used := map[string]bool{strings.ToLower(comparisonSheet): true}
	for _, run := range runs {
		name := sheetName(run.Configuration, used)
		if _, err := wb.NewSheet(name); err != nil {
			return fmt.Errorf("adding sheet for %s: %w", run.Configuration, err)
		}
		if err := writeSheet(wb, name, run.Result.Details); err != nil {
			return err
		}
	}

	if err := wb.Write(w); err != nil {
		return fmt.Errorf("encoding workbook: %w", err)
	}
	return nil
}

// ExportWorkbook atomically writes the workbook to path.
func ExportWorkbook(path string, comparison *table.Table, runs []Run) error {
	return WriteFileAtomic(path, func(w io.Writer) error {
		return WriteWorkbook(w, comparison, runs)
	})
}

func writeSheet(wb *excelize.File, sheet string, t *table.Table) error {
	header := make([]interface{}, len(t.Columns))
	for j, c := range t.Columns {
		header[j] = c
	}
	if err := wb.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header of sheet %s: %w", sheet, err)
	}
	for i, row := range t.Rows {
		values := make([]interface{}, len(row))
		for j, c := range row {
			values[j] = sheetValue(c)
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := wb.SetSheetRow(sheet, axis, &values); err != nil {
			return fmt.Errorf("writing row %d of sheet %s: %w", i+1, sheet, err)
		}
	}
	return nil
}

// sheetValue maps a cell to what excelize stores. Spreadsheets have no NaN
// or infinity, so those are written as their text form.
func sheetValue(c table.Cell) interface{} {
	switch c.Kind {
	case table.KindNumber:
		if math.IsNaN(c.Num) || math.IsInf(c.Num, 0) {
			return c.String()
		}
		return c.Num
	case table.KindText:
		return c.Text
	default:
		return nil
	}
}

// maxSheetName is Excel's limit on sheet name length.
const maxSheetName = 31

// sheetName derives a valid, unique sheet name from a configuration name.
func sheetName(configuration string, used map[string]bool) string {
	base := strings.TrimSuffix(configuration, filepath.Ext(configuration))
	base = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '_'
		}
		return r
	}, base)
	base = strings.Trim(base, "'")
	if base == "" {
		base = "config"
	}
	base = truncateRunes(base, maxSheetName)

	name := base
	for n := 2; used[strings.ToLower(name)]; n++ {
		suffix := fmt.Sprintf("~%d", n)
		name = truncateRunes(base, maxSheetName-len(suffix)) + suffix
	}
	used[strings.ToLower(name)] = true
	return name
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
