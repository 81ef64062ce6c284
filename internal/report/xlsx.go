package report

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/a3tai/pdf-stamp-checker/internal/stamp"
)

// Sheet names and download metadata
const (
	ResultsSheet = "PDF Results"
	SummarySheet = "Summary"

	FileName    = "analysis_results.xlsx"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Fill colors of the Yes/No cells
const (
	yesColor = "00FF00"
	noColor  = "FF2C2B"
)

const maxColumnWidth = 255

// WriteXLSX encodes the results table and the batch summary as a workbook.
func WriteXLSX(w io.Writer, rows []Row, summary stamp.BatchSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ResultsSheet); err != nil {
		return fmt.Errorf("failed to name results sheet: %w", err)
	}

	if err := writeResults(f, rows); err != nil {
		return err
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeSummary(f, summary); err != nil {
		return err
	}

	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeResults(f *excelize.File, rows []Row) error {
	styles, err := newStyles(f)
	if err != nil {
		return err
	}

	widths := make([]int, len(Columns))

	header := make([]any, len(Columns))
	for i, name := range Columns {
		header[i] = name
		widths[i] = utf8.RuneCountInString(name)
	}
	if err := f.SetSheetRow(ResultsSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(Columns), 1)
	if err := f.SetCellStyle(ResultsSheet, "A1", last, styles.bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for r, row := range rows {
		rowNum := r + 2
		values := row.Values()

		cells := make([]any, len(values))
		for i, v := range values {
			cells[i] = v
			if n := utf8.RuneCountInString(v); n > widths[i] {
				widths[i] = n
			}
		}

		start, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetSheetRow(ResultsSheet, start, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", rowNum, err)
		}

		for col := firstFlagColumn; col < len(values); col++ {
			style, ok := styles.flag(values[col])
			if !ok {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
			if err := f.SetCellStyle(ResultsSheet, cell, cell, style); err != nil {
				return fmt.Errorf("failed to style %s: %w", cell, err)
			}
		}
	}

	for i, n := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(ResultsSheet, col, col, ColumnWidth(n)); err != nil {
			return fmt.Errorf("failed to size column %s: %w", col, err)
		}
	}

	return nil
}

func writeSummary(f *excelize.File, s stamp.BatchSummary) error {
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	lines := [][]any{
		{"Metric", "Files"},
		{"Total files", s.Total},
		{"Name found", s.FilenameFound},
		{"Sheet found", s.SheetFound},
		{"Signed", s.Signed},
		{"Project found", s.ProjectFound},
		{},
		{"Engineer", "Files"},
	}
	boldRows := []int{1, 8}

	for _, c := range s.Engineers {
		lines = append(lines, []any{c.Key, c.Count})
	}
	lines = append(lines, []any{}, []any{"Project", "Files"})
	boldRows = append(boldRows, len(lines))
	for _, c := range s.Projects {
		lines = append(lines, []any{c.Key, c.Count})
	}

	for i, line := range lines {
		if len(line) == 0 {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SummarySheet, cell, &line); err != nil {
			return fmt.Errorf("failed to write summary row %d: %w", i+1, err)
		}
	}

	for _, r := range boldRows {
		a, _ := excelize.CoordinatesToCellName(1, r)
		b, _ := excelize.CoordinatesToCellName(2, r)
		if err := f.SetCellStyle(SummarySheet, a, b, bold); err != nil {
			return fmt.Errorf("failed to style summary: %w", err)
		}
	}

	return f.SetColWidth(SummarySheet, "A", "A", 60)
}

// ColumnWidth converts the longest cell length of a column to its width.
func ColumnWidth(maxLen int) float64 {
	w := float64(maxLen+2) * 1.2
	if w > maxColumnWidth {
		return maxColumnWidth
	}
	return w
}

type styleSet struct {
	bold int
	yes  int
	no   int
}

func (s styleSet) flag(value string) (int, bool) {
	switch value {
	case Yes:
		return s.yes, true
	case No:
		return s.no, true
	}
	return 0, false
}

func newStyles(f *excelize.File) (styleSet, error) {
	var s styleSet
	var err error

	if s.bold, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return s, fmt.Errorf("failed to create style: %w", err)
	}
	if s.yes, err = f.NewStyle(solidFill(yesColor)); err != nil {
		return s, fmt.Errorf("failed to create style: %w", err)
	}
	if s.no, err = f.NewStyle(solidFill(noColor)); err != nil {
		return s, fmt.Errorf("failed to create style: %w", err)
	}
	return s, nil
}

func solidFill(color string) *excelize.Style {
	return &excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
	}
}
