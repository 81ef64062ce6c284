package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/a3tai/pdf-stamp-checker/internal/stamp"
)

func TestNewRow(t *testing.T) {
	tables := stamp.DefaultTables()
	analyzer := stamp.NewAnalyzer(tables.Catalog)

	tests := []struct {
		name   string
		result stamp.DocumentResult
		want   Row
	}{
		{
			name: "signed drawing with matches",
			result: analyzer.AnalyzePages(
				"PRJ-ECX-IPER-02-07_assinado.pdf",
				[]string{"PRJ-ECX-IPER-02-07 Rodrigo 02 07 " + tables.Catalog.Describe("ECX")},
				[]string{"Rodrigo", "Missing"},
				stamp.DefaultOptions(),
			),
			want: Row{
				ProjectCode:        "ECX",
				ProjectDescription: tables.Catalog.Describe("ECX"),
				FoundKeywords:      "Rodrigo",
				FileName:           "PRJ-ECX-IPER-02-07_assinado.pdf",
				SheetNumber:        "02 07",
				NameFound:          Yes,
				SheetFound:         Yes,
				FileSigned:         Yes,
				ProjectFound:       Yes,
			},
		},
		{
			name: "nothing derived",
			result: analyzer.AnalyzePages(
				"scan.pdf", []string{""}, nil, stamp.DefaultOptions(),
			),
			want: Row{
				ProjectCode:        stamp.DescriptionUnidentified,
				ProjectDescription: stamp.DescriptionUnidentified,
				FoundKeywords:      NoKeywords,
				FileName:           "scan.pdf",
				SheetNumber:        stamp.DescriptionUnidentified,
				NameFound:          No,
				SheetFound:         No,
				FileSigned:         No,
				ProjectFound:       No,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewRow(tt.result))
		})
	}
}

func TestRowsKeepOrder(t *testing.T) {
	results := []stamp.DocumentResult{
		{FileName: "b.pdf"},
		{FileName: "a.pdf"},
	}

	rows := Rows(results)
	assert.Len(t, rows, 2)
	assert.Equal(t, "b.pdf", rows[0].FileName)
	assert.Equal(t, "a.pdf", rows[1].FileName)
	assert.Len(t, rows[0].Values(), len(Columns))
}

func TestColumnWidth(t *testing.T) {
	assert.InDelta(t, 14.4, ColumnWidth(10), 1e-9)
	assert.InDelta(t, 2.4, ColumnWidth(0), 1e-9)
	assert.Equal(t, float64(maxColumnWidth), ColumnWidth(1000))
}
