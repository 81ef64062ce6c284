// Package report turns batch results into the tabular report and its
// spreadsheet encoding.
package report

import (
	"strings"

	"github.com/a3tai/pdf-stamp-checker/internal/stamp"
)

// Cell values used in the report
const (
	Yes        = "Yes"
	No         = "No"
	NoKeywords = "None"
)

// Columns is the header row, in order.
var Columns = []string{
	"Project Code",
	"Project Description",
	"Found Keywords",
	"File Name",
	"Sheet Number",
	"Name Found",
	"Sheet Found",
	"File Signed",
	"Project Found",
}

// firstFlagColumn is the zero-based index of the first Yes/No column.
const firstFlagColumn = 5

// Row is one report line.
type Row struct {
	ProjectCode        string `json:"project_code"`
	ProjectDescription string `json:"project_description"`
	FoundKeywords      string `json:"found_keywords"`
	FileName           string `json:"file_name"`
	SheetNumber        string `json:"sheet_number"`
	NameFound          string `json:"name_found"`
	SheetFound         string `json:"sheet_found"`
	FileSigned         string `json:"file_signed"`
	ProjectFound       string `json:"project_found"`
}

// Values returns the cells of r in Columns order.
func (r Row) Values() []string {
	return []string{
		r.ProjectCode,
		r.ProjectDescription,
		r.FoundKeywords,
		r.FileName,
		r.SheetNumber,
		r.NameFound,
		r.SheetFound,
		r.FileSigned,
		r.ProjectFound,
	}
}

// NewRow renders one document result.
func NewRow(result stamp.DocumentResult) Row {
	meta := result.Metadata
	matches := result.Matches

	keywords := NoKeywords
	if len(matches.Keywords) > 0 {
		keywords = strings.Join(matches.Keywords, ", ")
	}

	return Row{
		ProjectCode:        orUnidentified(meta.ProjectCode),
		ProjectDescription: meta.ProjectDescription,
		FoundKeywords:      keywords,
		FileName:           result.FileName,
		SheetNumber:        orUnidentified(meta.SheetNumber),
		NameFound:          YesNo(matches.FilenameFound),
		SheetFound:         YesNo(matches.SheetFound),
		FileSigned:         YesNo(meta.Signed),
		ProjectFound:       YesNo(matches.ProjectFound),
	}
}

// Rows renders results in order.
func Rows(results []stamp.DocumentResult) []Row {
	rows := make([]Row, 0, len(results))
	for _, r := range results {
		rows = append(rows, NewRow(r))
	}
	return rows
}

// YesNo renders a flag cell.
func YesNo(b bool) string {
	if b {
		return Yes
	}
	return No
}

func orUnidentified(s string) string {
	if s == "" {
		return stamp.DescriptionUnidentified
	}
	return s
}
