package stamp

import (
	"path"
	"regexp"
	"strings"
)

const (
	// SignedMarker flags a digitally signed drawing when present in its file name.
	SignedMarker = "assinado"

	signedSuffix = "_" + SignedMarker
)

// Tried in order; the first match wins.
var sheetPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[_\-](\d{2})[_\-](\d{2})$`),
	regexp.MustCompile(`[_\-](\d{2})[_\-](\d{3})$`),
	regexp.MustCompile(`[_\-](\d{3})[_\-](\d{3})$`),
}

var projectCodePattern = regexp.MustCompile(`PRJ-([A-Z]+)-`)

// FileMetadata is everything derived from a file name before reading it.
type FileMetadata struct {
	BaseName           string `json:"base_name"`
	MatchName          string `json:"match_name"`
	Signed             bool   `json:"signed"`
	SheetNumber        string `json:"sheet_number,omitempty"`
	ProjectCode        string `json:"project_code,omitempty"`
	ProjectDescription string `json:"project_description"`
}

// HasSheet reports whether a sheet identifier was derived.
func (m FileMetadata) HasSheet() bool {
	return m.SheetNumber != ""
}

// HasProject reports whether a project code was derived.
func (m FileMetadata) HasProject() bool {
	return m.ProjectCode != ""
}

// ProjectResolvable reports whether the code maps to a catalog description.
func (m FileMetadata) ProjectResolvable() bool {
	return m.HasProject() &&
		m.ProjectDescription != DescriptionUnknown &&
		m.ProjectDescription != DescriptionUnidentified
}

// ParseFileName derives the metadata of fileName against catalog.
func ParseFileName(fileName string, catalog *Catalog) FileMetadata {
	base := StripExtension(fileName)
	sheet, _ := ExtractSheetNumber(base)
	code, _ := ExtractProjectCode(fileName)

	return FileMetadata{
		BaseName:           base,
		MatchName:          StripSignedSuffix(base),
		Signed:             IsSignedByName(fileName),
		SheetNumber:        sheet,
		ProjectCode:        code,
		ProjectDescription: catalog.Describe(code),
	}
}

// StripExtension removes the trailing ".ext" segment, if any.
func StripExtension(name string) string {
	return strings.TrimSuffix(name, path.Ext(name))
}

// StripSignedSuffix removes a trailing "_assinado", ignoring case.
func StripSignedSuffix(base string) string {
	n := len(base) - len(signedSuffix)
	if n >= 0 && strings.EqualFold(base[n:], signedSuffix) {
		return base[:n]
	}
	return base
}

// ExtractSheetNumber returns the sheet identifier at the end of name as
// "NN NN", "NN NNN" or "NNN NNN". The extension is stripped here even when
// the caller already did, so a dot inside the base name ("R1.0-02-07")
// drops everything after it and leaves no sheet.
func ExtractSheetNumber(name string) (string, bool) {
	name = StripSignedSuffix(StripExtension(name))

	for _, re := range sheetPatterns {
		if m := re.FindStringSubmatch(name); m != nil {
			return m[1] + " " + m[2], true
		}
	}
	return "", false
}

// IsSignedByName reports whether fileName contains the signed marker.
func IsSignedByName(fileName string) bool {
	return strings.Contains(strings.ToLower(fileName), SignedMarker)
}

// ExtractProjectCode returns the uppercase code of a "PRJ-<CODE>-" marker.
func ExtractProjectCode(fileName string) (string, bool) {
	m := projectCodePattern.FindStringSubmatch(fileName)
	if m == nil {
		return "", false
	}
	return m[1], true
}
