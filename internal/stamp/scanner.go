package stamp

import "strings"

// Options toggles the per-document content checks.
type Options struct {
	CheckFilename bool `json:"check_filename"`
	CheckSheet    bool `json:"check_sheet"`
	CheckProject  bool `json:"check_project"`
}

// DefaultOptions enables every check.
func DefaultOptions() Options {
	return Options{CheckFilename: true, CheckSheet: true, CheckProject: true}
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// PageMatchState accumulates matches across the pages of one document.
type PageMatchState struct {
	keywords      []string
	seen          map[string]struct{}
	FilenameFound bool
	SheetFound    bool
	ProjectFound  bool
}

// NewPageMatchState returns an empty accumulator.
func NewPageMatchState() *PageMatchState {
	return &PageMatchState{seen: make(map[string]struct{})}
}

// Keywords returns the found keywords in first-seen order.
func (s *PageMatchState) Keywords() []string {
	return append([]string(nil), s.keywords...)
}

// HasKeyword reports whether keyword was already recorded.
func (s *PageMatchState) HasKeyword(keyword string) bool {
	_, ok := s.seen[keyword]
	return ok
}

func (s *PageMatchState) addKeyword(keyword string) {
	if s.HasKeyword(keyword) {
		return
	}
	s.seen[keyword] = struct{}{}
	s.keywords = append(s.keywords, keyword)
}

// Freeze copies the state into an immutable match summary.
func (s *PageMatchState) Freeze() Matches {
	return Matches{
		Keywords:      s.Keywords(),
		FilenameFound: s.FilenameFound,
		SheetFound:    s.SheetFound,
		ProjectFound:  s.ProjectFound,
	}
}

// Matches is the final outcome of scanning a document.
type Matches struct {
	Keywords      []string `json:"found_keywords"`
	FilenameFound bool     `json:"filename_found"`
	SheetFound    bool     `json:"sheet_found"`
	ProjectFound  bool     `json:"project_found"`
}

// NormalizePageText joins lines so a keyword split by extraction still matches.
func NormalizePageText(text string) string {
	return lineBreaks.Replace(text)
}

// SheetVariants lists the spellings of a sheet identifier searched in text.
func SheetVariants(sheet string) []string {
	return []string{
		sheet,
		strings.Replace(sheet, " ", "_", 1),
		strings.Replace(sheet, " ", "-", 1),
	}
}

// ScanPage folds one page of extracted text into state. Pages without text
// contribute nothing.
func ScanPage(pageText string, meta FileMetadata, searchList []string, opts Options, state *PageMatchState) {
	if pageText == "" {
		return
	}
	text := NormalizePageText(pageText)

	if opts.CheckFilename && meta.MatchName != "" && strings.Contains(text, meta.MatchName) {
		state.FilenameFound = true
	}

	if opts.CheckSheet && meta.HasSheet() {
		for _, variant := range SheetVariants(meta.SheetNumber) {
			if strings.Contains(text, variant) {
				state.SheetFound = true
				break
			}
		}
	}

	if opts.CheckProject && meta.ProjectResolvable() && strings.Contains(text, meta.ProjectDescription) {
		state.ProjectFound = true
	}

	for _, term := range searchList {
		if term == "" || state.HasKeyword(term) {
			continue
		}
		if strings.Contains(text, term) {
			state.addKeyword(term)
		}
	}
}
