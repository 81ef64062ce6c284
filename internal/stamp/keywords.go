package stamp

import "strings"

// KeywordSet combines the fixed roster terms with user supplied lines.
type KeywordSet struct {
	roster *Roster
}

// NewKeywordSet creates a keyword set bound to roster.
func NewKeywordSet(roster *Roster) *KeywordSet {
	return &KeywordSet{roster: roster}
}

// FixedSearchTerms returns the roster terms. They are always searched.
func (k *KeywordSet) FixedSearchTerms() []string {
	return k.roster.FixedSearchTerms()
}

// BuildSearchList appends the cleaned user lines to the fixed terms. Terms
// repeated across the two groups are kept; the scanner records each once.
func (k *KeywordSet) BuildSearchList(userLines []string) []string {
	fixed := k.FixedSearchTerms()
	user := CleanKeywordLines(userLines)

	list := make([]string, 0, len(fixed)+len(user))
	list = append(list, fixed...)
	return append(list, user...)
}

// CleanKeywordLines trims each line and drops blanks.
func CleanKeywordLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// SplitKeywordText splits newline separated keyword input into clean lines.
func SplitKeywordText(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return CleanKeywordLines(strings.Split(text, "\n"))
}
