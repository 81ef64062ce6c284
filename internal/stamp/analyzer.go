package stamp

import "context"

// PageProvider yields the plain text of each page of one document.
type PageProvider interface {
	PageTexts(ctx context.Context) ([]string, error)
}

// PageProviderFunc adapts a function to PageProvider.
type PageProviderFunc func(ctx context.Context) ([]string, error)

// PageTexts calls f.
func (f PageProviderFunc) PageTexts(ctx context.Context) ([]string, error) {
	return f(ctx)
}

// StaticPages is a PageProvider over already extracted text.
type StaticPages []string

// PageTexts returns the pages unchanged.
func (p StaticPages) PageTexts(context.Context) ([]string, error) {
	return p, nil
}

// DocumentResult is the outcome of checking one file.
type DocumentResult struct {
	FileName string       `json:"file_name"`
	Metadata FileMetadata `json:"metadata"`
	Matches  Matches      `json:"matches"`
}

// Analyzer checks single documents against the project catalog.
type Analyzer struct {
	catalog *Catalog
}

// NewAnalyzer creates an analyzer bound to catalog.
func NewAnalyzer(catalog *Catalog) *Analyzer {
	return &Analyzer{catalog: catalog}
}

// Analyze extracts the pages of fileName and scans them. A provider failure
// is returned as an *ExtractionError.
func (a *Analyzer) Analyze(ctx context.Context, fileName string, pages PageProvider,
	searchList []string, opts Options,
) (DocumentResult, error) {
	texts, err := pages.PageTexts(ctx)
	if err != nil {
		return DocumentResult{}, &ExtractionError{FileName: fileName, Cause: err}
	}
	return a.AnalyzePages(fileName, texts, searchList, opts), nil
}

// AnalyzePages scans every page in order; later pages can still add keywords
// after all flags are set.
func (a *Analyzer) AnalyzePages(fileName string, pages []string, searchList []string, opts Options) DocumentResult {
	meta := ParseFileName(fileName, a.catalog)
	state := NewPageMatchState()

	for _, page := range pages {
		ScanPage(page, meta, searchList, opts, state)
	}

	return DocumentResult{
		FileName: fileName,
		Metadata: meta,
		Matches:  state.Freeze(),
	}
}
