package stamp

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Input is one file queued for a batch run.
type Input struct {
	FileName string
	Pages    PageProvider
}

// Count is one entry of a Tally.
type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Tally is an insertion-ordered counter.
type Tally []Count

// Get returns the count recorded for key.
func (t Tally) Get(key string) int {
	for _, c := range t {
		if c.Key == key {
			return c.Count
		}
	}
	return 0
}

func (t *Tally) inc(key string) {
	for i := range *t {
		if (*t)[i].Key == key {
			(*t)[i].Count++
			return
		}
	}
	*t = append(*t, Count{Key: key, Count: 1})
}

// BatchSummary holds the counts derived from one batch run.
type BatchSummary struct {
	Total         int   `json:"total"`
	FilenameFound int   `json:"filename_found"`
	SheetFound    int   `json:"sheet_found"`
	Signed        int   `json:"signed"`
	ProjectFound  int   `json:"project_found"`
	Engineers     Tally `json:"engineers"`
	Projects      Tally `json:"projects"`
}

// BatchReport is the full outcome of a run.
type BatchReport struct {
	Summary  BatchSummary       `json:"summary"`
	Results  []DocumentResult   `json:"results"`
	Failures []*ExtractionError `json:"-"`
}

// Aggregator runs the analyzer over a batch of files.
type Aggregator struct {
	analyzer *Analyzer
	keywords *KeywordSet
	roster   *Roster
	workers  int
}

// NewAggregator creates an aggregator over tables. workers bounds how many
// files are analyzed at once; values below one mean sequential.
func NewAggregator(tables *Tables, workers int) *Aggregator {
	if workers < 1 {
		workers = 1
	}
	return &Aggregator{
		analyzer: NewAnalyzer(tables.Catalog),
		keywords: NewKeywordSet(tables.Roster),
		roster:   tables.Roster,
		workers:  workers,
	}
}

// SearchList returns the effective search list for userKeywords.
func (a *Aggregator) SearchList(userKeywords []string) []string {
	return a.keywords.BuildSearchList(userKeywords)
}

// Run analyzes every input. Results and failures keep input order; a failed
// file never stops the others. Only context cancellation aborts the run.
func (a *Aggregator) Run(ctx context.Context, inputs []Input, userKeywords []string, opts Options) (*BatchReport, error) {
	searchList := a.SearchList(userKeywords)

	results := make([]DocumentResult, len(inputs))
	errs := make([]error, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)

	for i, in := range inputs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i], errs[i] = a.analyzer.Analyze(gctx, in.FileName, in.Pages, searchList, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &BatchReport{Results: make([]DocumentResult, 0, len(inputs))}
	for i, err := range errs {
		if err == nil {
			report.Results = append(report.Results, results[i])
			continue
		}
		var extractErr *ExtractionError
		if !errors.As(err, &extractErr) {
			extractErr = &ExtractionError{FileName: inputs[i].FileName, Cause: err}
		}
		report.Failures = append(report.Failures, extractErr)
	}

	report.Summary = Summarize(len(inputs), report.Results, a.roster)
	return report, nil
}

// Summarize folds results into a BatchSummary. total counts every attempted
// file, failures included. Each found keyword owned by an engineer counts
// once, so a document showing both the name and a registration of the same
// engineer adds two hits.
func Summarize(total int, results []DocumentResult, roster *Roster) BatchSummary {
	s := BatchSummary{
		Total:     total,
		Engineers: Tally{},
		Projects:  Tally{},
	}

	for _, r := range results {
		if r.Matches.FilenameFound {
			s.FilenameFound++
		}
		if r.Matches.SheetFound {
			s.SheetFound++
		}
		if r.Metadata.Signed {
			s.Signed++
		}
		if r.Matches.ProjectFound {
			s.ProjectFound++
		}

		for _, kw := range r.Matches.Keywords {
			if name, ok := roster.Owner(kw); ok {
				s.Engineers.inc(name)
			}
		}

		if r.Metadata.HasProject() {
			s.Projects.inc(ProjectKey(r.Metadata.ProjectCode, r.Metadata.ProjectDescription))
		}
	}

	return s
}

// ProjectKey formats the project tally key.
func ProjectKey(code, description string) string {
	return fmt.Sprintf("%s - %s", code, description)
}
