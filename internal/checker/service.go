// Package checker wires PDF extraction, stamp analysis and report encoding
// into the operations exposed by the HTTP and MCP surfaces.
package checker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/a3tai/pdf-stamp-checker/internal/config"
	"github.com/a3tai/pdf-stamp-checker/internal/pdf"
	"github.com/a3tai/pdf-stamp-checker/internal/pdf/security"
	"github.com/a3tai/pdf-stamp-checker/internal/report"
	"github.com/a3tai/pdf-stamp-checker/internal/stamp"
)

// ErrTooManyFiles is returned when a batch exceeds the configured file limit
var ErrTooManyFiles = errors.New("too many files")

// Upload is one PDF received in memory
type Upload struct {
	Name string
	Data []byte
}

// Request carries the caller's choices for a run
type Request struct {
	// Keywords are the supplementary search terms. Nil selects the default
	// keyword list; an empty non-nil slice searches the fixed terms only.
	Keywords []string
	Options  stamp.Options
}

// DefaultRequest returns a request with the default keywords and every check enabled
func DefaultRequest() Request {
	return Request{Options: stamp.DefaultOptions()}
}

// Reference lists the reference data a run matches against
type Reference struct {
	Engineers       []stamp.EngineerRecord   `json:"engineers"`
	Projects        []stamp.ProjectCodeEntry `json:"projects"`
	DefaultKeywords []string                 `json:"default_keywords"`
	FixedTerms      []string                 `json:"fixed_terms"`
}

// Service runs stamp checks over uploads and files in the configured directory
type Service struct {
	tables        *stamp.Tables
	aggregator    *stamp.Aggregator
	reader        *pdf.Reader
	validator     *pdf.Validator
	search        *pdf.Search
	stats         *pdf.Stats
	pathValidator *security.PathValidator
	maxFiles      int
}

// NewService creates a checker service from configuration and reference tables
func NewService(cfg *config.Config, tables *stamp.Tables) (*Service, error) {
	if tables == nil {
		return nil, fmt.Errorf("tables cannot be nil")
	}

	pathValidator, err := security.NewPathValidator(cfg.PDFDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}

	return &Service{
		tables:        tables,
		aggregator:    stamp.NewAggregator(tables, cfg.Workers),
		reader:        pdf.NewReader(cfg.MaxFileSize),
		validator:     pdf.NewValidator(cfg.MaxFileSize),
		search:        pdf.NewSearch(cfg.MaxFileSize),
		stats:         pdf.NewStats(cfg.MaxFileSize),
		pathValidator: pathValidator,
		maxFiles:      cfg.MaxFiles,
	}, nil
}

// LoadTables returns the reference tables named by cfg, or the built-in ones
func LoadTables(cfg *config.Config) (*stamp.Tables, error) {
	if cfg.TablesFile == "" {
		return stamp.DefaultTables(), nil
	}
	return stamp.LoadTables(cfg.TablesFile)
}

// Directory returns the root directory file operations are confined to
func (s *Service) Directory() string {
	return s.pathValidator.ConfiguredDirectory()
}

// MaxFiles returns the per-batch file limit
func (s *Service) MaxFiles() int {
	return s.maxFiles
}

// Keywords resolves the supplementary keywords of req
func (s *Service) Keywords(req Request) []string {
	if req.Keywords == nil {
		return s.tables.Keywords
	}
	return req.Keywords
}

// Reference returns the roster, catalog and keyword lists in use
func (s *Service) Reference() Reference {
	return Reference{
		Engineers:       s.tables.Roster.Records(),
		Projects:        s.tables.Catalog.Entries(),
		DefaultKeywords: append([]string(nil), s.tables.Keywords...),
		FixedTerms:      s.tables.Roster.FixedSearchTerms(),
	}
}

// CheckUploads analyzes in-memory PDFs. A file that cannot be read is listed
// as a failure of the report and does not stop the others.
func (s *Service) CheckUploads(ctx context.Context, uploads []Upload, req Request) (*stamp.BatchReport, error) {
	if len(uploads) > s.maxFiles {
		return nil, fmt.Errorf("%w: %d (max: %d)", ErrTooManyFiles, len(uploads), s.maxFiles)
	}

	inputs := make([]stamp.Input, 0, len(uploads))
	for _, u := range uploads {
		inputs = append(inputs, stamp.Input{
			FileName: u.Name,
			Pages:    s.uploadPages(u),
		})
	}

	return s.run(ctx, inputs, req)
}

func (s *Service) uploadPages(u Upload) stamp.PageProvider {
	return stamp.PageProviderFunc(func(ctx context.Context) ([]string, error) {
		if err := s.validator.ValidateName(u.Name, int64(len(u.Data))); err != nil {
			return nil, err
		}
		return s.reader.ReadPages(ctx, u.Data)
	})
}

// CheckDirectory analyzes the PDFs of a directory inside the configured root.
// An empty directory means the root itself.
func (s *Service) CheckDirectory(ctx context.Context, directory string, recursive bool,
	req Request,
) (*stamp.BatchReport, error) {
	absDir, err := s.pathValidator.ResolveDirectory(directory)
	if err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	files, err := s.search.FindPDFs(absDir, recursive)
	if err != nil {
		return nil, err
	}
	if len(files) > s.maxFiles {
		return nil, fmt.Errorf("%w: %d PDFs in %s (max: %d)", ErrTooManyFiles, len(files), absDir, s.maxFiles)
	}

	inputs := make([]stamp.Input, 0, len(files))
	for _, f := range files {
		inputs = append(inputs, stamp.Input{
			FileName: f.Name,
			Pages:    s.filePages(f.Path),
		})
	}

	return s.run(ctx, inputs, req)
}

// Drawing is one PDF of a directory listing with what its name declares
type Drawing struct {
	pdf.FileStats
	Metadata stamp.FileMetadata `json:"metadata"`
}

// DrawingList is the inventory of a drawing directory
type DrawingList struct {
	Stats    *pdf.DirectoryStats `json:"stats"`
	Drawings []Drawing           `json:"drawings"`
}

// ListDrawings inventories the PDFs of a directory inside the configured root
// without scanning their text
func (s *Service) ListDrawings(directory string, recursive bool) (*DrawingList, error) {
	absDir, err := s.pathValidator.ResolveDirectory(directory)
	if err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	stats, err := s.stats.GetDirectoryStats(absDir, recursive)
	if err != nil {
		return nil, err
	}

	list := &DrawingList{
		Stats:    stats,
		Drawings: make([]Drawing, 0, len(stats.Files)),
	}
	for _, f := range stats.Files {
		list.Drawings = append(list.Drawings, Drawing{
			FileStats: f,
			Metadata:  stamp.ParseFileName(f.Name, s.tables.Catalog),
		})
	}

	return list, nil
}

// CheckFile analyzes one PDF inside the configured root
func (s *Service) CheckFile(ctx context.Context, path string, req Request) (*stamp.DocumentResult, error) {
	absPath, err := s.pathValidator.Resolve(path)
	if err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	inputs := []stamp.Input{{
		FileName: filepath.Base(absPath),
		Pages:    s.filePages(absPath),
	}}

	rep, err := s.run(ctx, inputs, req)
	if err != nil {
		return nil, err
	}
	if len(rep.Failures) > 0 {
		return nil, rep.Failures[0]
	}
	return &rep.Results[0], nil
}

func (s *Service) filePages(path string) stamp.PageProvider {
	return stamp.PageProviderFunc(func(ctx context.Context) ([]string, error) {
		return s.reader.ReadFile(ctx, path)
	})
}

func (s *Service) run(ctx context.Context, inputs []stamp.Input, req Request) (*stamp.BatchReport, error) {
	rep, err := s.aggregator.Run(ctx, inputs, s.Keywords(req), req.Options)
	if err != nil {
		return nil, err
	}

	for _, f := range rep.Failures {
		log.Printf("Skipping %s: %v", f.FileName, f.Cause)
	}

	return rep, nil
}

// WriteWorkbook encodes rep as an xlsx workbook
func (s *Service) WriteWorkbook(w io.Writer, rep *stamp.BatchReport) error {
	return report.WriteXLSX(w, report.Rows(rep.Results), rep.Summary)
}

// SaveWorkbook writes the workbook of rep to path inside the configured root
// and returns the absolute path written
func (s *Service) SaveWorkbook(path string, rep *stamp.BatchReport) (string, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return "", fmt.Errorf("output file must have .xlsx extension: %s", path)
	}

	absPath, err := s.pathValidator.Resolve(path)
	if err != nil {
		return "", fmt.Errorf("security validation failed: %w", err)
	}

	var buf bytes.Buffer
	if err := s.WriteWorkbook(&buf, rep); err != nil {
		return "", err
	}

	if err := os.WriteFile(absPath, buf.Bytes(), 0o600); err != nil {
		return "", fmt.Errorf("failed to write workbook: %w", err)
	}

	return absPath, nil
}
