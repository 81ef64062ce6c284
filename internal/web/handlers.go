package web

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/a3tai/pdf-stamp-checker/internal/checker"
	"github.com/a3tai/pdf-stamp-checker/internal/report"
	"github.com/a3tai/pdf-stamp-checker/internal/stamp"
)

// Handler serves the upload form, the JSON API and report downloads
type Handler struct {
	checker *checker.Service
	store   *ReportStore
	version string
}

// NewHandler creates a handler over a checker service and report store
func NewHandler(checkerService *checker.Service, store *ReportStore, version string) *Handler {
	return &Handler{
		checker: checkerService,
		store:   store,
		version: version,
	}
}

// Failure is a file that could not be analyzed
type Failure struct {
	FileName string `json:"file_name"`
	Error    string `json:"error"`
}

// AnalyzeResponse is the JSON and HTML view of a finished batch
type AnalyzeResponse struct {
	ID          string             `json:"id"`
	Summary     stamp.BatchSummary `json:"summary"`
	Rows        []report.Row       `json:"rows"`
	Failures    []Failure          `json:"failures"`
	DownloadURL string             `json:"download_url"`
}

type indexPage struct {
	Title     string
	MaxFiles  int
	Reference checker.Reference
}

type resultsPage struct {
	Title   string
	Columns []string
	AnalyzeResponse
}

func newAnalyzeResponse(stored *StoredReport) AnalyzeResponse {
	failures := make([]Failure, 0, len(stored.Report.Failures))
	for _, f := range stored.Report.Failures {
		failures = append(failures, Failure{FileName: f.FileName, Error: f.Cause.Error()})
	}

	return AnalyzeResponse{
		ID:          stored.ID,
		Summary:     stored.Report.Summary,
		Rows:        stored.Rows,
		Failures:    failures,
		DownloadURL: fmt.Sprintf("/api/reports/%s/xlsx", stored.ID),
	}
}

// HandleIndex renders the upload form
func (h *Handler) HandleIndex(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", indexPage{
		Title:     "Drawing Stamp Checker",
		MaxFiles:  h.checker.MaxFiles(),
		Reference: h.checker.Reference(),
	})
}

// HandleAnalyzeForm runs a batch from the HTML form and renders the results.
// Unchecked boxes are absent from the form, so toggles default to off.
func (h *Handler) HandleAnalyzeForm(c echo.Context) error {
	stored, err := h.analyze(c, false)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "results.html", resultsPage{
		Title:           "Analysis Results",
		Columns:         report.Columns,
		AnalyzeResponse: newAnalyzeResponse(stored),
	})
}

// HandleAnalyzeAPI runs a batch and returns it as JSON. Toggles default to on.
func (h *Handler) HandleAnalyzeAPI(c echo.Context) error {
	stored, err := h.analyze(c, true)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newAnalyzeResponse(stored))
}

func (h *Handler) analyze(c echo.Context, toggleDefault bool) (*StoredReport, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, NewBadRequestError("expected multipart form data", err)
	}

	req, err := parseRequest(form, toggleDefault)
	if err != nil {
		return nil, err
	}

	files := form.File["files"]
	if len(files) == 0 {
		return nil, NewValidationError("files", errors.New("at least one PDF is required"))
	}
	if len(files) > h.checker.MaxFiles() {
		return nil, NewValidationError("files", fmt.Errorf("%w: %d (max: %d)",
			checker.ErrTooManyFiles, len(files), h.checker.MaxFiles()))
	}

	uploads := make([]checker.Upload, 0, len(files))
	for _, fh := range files {
		data, err := readUpload(fh)
		if err != nil {
			return nil, NewBadRequestError("failed to read upload "+fh.Filename, err)
		}
		uploads = append(uploads, checker.Upload{Name: fh.Filename, Data: data})
	}

	rep, err := h.checker.CheckUploads(c.Request().Context(), uploads, req)
	if err != nil {
		if errors.Is(err, checker.ErrTooManyFiles) {
			return nil, NewValidationError("files", err)
		}
		return nil, NewInternalError("analysis failed", err)
	}

	return h.store.Add(rep), nil
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// parseRequest reads keywords and toggles from the form. An absent keywords
// field selects the default list.
func parseRequest(form *multipart.Form, toggleDefault bool) (checker.Request, error) {
	req := checker.DefaultRequest()

	if values, ok := form.Value["keywords"]; ok && len(values) > 0 {
		req.Keywords = stamp.SplitKeywordText(values[0])
	}

	toggles := []struct {
		name string
		dst  *bool
	}{
		{"check_filename", &req.Options.CheckFilename},
		{"check_sheet", &req.Options.CheckSheet},
		{"check_project", &req.Options.CheckProject},
	}
	for _, t := range toggles {
		v, err := parseToggle(form, t.name, toggleDefault)
		if err != nil {
			return req, err
		}
		*t.dst = v
	}

	return req, nil
}

func parseToggle(form *multipart.Form, name string, def bool) (bool, error) {
	values, ok := form.Value[name]
	if !ok || len(values) == 0 {
		return def, nil
	}
	if values[0] == "on" {
		return true, nil
	}
	v, err := strconv.ParseBool(values[0])
	if err != nil {
		return false, NewValidationError(name, err)
	}
	return v, nil
}

// HandleGetReport returns a stored report as JSON
func (h *Handler) HandleGetReport(c echo.Context) error {
	stored, err := h.lookup(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newAnalyzeResponse(stored))
}

// HandleDownloadReport streams a stored report as an xlsx workbook
func (h *Handler) HandleDownloadReport(c echo.Context) error {
	stored, err := h.lookup(c)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := report.WriteXLSX(&buf, stored.Rows, stored.Report.Summary); err != nil {
		return NewInternalError("failed to build workbook", err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", report.FileName))
	return c.Blob(http.StatusOK, report.ContentType, buf.Bytes())
}

func (h *Handler) lookup(c echo.Context) (*StoredReport, error) {
	id := c.Param("id")
	stored, ok := h.store.Get(id)
	if !ok {
		return nil, NewNotFoundError("report", id)
	}
	return stored, nil
}

// HandleReference returns the reference tables
func (h *Handler) HandleReference(c echo.Context) error {
	return c.JSON(http.StatusOK, h.checker.Reference())
}

// HandleHealth returns server health status
func (h *Handler) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": h.version,
		"reports": h.store.Len(),
	})
}
