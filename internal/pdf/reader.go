package pdf

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// Reader extracts per-page plain text from PDF documents
type Reader struct {
	maxFileSize int64
	maxTextSize int
	validator   *Validator
}

// NewReader creates a new PDF reader with the specified constraints
func NewReader(maxFileSize int64) *Reader {
	return &Reader{
		maxFileSize: maxFileSize,
		maxTextSize: 10 * 1024 * 1024, // 10MB text limit
		validator:   NewValidator(maxFileSize),
	}
}

// ReadFile loads a PDF from disk and extracts the text of every page
func (r *Reader) ReadFile(ctx context.Context, path string) ([]string, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}

	if err := r.validator.ValidateFileInfo(path, fileInfo); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %w", err)
	}

	return r.ReadPages(ctx, data)
}

// ReadPages extracts the text of every page of an in-memory PDF. The result
// has one entry per page; pages whose text cannot be decoded are empty.
func (r *Reader) ReadPages(ctx context.Context, data []byte) (pages []string, err error) {
	if _, err := r.validator.Inspect(data); err != nil {
		return nil, err
	}

	// ledongthuc/pdf panics on some malformed content streams
	defer func() {
		if rec := recover(); rec != nil {
			pages = nil
			err = &Error{Op: "extract", Err: fmt.Errorf("parser panic: %v", rec)}
		}
	}()

	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &Error{Op: "open", Err: err}
	}

	numPages := pdfReader.NumPage()
	pages = make([]string, 0, numPages)
	totalLength := 0

	for pageNum := 1; pageNum <= numPages; pageNum++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text := ""
		if totalLength < r.maxTextSize {
			text = r.pageText(pdfReader, pageNum)
			text = truncateText(text, r.maxTextSize-totalLength)
			totalLength += len(text)
		}

		pages = append(pages, text)
	}

	return pages, nil
}

func (r *Reader) pageText(pdfReader *pdf.Reader, pageNum int) string {
	page := pdfReader.Page(pageNum)
	if page.V.IsNull() {
		return ""
	}

	content, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}

	// Pages without text still yield line breaks
	if strings.TrimSpace(content) == "" {
		return ""
	}

	return content
}

// truncateText cuts text to at most limit bytes without splitting a rune
func truncateText(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	if limit <= 0 {
		return ""
	}
	for limit > 0 && !utf8.RuneStart(text[limit]) {
		limit--
	}
	return text[:limit]
}
