package pdf

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var pdfHeader = []byte("%PDF-")

// Validator checks uploads and files before text extraction
type Validator struct {
	maxFileSize int64
}

// NewValidator creates a new PDF validator with the specified constraints
func NewValidator(maxFileSize int64) *Validator {
	return &Validator{
		maxFileSize: maxFileSize,
	}
}

// ValidateName checks the extension and size of a named upload without reading it
func (v *Validator) ValidateName(name string, size int64) error {
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		return fmt.Errorf("%w: %s", ErrNotPDF, name)
	}

	if size == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyFile, name)
	}

	if size > v.maxFileSize {
		return fmt.Errorf("%w: %d bytes (max: %d bytes)", ErrFileTooLarge, size, v.maxFileSize)
	}

	return nil
}

// ValidateFileInfo performs basic validation on file info without opening the PDF
func (v *Validator) ValidateFileInfo(filePath string, fileInfo os.FileInfo) error {
	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}
	return v.ValidateName(filePath, fileInfo.Size())
}

// Inspect validates the document structure with pdfcpu in relaxed mode and
// returns its page count
func (v *Validator) Inspect(data []byte) (*DocumentInfo, error) {
	if int64(len(data)) > v.maxFileSize {
		return nil, fmt.Errorf("%w: %d bytes (max: %d bytes)", ErrFileTooLarge, len(data), v.maxFileSize)
	}

	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	if !bytes.HasPrefix(bytes.TrimLeft(data, "\x00\t\r\n "), pdfHeader) {
		return nil, ErrInvalidHeader
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return nil, &Error{Op: "validate", Err: fmt.Errorf("failed to read PDF context: %w", err)}
	}

	if err := ctx.EnsurePageCount(); err != nil {
		return nil, &Error{Op: "validate", Err: fmt.Errorf("failed to ensure page count: %w", err)}
	}

	return &DocumentInfo{Pages: ctx.PageCount, Size: int64(len(data))}, nil
}

// IsValidPDF performs a quick check to see if a file is a readable PDF
func (v *Validator) IsValidPDF(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil || v.ValidateFileInfo(filePath, info) != nil {
		return false
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return false
	}

	_, err = v.Inspect(data)
	return err == nil
}
