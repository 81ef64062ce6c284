package pdf

import (
	"errors"
	"fmt"
)

// FileInfo describes a PDF file found on disk
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}

// DocumentInfo holds what structural validation learned about a document
type DocumentInfo struct {
	Pages int   `json:"pages"`
	Size  int64 `json:"size"`
}

// Validation failures
var (
	ErrEmptyPath     = errors.New("path cannot be empty")
	ErrNotPDF        = errors.New("file is not a PDF")
	ErrEmptyFile     = errors.New("file is empty")
	ErrFileTooLarge  = errors.New("file too large")
	ErrInvalidHeader = errors.New("missing %PDF- header")
)

// Error wraps a failure of one PDF operation
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("pdf %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
