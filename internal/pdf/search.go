package pdf

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Search discovers PDF files on disk
type Search struct {
	validator *Validator
}

// NewSearch creates a new PDF search handler with the specified constraints
func NewSearch(maxFileSize int64) *Search {
	return &Search{
		validator: NewValidator(maxFileSize),
	}
}

// FindPDFs lists the PDF files under directory in lexical path order. Files
// failing the name and size checks are skipped. When recursive is false only
// the top level is listed.
func (s *Search) FindPDFs(directory string, recursive bool) ([]FileInfo, error) {
	if directory == "" {
		return nil, fmt.Errorf("directory cannot be empty")
	}

	absDirectory, err := filepath.Abs(directory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory path: %w", err)
	}

	info, err := os.Stat(absDirectory)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("directory does not exist: %s", directory)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", directory)
	}

	var pdfFiles []FileInfo

	err = filepath.WalkDir(absDirectory, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // Intentionally continue on file errors
		}

		if d.IsDir() {
			if path != absDirectory && !recursive {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(strings.ToLower(d.Name()), ".pdf") {
			return nil
		}

		fileInfo, err := d.Info()
		if err != nil {
			return nil //nolint:nilerr // File vanished during the walk
		}

		if err := s.validator.ValidateFileInfo(path, fileInfo); err != nil {
			return nil //nolint:nilerr // Intentionally continue on validation errors
		}

		pdfFiles = append(pdfFiles, FileInfo{
			Path:         path,
			Name:         fileInfo.Name(),
			Size:         fileInfo.Size(),
			ModifiedTime: fileInfo.ModTime().Format("2006-01-02 15:04:05"),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory: %w", err)
	}

	return pdfFiles, nil
}
