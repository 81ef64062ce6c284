package pdf

import (
	"fmt"
	"os"
)

// FileStats describes one PDF of a directory listing
type FileStats struct {
	FileInfo
	Pages int    `json:"pages"`
	Error string `json:"error,omitempty"`
}

// DirectoryStats totals a directory of PDF files
type DirectoryStats struct {
	Directory        string      `json:"directory"`
	TotalFiles       int         `json:"total_files"`
	TotalSize        int64       `json:"total_size"`
	TotalPages       int         `json:"total_pages"`
	Unreadable       int         `json:"unreadable"`
	LargestFileName  string      `json:"largest_file_name,omitempty"`
	LargestFileSize  int64       `json:"largest_file_size"`
	SmallestFileName string      `json:"smallest_file_name,omitempty"`
	SmallestFileSize int64       `json:"smallest_file_size"`
	AverageFileSize  int64       `json:"average_file_size"`
	Files            []FileStats `json:"files"`
}

// Stats collects size and page statistics for PDF files
type Stats struct {
	search    *Search
	validator *Validator
}

// NewStats creates a new PDF stats analyzer with the specified constraints
func NewStats(maxFileSize int64) *Stats {
	return &Stats{
		search:    NewSearch(maxFileSize),
		validator: NewValidator(maxFileSize),
	}
}

// GetDirectoryStats lists the PDFs of directory with their page counts. A
// file pdfcpu cannot read is kept in the listing with its error.
func (s *Stats) GetDirectoryStats(directory string, recursive bool) (*DirectoryStats, error) {
	files, err := s.search.FindPDFs(directory, recursive)
	if err != nil {
		return nil, err
	}

	result := &DirectoryStats{
		Directory: directory,
		Files:     make([]FileStats, 0, len(files)),
	}

	for _, f := range files {
		fs := s.fileStats(f)
		result.Files = append(result.Files, fs)

		result.TotalFiles++
		result.TotalSize += f.Size
		result.TotalPages += fs.Pages
		if fs.Error != "" {
			result.Unreadable++
		}

		if f.Size > result.LargestFileSize {
			result.LargestFileSize = f.Size
			result.LargestFileName = f.Name
		}
		if result.SmallestFileName == "" || f.Size < result.SmallestFileSize {
			result.SmallestFileSize = f.Size
			result.SmallestFileName = f.Name
		}
	}

	if result.TotalFiles > 0 {
		result.AverageFileSize = result.TotalSize / int64(result.TotalFiles)
	}

	return result, nil
}

func (s *Stats) fileStats(f FileInfo) FileStats {
	fs := FileStats{FileInfo: f}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		fs.Error = fmt.Sprintf("cannot read file: %v", err)
		return fs
	}

	info, err := s.validator.Inspect(data)
	if err != nil {
		fs.Error = err.Error()
		return fs
	}

	fs.Pages = info.Pages
	return fs
}
