package stamp

import (
	"errors"
	"fmt"
)

// ErrExtractionFailed matches every per-file extraction failure.
var ErrExtractionFailed = errors.New("extraction failed")

// ExtractionError reports a file whose text could not be extracted.
type ExtractionError struct {
	FileName string
	Cause    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s: %v", e.FileName, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is match ErrExtractionFailed.
func (e *ExtractionError) Is(target error) bool {
	return target == ErrExtractionFailed
}
