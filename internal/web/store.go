package web

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/a3tai/pdf-stamp-checker/internal/report"
	"github.com/a3tai/pdf-stamp-checker/internal/stamp"
)

// DefaultMaxReports is how many finished reports are kept for download
const DefaultMaxReports = 50

// StoredReport is a finished batch kept for later retrieval
type StoredReport struct {
	ID        string
	CreatedAt time.Time
	Report    *stamp.BatchReport
	Rows      []report.Row
}

// ReportStore keeps the most recent reports in memory. When full, the oldest
// report is evicted.
type ReportStore struct {
	mu      sync.RWMutex
	reports map[string]*StoredReport
	order   []string
	max     int
}

// NewReportStore creates a store holding at most limit reports
func NewReportStore(limit int) *ReportStore {
	if limit < 1 {
		limit = DefaultMaxReports
	}
	return &ReportStore{
		reports: make(map[string]*StoredReport),
		max:     limit,
	}
}

// Add stores rep under a new id
func (s *ReportStore) Add(rep *stamp.BatchReport) *StoredReport {
	stored := &StoredReport{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		Report:    rep,
		Rows:      report.Rows(rep.Results),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for len(s.order) >= s.max {
		delete(s.reports, s.order[0])
		s.order = s.order[1:]
	}
	s.reports[stored.ID] = stored
	s.order = append(s.order, stored.ID)

	return stored
}

// Get returns the report stored under id
func (s *ReportStore) Get(id string) (*StoredReport, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[id]
	return r, ok
}

// Len returns the number of stored reports
func (s *ReportStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
