package aggregate

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/labelscan/internal/extract"
)

// Session owns the result set of one extraction run. Pipeline stages write
// to it from several goroutines, so every access is locked.
type Session struct {
	ID        string
	StartedAt time.Time

	mu      sync.Mutex
	records []extract.PageRecord
	files   []string
}

func NewSession() *Session {
	return &Session{ID: uuid.NewString(), StartedAt: time.Now().UTC()}
}

// Append adds records in processing order.
func (s *Session) Append(records ...extract.PageRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, records...)
}

// AddFiles remembers which input files contributed to the session.
func (s *Session) AddFiles(names ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = append(s.files, names...)
}

// Replace swaps every record of the given origin files for rescanned.
func (s *Session) Replace(origins []string, rescanned []extract.PageRecord) {
	set := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		set[o] = struct{}{}
	}
	for _, r := range rescanned {
		set[r.Origin] = struct{}{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = MergeFiles(s.records, rescanned, set)
}

// Records returns a copy of the current result set.
func (s *Session) Records() []extract.PageRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]extract.PageRecord(nil), s.records...)
}

func (s *Session) Files() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.files...)
}

func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
