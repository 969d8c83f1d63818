package services

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// RecordService is the append-only in-memory list of committed survey records.
// Records live only for the lifetime of the server process; durable storage is
// deliberately out of scope for the entry workflow.
type RecordService struct {
	mu      sync.Mutex
	records []*SurveyRecord
	now     func() time.Time
	idGen   func() string
}

func NewRecordService() *RecordService {
	return &RecordService{
		now:   time.Now,
		idGen: defaultRecordID,
	}
}

func defaultRecordID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// Commit snapshots the given form answers as a new record. It always succeeds:
// incomplete sheets are committed as-is, completeness is reviewed on paper.
// The data is copied, so later form edits never alter the record.
func (s *RecordService) Commit(form FormData) (*SurveyRecord, error) {
	rec := &SurveyRecord{
		ID:        s.idGen(),
		CreatedAt: s.now().Format("2006/01/02 15:04:05"),
		Data:      form.Clone(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return rec, nil
}

// Remove drops the record with the given id, preserving the order of the rest.
// An absent id is a no-op, not an error. Deletion is destructive and requires
// prior explicit confirmation.
func (s *RecordService) Remove(id string, confirmed bool) error {
	if !confirmed {
		return NewInvalidError("confirm.required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.records[:0]
	for _, r := range s.records {
		if r.ID != id {
			out = append(out, r)
		}
	}
	s.records = out
	return nil
}

// ListRecords returns the records in commit order.
func (s *RecordService) ListRecords() ([]*SurveyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*SurveyRecord(nil), s.records...), nil
}

// Count reports how many records are committed.
func (s *RecordService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

var _ ExportStore = (*RecordService)(nil)
