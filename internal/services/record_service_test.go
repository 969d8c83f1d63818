package services

import (
	"fmt"
	"testing"
	"time"
)

func newTestRecordService() *RecordService {
	s := NewRecordService()
	n := 0
	s.idGen = func() string {
		n++
		return fmt.Sprintf("rec%d", n)
	}
	base := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		base = base.Add(time.Minute)
		return base
	}
	return s
}

func TestCommitAppendsInOrder(t *testing.T) {
	s := newTestRecordService()
	data := FormData{"patient_id": "001", "gender": "男"}
	r1, _ := s.Commit(data)
	r2, _ := s.Commit(data)
	if r1.ID == r2.ID {
		t.Fatal("record ids must be unique")
	}
	if r1.CreatedAt == r2.CreatedAt {
		t.Fatal("timestamps should differ")
	}
	records, _ := s.ListRecords()
	if len(records) != 2 || records[0].ID != r1.ID || records[1].ID != r2.ID {
		t.Fatalf("unexpected order: %v", records)
	}
	if s.Count() != 2 {
		t.Fatalf("count = %d", s.Count())
	}
}

func TestCommitCopiesData(t *testing.T) {
	s := newTestRecordService()
	data := FormData{"patient_id": "001"}
	rec, _ := s.Commit(data)
	data["patient_id"] = "mutated"
	records, _ := s.ListRecords()
	if records[0].Data["patient_id"] != "001" {
		t.Fatal("commit must snapshot a copy, not hold a live reference")
	}
	if rec.Data["patient_id"] != "001" {
		t.Fatal("returned record mutated through the source map")
	}
}

func TestRemoveRestoresPreCommitContent(t *testing.T) {
	s := newTestRecordService()
	r1, _ := s.Commit(FormData{"patient_id": "001"})
	r2, _ := s.Commit(FormData{"patient_id": "002"})
	r3, _ := s.Commit(FormData{"patient_id": "003"})

	if err := s.Remove(r2.ID, true); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	records, _ := s.ListRecords()
	if len(records) != 2 || records[0].ID != r1.ID || records[1].ID != r3.ID {
		t.Fatalf("order not preserved after removal: %v", records)
	}
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	s := newTestRecordService()
	_, _ = s.Commit(FormData{})
	if err := s.Remove("missing", true); err != nil {
		t.Fatalf("absent id should be a no-op, got %v", err)
	}
	if s.Count() != 1 {
		t.Fatalf("count = %d", s.Count())
	}
}

func TestRemoveRequiresConfirmation(t *testing.T) {
	s := newTestRecordService()
	rec, _ := s.Commit(FormData{})
	if err := s.Remove(rec.ID, false); err == nil {
		t.Fatal("unconfirmed remove must be rejected")
	}
	if s.Count() != 1 {
		t.Fatal("rejected remove must not delete")
	}
}
