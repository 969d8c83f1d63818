package services

import (
	"strings"
	"testing"
	"time"
)

type exportStubStore struct {
	records []*SurveyRecord
}

func (s *exportStubStore) ListRecords() ([]*SurveyRecord, error) {
	return append([]*SurveyRecord(nil), s.records...), nil
}

func TestExportCSVEmptyRejected(t *testing.T) {
	svc := NewExportService(&exportStubStore{})
	_, err := svc.ExportCSV()
	if err == nil {
		t.Fatal("expected error for empty store")
	}
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorInvalid {
		t.Fatalf("expected invalid ServiceError, got %v", err)
	}
}

func TestExportCSVArtifact(t *testing.T) {
	store := &exportStubStore{records: []*SurveyRecord{
		{ID: "r1", CreatedAt: "2025/03/14 09:00:00", Data: FormData{"patient_id": "001"}},
	}}
	svc := NewExportService(store)
	svc.now = func() time.Time { return time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC) }

	res, err := svc.ExportCSV()
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	if res.Filename != "touka_results_2025-03-14.csv" {
		t.Fatalf("filename = %q", res.Filename)
	}
	if res.ContentType != "text/csv; charset=utf-8" {
		t.Fatalf("content type = %q", res.ContentType)
	}
	if !strings.HasPrefix(string(res.Data), "\xEF\xBB\xBF") {
		t.Fatal("artifact is not BOM-prefixed")
	}
	body := strings.TrimPrefix(string(res.Data), "\xEF\xBB\xBF")
	if !strings.HasPrefix(body, "医療機関名,") {
		t.Fatalf("body does not start with header: %q", body[:30])
	}
}
