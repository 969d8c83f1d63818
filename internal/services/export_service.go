package services

import (
	"time"

	"github.com/touka-study/touka-entry/internal/catalog"
)

// ExportStore provides the committed records to export.
type ExportStore interface {
	ListRecords() ([]*SurveyRecord, error)
}

type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

type ExportService struct {
	store ExportStore
	now   func() time.Time
}

func NewExportService(store ExportStore) *ExportService {
	return &ExportService{store: store, now: time.Now}
}

// ExportCSV renders every committed record into a downloadable CSV artifact.
// Exporting with zero records is rejected; no file is produced.
func (s *ExportService) ExportCSV() (*ExportResult, error) {
	records, err := s.store.ListRecords()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, NewInvalidError("export.empty")
	}
	body := RenderCSV(records, catalog.Fields())
	data := make([]byte, 0, len(utf8BOM)+len(body))
	data = append(data, utf8BOM...)
	data = append(data, body...)
	return &ExportResult{
		Filename:    "touka_results_" + s.now().Format("2006-01-02") + ".csv",
		ContentType: "text/csv; charset=utf-8",
		Data:        data,
	}, nil
}
