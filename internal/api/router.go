package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/touka-study/touka-entry/internal/catalog"
	"github.com/touka-study/touka-entry/internal/middleware"
	"github.com/touka-study/touka-entry/internal/services"
	"github.com/touka-study/touka-entry/internal/source"
	"github.com/touka-study/touka-entry/internal/utils"
)

// maxUploadBytes bounds survey scan uploads.
const maxUploadBytes = 32 << 20

// Config wires the pipeline services into the HTTP surface.
type Config struct {
	Settings  *services.SettingsService
	Source    *source.Manager
	Form      *services.FormService
	Records   *services.RecordService
	Export    *services.ExportService
	Recognize *services.RecognitionService
}

type Router struct {
	cfg Config
}

func NewRouter(cfg Config) *Router {
	return &Router{cfg: cfg}
}

func (rt *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/fields", rt.handleFields)                        // GET
	mux.HandleFunc("/api/source", rt.handleSourceStatus)                  // GET
	mux.HandleFunc("/api/source/image", rt.handleSourceImage)             // POST
	mux.HandleFunc("/api/source/document", rt.handleSourceDocument)       // POST
	mux.HandleFunc("/api/source/page", rt.handleSourcePage)               // POST
	mux.HandleFunc("/api/source/preview", rt.handleSourcePreview)         // GET
	mux.HandleFunc("/api/recognize", rt.handleRecognize)                  // POST
	mux.HandleFunc("/api/recognize/progress", rt.handleRecognizeProgress) // GET
	mux.HandleFunc("/api/form", rt.handleForm)                            // GET/PUT
	mux.HandleFunc("/api/form/field", rt.handleFormField)                 // POST
	mux.HandleFunc("/api/form/clear", rt.handleFormClear)                 // POST
	mux.HandleFunc("/api/records", rt.handleRecords)                      // GET/POST
	mux.HandleFunc("/api/records/", rt.handleRecordScoped)                // DELETE /api/records/{id}
	mux.HandleFunc("/api/export", rt.handleExport)                        // GET
	mux.HandleFunc("/api/settings/apikey", rt.handleAPIKey)               // GET/PUT/DELETE
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps ServiceError codes onto HTTP statuses and localizes the
// notice for the operator. Unclassified errors become 500s.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	locale := middleware.LocaleFromContext(r.Context())
	status := http.StatusInternalServerError
	msg := err.Error()
	if se, ok := services.AsServiceError(err); ok {
		switch se.Code {
		case services.ErrorInvalid:
			status = http.StatusBadRequest
		case services.ErrorNotFound:
			status = http.StatusNotFound
		case services.ErrorConflict:
			status = http.StatusConflict
		case services.ErrorUnauthorized:
			status = http.StatusUnauthorized
		case services.ErrorBadGateway:
			status = http.StatusBadGateway
		}
		msg = utils.T(locale, se.Message)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": msg})
}

// confirmed reports whether the request carries the explicit confirmation flag
// that guards destructive actions.
func confirmed(r *http.Request) bool {
	v := r.URL.Query().Get("confirm")
	return v == "1" || v == "true"
}

// GET /api/fields
func (rt *Router) handleFields(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, map[string]any{"fields": catalog.Fields()})
}

// readUpload extracts the uploaded file from a multipart form.
func readUpload(r *http.Request) ([]byte, string, string, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, "", "", services.NewInvalidError("source.unreadable")
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", "", services.NewInvalidError("source.none")
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return nil, "", "", services.NewInvalidError("source.unreadable")
	}
	return data, header.Filename, header.Header.Get("Content-Type"), nil
}

// GET /api/source
func (rt *Router) handleSourceStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, rt.cfg.Source.Status())
}

// POST /api/source/image — multipart upload of a scanned still image
func (rt *Router) handleSourceImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	data, name, _, err := readUpload(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := rt.cfg.Source.LoadImage(data, name); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, rt.cfg.Source.Status())
}

// POST /api/source/document — multipart upload of a multi-page PDF
func (rt *Router) handleSourceDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	data, name, contentType, err := readUpload(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !source.IsPDF(contentType, name) {
		writeError(w, r, services.NewInvalidError("source.unreadable"))
		return
	}
	if err := rt.cfg.Source.LoadPDF(data, name); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, rt.cfg.Source.Status())
}

// POST /api/source/page — {"page": n}
func (rt *Router) handleSourcePage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Page int `json:"page"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := rt.cfg.Source.GotoPage(req.Page); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, rt.cfg.Source.Status())
}

// GET /api/source/preview — the active bitmap
func (rt *Router) handleSourcePreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	data, mime, err := rt.cfg.Source.Bitmap()
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", mime)
	_, _ = w.Write(data)
}

// POST /api/recognize — {"engine": "local"|"remote", "mode": "text"|"structured"}
func (rt *Router) handleRecognize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Engine string `json:"engine"`
		Mode   string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	image, mime, err := rt.cfg.Source.Bitmap()
	if err != nil {
		writeError(w, r, err)
		return
	}
	result, err := rt.cfg.Recognize.Recognize(r.Context(), services.RecognizeRequest{
		Engine:   req.Engine,
		Mode:     req.Mode,
		Image:    image,
		MIMEType: mime,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// GET /api/recognize/progress
func (rt *Router) handleRecognizeProgress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, map[string]int{"progress": rt.cfg.Recognize.Progress()})
}

// GET /api/form, PUT /api/form — {"data": {...}} replaces the form wholesale
func (rt *Router) handleForm(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, map[string]any{"data": rt.cfg.Form.Snapshot()})
	case http.MethodPut:
		var req struct {
			Data map[string]any `json:"data"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Data == nil {
			http.Error(w, "missing data", http.StatusBadRequest)
			return
		}
		applied, err := rt.cfg.Form.LoadStructured(req.Data)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, map[string]any{"data": rt.cfg.Form.Snapshot(), "applied": applied})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// POST /api/form/field — {"id": ..., "value": ...}
func (rt *Router) handleFormField(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		ID    string `json:"id"`
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := rt.cfg.Form.SetField(req.ID, req.Value); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"ok": true})
}

// POST /api/form/clear?confirm=1
func (rt *Router) handleFormClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := rt.cfg.Form.Clear(confirmed(r)); err != nil {
		writeError(w, r, err)
		return
	}
	rt.cfg.Source.Clear()
	writeJSON(w, map[string]any{"ok": true})
}

// GET /api/records, POST /api/records
func (rt *Router) handleRecords(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		records, err := rt.cfg.Records.ListRecords()
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, map[string]any{"records": records, "count": len(records)})
	case http.MethodPost:
		rec, err := rt.cfg.Records.Commit(rt.cfg.Form.Snapshot())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, rec)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// DELETE /api/records/{id}?confirm=1
func (rt *Router) handleRecordScoped(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/records/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	if err := rt.cfg.Records.Remove(id, confirmed(r)); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"ok": true, "count": rt.cfg.Records.Count()})
}

// GET /api/export — CSV download
func (rt *Router) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	res, err := rt.cfg.Export.ExportCSV()
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+res.Filename+`"`)
	_, _ = w.Write(res.Data)
}

// GET/PUT/DELETE /api/settings/apikey
func (rt *Router) handleAPIKey(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		key, err := rt.cfg.Settings.APIKey()
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, map[string]any{"configured": key != ""})
	case http.MethodPut:
		var req struct {
			Key string `json:"key"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := rt.cfg.Settings.SaveAPIKey(req.Key); err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true})
	case http.MethodDelete:
		if err := rt.cfg.Settings.ClearAPIKey(); err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
