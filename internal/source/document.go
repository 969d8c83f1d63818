// Package source owns the current source document: a still image or a
// multi-page PDF with one rasterized page active at a time. The active bitmap
// feeds both the preview surface and the recognition strategies.
package source

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"strings"
	"sync"

	"github.com/gen2brain/go-fitz"

	"github.com/touka-study/touka-entry/internal/services"
)

// renderDPI rasterizes PDF pages at 2.0x the 72dpi base, balancing recognition
// accuracy against memory and render time.
const renderDPI = 144

// Manager holds at most one source document. Loading replaces the previous one
// wholesale. All rasterization is serialized by the mutex so overlapping page
// renders cannot corrupt the active bitmap.
type Manager struct {
	mu     sync.Mutex
	doc    *fitz.Document // nil for still images
	name   string
	pages  int
	page   int // 1-based
	bitmap []byte
	mime   string
}

func NewManager() *Manager {
	return &Manager{}
}

// Status describes the current source for the UI.
type Status struct {
	Loaded    bool   `json:"loaded"`
	Name      string `json:"name,omitempty"`
	Pages     int    `json:"pages,omitempty"`
	Page      int    `json:"page,omitempty"`
	MultiPage bool   `json:"multi_page,omitempty"`
}

// IsPDF detects a document upload by MIME type with a filename-extension
// fallback for browsers that send application/octet-stream.
func IsPDF(contentType, filename string) bool {
	if strings.HasPrefix(strings.ToLower(contentType), "application/pdf") {
		return true
	}
	return strings.HasSuffix(strings.ToLower(filename), ".pdf")
}

// LoadImage replaces the current source with a still image. The data must
// decode as a registered image format; corrupt uploads are rejected and the
// previous source stays active.
func (m *Manager) LoadImage(data []byte, name string) error {
	_, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return services.NewInvalidError("source.unreadable")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeLocked()
	m.name = name
	m.pages = 1
	m.page = 1
	m.bitmap = append([]byte(nil), data...)
	m.mime = "image/" + format
	return nil
}

// LoadPDF replaces the current source with a PDF document, reports its page
// count, and rasterizes page 1 at the fixed zoom factor.
func (m *Manager) LoadPDF(data []byte, name string) error {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return services.NewInvalidError("source.unreadable")
	}
	if doc.NumPage() == 0 {
		doc.Close()
		return services.NewInvalidError("source.unreadable")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	prev := m.doc
	m.doc = doc
	m.name = name
	m.pages = doc.NumPage()
	if err := m.renderPageLocked(1); err != nil {
		// Roll back to the previous document; the failed one is discarded.
		m.doc = prev
		doc.Close()
		if prev != nil {
			return err
		}
		m.name = ""
		m.pages = 0
		return err
	}
	if prev != nil {
		prev.Close()
	}
	return nil
}

// GotoPage re-rasterizes the requested page of a multi-page document. Indices
// outside [1, pages] leave the current page and bitmap unchanged.
func (m *Manager) GotoPage(n int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.doc == nil {
		return services.NewInvalidError("source.not_document")
	}
	if n < 1 || n > m.pages {
		return services.NewInvalidError("page.out_of_range")
	}
	return m.renderPageLocked(n)
}

// renderPageLocked rasterizes page n and installs it as the active bitmap.
// Callers hold m.mu.
func (m *Manager) renderPageLocked(n int) error {
	img, err := m.doc.ImageDPI(n-1, renderDPI)
	if err != nil {
		return services.NewInvalidError("source.render_failed")
	}
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		return services.NewInvalidError("source.render_failed")
	}
	m.page = n
	m.bitmap = buf.Bytes()
	m.mime = "image/png"
	return nil
}

// Bitmap returns the active bitmap and its MIME type.
func (m *Manager) Bitmap() ([]byte, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.bitmap) == 0 {
		return nil, "", services.NewNotFoundError("source.none")
	}
	return append([]byte(nil), m.bitmap...), m.mime, nil
}

// Status reports the current source state.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Status{
		Loaded:    len(m.bitmap) > 0,
		Name:      m.name,
		Pages:     m.pages,
		Page:      m.page,
		MultiPage: m.doc != nil && m.pages > 1,
	}
}

// Clear discards the current source.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeLocked()
}

func (m *Manager) closeLocked() {
	if m.doc != nil {
		m.doc.Close()
		m.doc = nil
	}
	m.name = ""
	m.pages = 0
	m.page = 0
	m.bitmap = nil
	m.mime = ""
}
