package services

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/touka-study/touka-entry/internal/catalog"
)

// FormService owns the current (not yet committed) form answers. A single
// logical operator drives it, but handlers may race, so it is mutex-guarded.
type FormService struct {
	mu   sync.Mutex
	data FormData
}

func NewFormService() *FormService {
	return &FormService{data: FormData{}}
}

// SetField overwrites one field value. Values are accepted verbatim without
// validation against the field kind; scanned handwriting is noisy and cleanup
// happens in the form, not here. Unknown ids are rejected.
func (s *FormService) SetField(id, value string) error {
	if !catalog.KnownID(id) {
		return NewInvalidError("unknown field: " + id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = value
	return nil
}

// Snapshot returns an independent copy of the current answers.
func (s *FormService) Snapshot() FormData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Clone()
}

// Clear resets the form to empty. It is destructive and requires the caller to
// have collected an explicit confirmation first.
func (s *FormService) Clear(confirmed bool) error {
	if !confirmed {
		return NewInvalidError("confirm.required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = FormData{}
	return nil
}

// LoadStructured replaces the form wholesale with a recognition payload. The
// payload is untrusted: only keys belonging to the catalog are projected in,
// everything else is dropped. Returns the number of applied fields.
func (s *FormService) LoadStructured(obj map[string]any) (int, error) {
	if obj == nil {
		return 0, NewInvalidError("recognize.no_json")
	}
	next := FormData{}
	for k, v := range obj {
		if !catalog.KnownID(k) {
			continue
		}
		next[k] = stringifyValue(v)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = next
	return len(next), nil
}

// stringifyValue coerces a decoded JSON value into the string the form holds.
// The model is instructed to emit strings, but numbers and booleans show up in
// practice.
func stringifyValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
