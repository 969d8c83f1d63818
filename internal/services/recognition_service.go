package services

import (
	"context"
	"errors"
	"sync"

	"github.com/touka-study/touka-entry/internal/catalog"
	"github.com/touka-study/touka-entry/internal/recognition"
)

const (
	EngineLocal  = "local"
	EngineRemote = "remote"

	ModeText       = "text"
	ModeStructured = "structured"
)

// LocalEngine is the on-host OCR strategy.
type LocalEngine interface {
	Recognize(ctx context.Context, image []byte, onProgress func(int)) (string, error)
}

// RemoteEngine is the generative-endpoint strategy.
type RemoteEngine interface {
	Generate(ctx context.Context, apiKey, prompt string, image []byte, mimeType string) (string, error)
}

// CredentialStore supplies the remote API key.
type CredentialStore interface {
	APIKey() (string, error)
}

// FormLoader receives structured extraction results.
type FormLoader interface {
	LoadStructured(obj map[string]any) (int, error)
}

type RecognizeRequest struct {
	Engine   string
	Mode     string
	Image    []byte
	MIMEType string
}

type RecognizeResult struct {
	Text    string            `json:"text,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
	Applied int               `json:"applied,omitempty"`
}

// RecognitionService selects a strategy per request and guards against
// concurrent submissions: only one recognition call may be in flight at a
// time, later calls are rejected rather than queued.
type RecognitionService struct {
	mu       sync.Mutex
	busy     bool
	progress recognition.Tracker

	local  LocalEngine
	remote RemoteEngine
	creds  CredentialStore
	form   FormLoader
}

func NewRecognitionService(local LocalEngine, remote RemoteEngine, creds CredentialStore, form FormLoader) *RecognitionService {
	return &RecognitionService{local: local, remote: remote, creds: creds, form: form}
}

// Progress returns the latest progress value of the running (or last) local
// recognition call.
func (s *RecognitionService) Progress() int {
	return s.progress.Value()
}

func (s *RecognitionService) acquire() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return NewConflictError("recognize.busy")
	}
	s.busy = true
	return nil
}

func (s *RecognitionService) release() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

// Recognize runs one recognition pass over the given bitmap. In structured
// mode a successful extraction replaces the form state wholesale; a reply
// without a parseable JSON object is a soft failure that leaves the form
// untouched.
func (s *RecognitionService) Recognize(ctx context.Context, req RecognizeRequest) (*RecognizeResult, error) {
	if len(req.Image) == 0 {
		return nil, NewInvalidError("source.none")
	}
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()

	switch req.Engine {
	case EngineLocal:
		return s.recognizeLocal(ctx, req)
	case EngineRemote:
		return s.recognizeRemote(ctx, req)
	default:
		return nil, NewInvalidError("unsupported engine: " + req.Engine)
	}
}

func (s *RecognitionService) recognizeLocal(ctx context.Context, req RecognizeRequest) (*RecognizeResult, error) {
	s.progress.Reset()
	text, err := s.local.Recognize(ctx, req.Image, s.progress.Report)
	if err != nil {
		return nil, NewInvalidError("recognize.failed")
	}
	return &RecognizeResult{Text: text}, nil
}

func (s *RecognitionService) recognizeRemote(ctx context.Context, req RecognizeRequest) (*RecognizeResult, error) {
	key, err := s.creds.APIKey()
	if err != nil {
		return nil, err
	}
	if key == "" {
		return nil, NewUnauthorizedError("apikey.missing")
	}

	var prompt string
	switch req.Mode {
	case ModeText, "":
		prompt = recognition.TextPrompt()
	case ModeStructured:
		prompt = recognition.StructuredPrompt(catalog.Fields())
	default:
		return nil, NewInvalidError("unsupported mode: " + req.Mode)
	}

	text, err := s.remote.Generate(ctx, key, prompt, req.Image, req.MIMEType)
	if err != nil {
		var apiErr *recognition.APIError
		if errors.As(err, &apiErr) {
			if apiErr.IsAuthError() {
				return nil, NewUnauthorizedError("apikey.rejected")
			}
			if apiErr.Message != "" {
				return nil, NewBadGatewayError(apiErr.Message)
			}
			return nil, NewBadGatewayError("recognize.api_error")
		}
		return nil, NewBadGatewayError("recognize.network")
	}

	if req.Mode != ModeStructured {
		return &RecognizeResult{Text: text}, nil
	}

	obj, ok := recognition.ExtractJSONObject(text)
	if !ok {
		// Soft failure: no crash, form untouched, text mode suggested.
		return nil, NewInvalidError("recognize.no_json")
	}
	applied, err := s.form.LoadStructured(obj)
	if err != nil {
		return nil, err
	}
	fields := make(map[string]string, len(obj))
	for k, v := range obj {
		if catalog.KnownID(k) {
			fields[k] = stringifyValue(v)
		}
	}
	return &RecognizeResult{Fields: fields, Applied: applied}, nil
}
