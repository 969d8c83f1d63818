package recognition

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent"

// APIError is a non-success reply from the generative endpoint, carrying the
// server-supplied message when one was present.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("recognition API returned status %d", e.Status)
	}
	return fmt.Sprintf("recognition API returned status %d: %s", e.Status, e.Message)
}

// IsAuthError reports whether the failure looks like a credential problem, so
// the UI can re-open the key entry view.
func (e *APIError) IsAuthError() bool {
	if e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden {
		return true
	}
	return strings.Contains(strings.ToLower(e.Message), "api key")
}

// GeminiClient calls the generative-content endpoint. One request per
// invocation, no retry.
type GeminiClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewGeminiClient builds a client. An empty endpoint selects the production
// URL; tests point it at a local server.
func NewGeminiClient(endpoint string) *GeminiClient {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &GeminiClient{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type generatePart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateRequest struct {
	Contents         []generateContent `json:"contents"`
	GenerationConfig generationConfig  `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends prompt plus the bitmap as an inline base64 payload and
// returns the first text segment of the first candidate.
func (c *GeminiClient) Generate(ctx context.Context, apiKey, prompt string, image []byte, mimeType string) (string, error) {
	req := generateRequest{
		Contents: []generateContent{{
			Parts: []generatePart{
				{Text: prompt},
				{InlineData: &inlineData{
					MIMEType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(image),
				}},
			},
		}},
		GenerationConfig: generationConfig{Temperature: 0.1, MaxOutputTokens: 2048},
	}
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint+"?key="+url.QueryEscape(apiKey), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("recognition request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var decoded generateResponse
	if resp.StatusCode != http.StatusOK {
		_ = json.Unmarshal(respBody, &decoded)
		return "", &APIError{Status: resp.StatusCode, Message: decoded.Error.Message}
	}
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", &APIError{Status: resp.StatusCode, Message: "response contained no candidates"}
	}
	return decoded.Candidates[0].Content.Parts[0].Text, nil
}

// ExtractJSONObject scans text for the first balanced {...} substring and
// decodes it. Model replies wrap JSON in prose or code fences more often than
// not, so a plain top-level Unmarshal is not enough.
func ExtractJSONObject(text string) (map[string]any, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return nil, false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				var obj map[string]any
				if err := json.Unmarshal([]byte(text[start:i+1]), &obj); err != nil {
					return nil, false
				}
				return obj, true
			}
		}
	}
	return nil, false
}
