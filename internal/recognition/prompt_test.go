package recognition

import (
	"strings"
	"testing"

	"github.com/touka-study/touka-entry/internal/catalog"
)

func TestStructuredPromptCoversCatalog(t *testing.T) {
	fields := catalog.Fields()
	prompt := StructuredPrompt(fields)
	for _, f := range fields {
		if !strings.Contains(prompt, `"`+f.ID+`"`) {
			t.Errorf("prompt missing field id %q", f.ID)
		}
		for _, choice := range f.Choices {
			if !strings.Contains(prompt, choice) {
				t.Errorf("prompt missing choice %q of field %q", choice, f.ID)
			}
		}
	}
	if !strings.Contains(prompt, "空文字列") {
		t.Error("prompt must instruct empty string for unreadable fields")
	}
}

func TestTextPromptNotEmpty(t *testing.T) {
	if TextPrompt() == "" {
		t.Fatal("empty text prompt")
	}
}
