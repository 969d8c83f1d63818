// Package recognition implements the two interchangeable recognition
// strategies consuming the current source bitmap: a local Tesseract engine
// (plain text plus progress ticks) and the remote generative endpoint (text or
// catalog-keyed JSON).
//
// The local strategy wraps Tesseract via gosseract and requires the engine and
// the target language data to be installed on the host (tesseract-ocr and
// tesseract-ocr-jpn on Debian/Ubuntu).
package recognition

import (
	"context"
	"errors"

	"github.com/otiai10/gosseract/v2"
)

// ErrRecognitionFailed is the generic local-engine failure. No partial text is
// ever returned alongside it.
var ErrRecognitionFailed = errors.New("recognition failed")

// TesseractEngine runs the local OCR engine over a bitmap for a fixed target
// language.
type TesseractEngine struct {
	lang string
}

func NewTesseractEngine(lang string) *TesseractEngine {
	if lang == "" {
		lang = "jpn"
	}
	return &TesseractEngine{lang: lang}
}

// Recognize extracts plain text from the image. onProgress receives coarse
// ticks in [0,100]; gosseract exposes no native progress stream, so ticks mark
// the stage boundaries and completion.
func (e *TesseractEngine) Recognize(ctx context.Context, image []byte, onProgress func(int)) (string, error) {
	if onProgress == nil {
		onProgress = func(int) {}
	}
	onProgress(0)

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.lang); err != nil {
		return "", ErrRecognitionFailed
	}
	onProgress(20)
	if err := client.SetImageFromBytes(image); err != nil {
		return "", ErrRecognitionFailed
	}
	onProgress(40)
	if err := ctx.Err(); err != nil {
		return "", err
	}

	text, err := client.Text()
	if err != nil {
		return "", ErrRecognitionFailed
	}
	onProgress(100)
	return text, nil
}
