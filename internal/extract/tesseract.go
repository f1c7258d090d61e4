package extract

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// TesseractEngine implements OCREngine with the gosseract client.
type TesseractEngine struct {
	language string
}

// NewTesseractEngine constructs a Tesseract-backed OCR engine for the given
// language (e.g. "por").
func NewTesseractEngine(language string) *TesseractEngine {
	return &TesseractEngine{language: language}
}

// Recognize runs OCR over the image file at path.
func (e *TesseractEngine) Recognize(ctx context.Context, path string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	client := gosseract.NewClient()
	defer client.Close()

	if e.language != "" {
		if err := client.SetLanguage(e.language); err != nil {
			return "", fmt.Errorf("set language: %w", err)
		}
	}
	if err := client.SetImage(path); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return text, nil
}

var _ OCREngine = (*TesseractEngine)(nil)
