package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Kind classifies an uploaded file and drives which pipeline branch runs.
type Kind string

const (
	KindPDF   Kind = "pdf"
	KindImage Kind = "image"
)

// ErrNoText is returned when a file yields no usable text.
var ErrNoText = errors.New("no text extracted")

// OCREngine recognizes text in an image file.
type OCREngine interface {
	Recognize(ctx context.Context, path string) (string, error)
}

// Service extracts normalized plain text from uploaded files. PDFs are read
// through their embedded text layer; everything else goes through OCR.
type Service struct {
	OCR OCREngine
}

// NewService constructs an extraction service backed by the given OCR engine.
func NewService(ocr OCREngine) *Service {
	return &Service{OCR: ocr}
}

// Extract returns the text content of the file at path and its kind. The file
// is only read, never moved or deleted.
func (s *Service) Extract(ctx context.Context, path string) (string, Kind, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}

	kind := KindForPath(path)
	switch kind {
	case KindPDF:
		text, err := extractPDF(path)
		if err != nil {
			return "", kind, err
		}
		return text, kind, nil
	default:
		text, err := s.extractImage(ctx, path)
		if err != nil {
			return "", kind, err
		}
		return text, kind, nil
	}
}

// KindForPath classifies a file by extension.
func KindForPath(path string) Kind {
	if strings.ToLower(filepath.Ext(path)) == ".pdf" {
		return KindPDF
	}
	return KindImage
}

func extractPDF(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf text layer: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("pdf text layer: %w", err)
	}

	text := strings.TrimSpace(normalizeParsedText(buf.String()))
	if text == "" {
		return "", fmt.Errorf("%w from pdf", ErrNoText)
	}
	return text, nil
}

func (s *Service) extractImage(ctx context.Context, path string) (string, error) {
	raw, err := s.OCR.Recognize(ctx, path)
	if err != nil {
		return "", fmt.Errorf("ocr: %w", err)
	}
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", fmt.Errorf("%w from image", ErrNoText)
	}
	return text, nil
}

// Parsed PDF text layers frequently glue adjacent words together
// ("TotalR$100" style artifacts). Splitting on a lowercase letter followed
// by an uppercase one recovers most word boundaries.
var gluedWords = regexp.MustCompile(`([a-z])([A-Z])`)

func normalizeParsedText(text string) string {
	return gluedWords.ReplaceAllString(text, "$1 $2")
}
