package documents

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"paggo-backend/internal/extract"
	"paggo-backend/internal/shared/storage/object"
	"paggo-backend/internal/shared/telemetry"
)

// Extractor turns a stored file into plain text plus its kind.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, extract.Kind, error)
}

// Enricher is the LLM-driven reformat/explain/answer capability.
type Enricher interface {
	ReformatAndExplain(ctx context.Context, rawText string) (formatted string, explanation string, err error)
	Explain(ctx context.Context, rawText string) (string, error)
	Answer(ctx context.Context, documentText, question string) (string, error)
}

// Service orchestrates the upload pipeline and document operations.
type Service struct {
	Store     object.FileStore
	Extractor Extractor
	Enricher  Enricher
	Repo      Repo
}

// Process runs the upload pipeline: persist the file, extract text, enrich
// it, and record the document. The pipeline is strictly sequential and a
// document row only appears once every stage succeeded. The stored file is
// left behind on late failures; cleanup is an out-of-band concern.
func (s *Service) Process(ctx context.Context, userID, originalName string, r io.Reader) (Document, error) {
	if strings.TrimSpace(originalName) == "" {
		return Document{}, ErrInvalidInput
	}

	storedName, path, err := s.Store.Save(ctx, originalName, r)
	if err != nil {
		return Document{}, fmt.Errorf("store upload: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		return Document{}, fmt.Errorf("%w: stored file unreadable: %s", ErrInvalidInput, err)
	}

	text, kind, err := s.Extractor.Extract(ctx, path)
	if err != nil {
		return Document{}, fmt.Errorf("extract document: %w", err)
	}

	var storedText, explanation string
	switch kind {
	case extract.KindPDF:
		storedText, explanation, err = s.Enricher.ReformatAndExplain(ctx, text)
		if err != nil {
			return Document{}, fmt.Errorf("enrich document: %w", err)
		}
	default:
		// OCR output is stored verbatim; only the explanation comes from
		// the model.
		storedText = text
		explanation, err = s.Enricher.Explain(ctx, text)
		if err != nil {
			return Document{}, fmt.Errorf("enrich document: %w", err)
		}
	}

	doc := Document{
		ID:            uuid.NewString(),
		UserID:        userID,
		Filename:      storedName,
		ExtractedText: storedText,
		Explanation:   explanation,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, fmt.Errorf("persist document: %w", err)
	}

	telemetry.Info("document.processed", map[string]any{
		"document_id": doc.ID,
		"user_id":     userID,
		"kind":        string(kind),
	})
	return doc, nil
}

// Ask answers a question grounded on a stored document's text.
func (s *Service) Ask(ctx context.Context, userID, documentID, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", ErrInvalidInput
	}

	doc, err := s.Repo.GetByID(ctx, userID, documentID)
	if err != nil {
		return "", err
	}

	return s.Enricher.Answer(ctx, doc.ExtractedText, question)
}

// List returns the user's documents, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]Document, error) {
	return s.Repo.ListByUser(ctx, userID)
}

// Delete removes a document if the caller owns it and reports the count.
// The uploaded file stays on disk.
func (s *Service) Delete(ctx context.Context, userID, documentID string) (int64, error) {
	return s.Repo.Delete(ctx, userID, documentID)
}
