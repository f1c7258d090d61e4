package documents

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"paggo-backend/internal/extract"
	localstore "paggo-backend/internal/shared/storage/object/local"
)

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) Extract(ctx context.Context, path string) (string, extract.Kind, error) {
	return f.text, extract.KindForPath(path), f.err
}

type fakeEnricher struct {
	formatted    string
	explanation  string
	answer       string
	err          error
	reformatHits int
	explainHits  int
}

func (f *fakeEnricher) ReformatAndExplain(ctx context.Context, rawText string) (string, string, error) {
	f.reformatHits++
	return f.formatted, f.explanation, f.err
}

func (f *fakeEnricher) Explain(ctx context.Context, rawText string) (string, error) {
	f.explainHits++
	return f.explanation, f.err
}

func (f *fakeEnricher) Answer(ctx context.Context, documentText, question string) (string, error) {
	return f.answer, f.err
}

func testPipeline(t *testing.T, extractor *fakeExtractor, enricher *fakeEnricher) *Service {
	t.Helper()
	store, err := localstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return &Service{
		Store:     store,
		Extractor: extractor,
		Enricher:  enricher,
		Repo:      NewMemoryRepo(),
	}
}

func TestProcessPDFStoresFormattedText(t *testing.T) {
	enricher := &fakeEnricher{formatted: "Total R$ 100,00", explanation: "Uma fatura com valor total de cem reais."}
	svc := testPipeline(t, &fakeExtractor{text: "TotalR$100,00"}, enricher)

	doc, err := svc.Process(context.Background(), "user-1", "invoice.pdf", strings.NewReader("%PDF-1.4"))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if doc.ExtractedText != "Total R$ 100,00" {
		t.Fatalf("expected formatted text stored, got %q", doc.ExtractedText)
	}
	if doc.Explanation != "Uma fatura com valor total de cem reais." {
		t.Fatalf("unexpected explanation %q", doc.Explanation)
	}
	if enricher.reformatHits != 1 || enricher.explainHits != 0 {
		t.Fatalf("pdf branch must call reformat exactly once, got reformat=%d explain=%d", enricher.reformatHits, enricher.explainHits)
	}

	stored, err := svc.Repo.GetByID(context.Background(), "user-1", doc.ID)
	if err != nil {
		t.Fatalf("get stored: %v", err)
	}
	if stored.ExtractedText != doc.ExtractedText {
		t.Fatalf("persisted text mismatch")
	}
}

func TestProcessImageStoresOCRVerbatim(t *testing.T) {
	enricher := &fakeEnricher{explanation: "Um recibo de compra."}
	svc := testPipeline(t, &fakeExtractor{text: "Obrigado pela compra"}, enricher)

	doc, err := svc.Process(context.Background(), "user-1", "receipt.png", strings.NewReader("pixels"))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if doc.ExtractedText != "Obrigado pela compra" {
		t.Fatalf("image branch must store OCR output verbatim, got %q", doc.ExtractedText)
	}
	if doc.Explanation == "" {
		t.Fatalf("expected non-empty explanation")
	}
	if enricher.reformatHits != 0 || enricher.explainHits != 1 {
		t.Fatalf("image branch must call explain exactly once, got reformat=%d explain=%d", enricher.reformatHits, enricher.explainHits)
	}
}

func TestProcessExtractionFailureCreatesNoDocument(t *testing.T) {
	svc := testPipeline(t, &fakeExtractor{err: extract.ErrNoText}, &fakeEnricher{})

	_, err := svc.Process(context.Background(), "user-1", "blank.png", strings.NewReader("pixels"))
	if err == nil {
		t.Fatalf("expected extraction failure")
	}
	docs, _ := svc.Repo.ListByUser(context.Background(), "user-1")
	if len(docs) != 0 {
		t.Fatalf("expected no document rows after failed extraction, got %d", len(docs))
	}
}

func TestProcessEnrichmentFailureCreatesNoDocument(t *testing.T) {
	svc := testPipeline(t, &fakeExtractor{text: "text"}, &fakeEnricher{err: errors.New("llm down")})

	_, err := svc.Process(context.Background(), "user-1", "doc.pdf", strings.NewReader("%PDF-1.4"))
	if err == nil {
		t.Fatalf("expected enrichment failure")
	}
	docs, _ := svc.Repo.ListByUser(context.Background(), "user-1")
	if len(docs) != 0 {
		t.Fatalf("expected no document rows after failed enrichment, got %d", len(docs))
	}
}

func TestProcessRequiresFilename(t *testing.T) {
	svc := testPipeline(t, &fakeExtractor{text: "x"}, &fakeEnricher{})

	_, err := svc.Process(context.Background(), "user-1", "  ", strings.NewReader("x"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDeleteForeignDocumentIsSilentNoop(t *testing.T) {
	svc := testPipeline(t, &fakeExtractor{text: "x"}, &fakeEnricher{explanation: "e"})

	doc, err := svc.Process(context.Background(), "owner", "receipt.png", strings.NewReader("pixels"))
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	deleted, err := svc.Delete(context.Background(), "intruder", doc.ID)
	if err != nil {
		t.Fatalf("foreign delete must not error: %v", err)
	}
	if deleted != 0 {
		t.Fatalf("foreign delete must remove nothing, got %d", deleted)
	}

	if _, err := svc.Repo.GetByID(context.Background(), "owner", doc.ID); err != nil {
		t.Fatalf("document must survive foreign delete: %v", err)
	}

	deleted, err = svc.Delete(context.Background(), "owner", doc.ID)
	if err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected owner delete count 1, got %d", deleted)
	}
}

func TestAskForeignDocumentNotFound(t *testing.T) {
	svc := testPipeline(t, &fakeExtractor{text: "x"}, &fakeEnricher{explanation: "e", answer: "a"})

	doc, err := svc.Process(context.Background(), "owner", "receipt.png", strings.NewReader("pixels"))
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	if _, err := svc.Ask(context.Background(), "intruder", doc.ID, "Qual o valor total?"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign ask, got %v", err)
	}
	if _, err := svc.Ask(context.Background(), "owner", "missing-id", "Qual o valor total?"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing id, got %v", err)
	}
}

func TestAskAnswersFromStoredText(t *testing.T) {
	svc := testPipeline(t, &fakeExtractor{text: "x"}, &fakeEnricher{explanation: "e", answer: "O valor total é R$ 100,00."})

	doc, err := svc.Process(context.Background(), "owner", "receipt.png", strings.NewReader("pixels"))
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	answer, err := svc.Ask(context.Background(), "owner", doc.ID, "Qual o valor total?")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if answer == "" {
		t.Fatalf("expected non-empty answer")
	}
}

func TestListNewestFirst(t *testing.T) {
	repo := NewMemoryRepo()
	svc := &Service{Repo: repo}

	base := time.Now().UTC()
	for i, id := range []string{"a", "b", "c"} {
		repo.Create(context.Background(), Document{
			ID:        id,
			UserID:    "user-1",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	repo.Create(context.Background(), Document{ID: "other", UserID: "user-2", CreatedAt: base})

	docs, err := svc.List(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(docs))
	}
	if docs[0].ID != "c" || docs[1].ID != "b" || docs[2].ID != "a" {
		t.Fatalf("expected newest first, got %s %s %s", docs[0].ID, docs[1].ID, docs[2].ID)
	}
}
