package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type scriptedClient struct {
	responses []string
	errs      []error
	prompts   []string
}

func (c *scriptedClient) Complete(ctx context.Context, prompt string) (string, error) {
	i := len(c.prompts)
	c.prompts = append(c.prompts, prompt)
	var err error
	if i < len(c.errs) {
		err = c.errs[i]
	}
	var resp string
	if i < len(c.responses) {
		resp = c.responses[i]
	}
	return resp, err
}

func TestReformatAndExplain(t *testing.T) {
	client := &scriptedClient{responses: []string{" Total R$ 100,00 ", "Explicação do texto."}}
	enricher := NewEnricher(client)

	formatted, explanation, err := enricher.ReformatAndExplain(context.Background(), "TotalR$100,00")
	if err != nil {
		t.Fatalf("reformat and explain: %v", err)
	}
	if formatted != "Total R$ 100,00" {
		t.Fatalf("expected trimmed formatted text, got %q", formatted)
	}
	if explanation != "Explicação do texto." {
		t.Fatalf("expected explanation, got %q", explanation)
	}
	if len(client.prompts) != 2 {
		t.Fatalf("expected two completions, got %d", len(client.prompts))
	}
	// The explanation prompt must be built on the corrected text, not the raw input.
	if !strings.Contains(client.prompts[1], "Total R$ 100,00") {
		t.Fatalf("explanation prompt not grounded on formatted text: %q", client.prompts[1])
	}
}

func TestReformatFailureIsFatal(t *testing.T) {
	client := &scriptedClient{errs: []error{errors.New("api down")}}
	enricher := NewEnricher(client)

	if _, _, err := enricher.ReformatAndExplain(context.Background(), "x"); err == nil {
		t.Fatalf("expected reformat failure to propagate")
	}
}

func TestExplainFailureIsFatal(t *testing.T) {
	client := &scriptedClient{errs: []error{errors.New("api down")}}
	enricher := NewEnricher(client)

	if _, err := enricher.Explain(context.Background(), "x"); err == nil {
		t.Fatalf("expected explain failure to propagate")
	}
}

func TestAnswer(t *testing.T) {
	client := &scriptedClient{responses: []string{"O valor total é R$ 100,00."}}
	enricher := NewEnricher(client)

	answer, err := enricher.Answer(context.Background(), "Total R$ 100,00", "Qual o valor total?")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if answer != "O valor total é R$ 100,00." {
		t.Fatalf("unexpected answer %q", answer)
	}
	if !strings.Contains(client.prompts[0], "Total R$ 100,00") || !strings.Contains(client.prompts[0], "Qual o valor total?") {
		t.Fatalf("answer prompt missing document text or question: %q", client.prompts[0])
	}
}

func TestAnswerEmptyCompletionFallsBack(t *testing.T) {
	client := &scriptedClient{errs: []error{ErrEmptyCompletion}}
	enricher := NewEnricher(client)

	answer, err := enricher.Answer(context.Background(), "doc", "pergunta?")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if answer != "Nenhuma resposta gerada." {
		t.Fatalf("expected fallback answer, got %q", answer)
	}
}

func TestAnswerBlankCompletionFallsBack(t *testing.T) {
	client := &scriptedClient{responses: []string{"   "}}
	enricher := NewEnricher(client)

	answer, err := enricher.Answer(context.Background(), "doc", "pergunta?")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if answer != "Nenhuma resposta gerada." {
		t.Fatalf("expected fallback answer, got %q", answer)
	}
}

func TestAnswerAPIErrorPropagates(t *testing.T) {
	client := &scriptedClient{errs: []error{errors.New("api down")}}
	enricher := NewEnricher(client)

	if _, err := enricher.Answer(context.Background(), "doc", "pergunta?"); err == nil {
		t.Fatalf("expected client error to propagate")
	}
}
