package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const noAnswerFallback = "Nenhuma resposta gerada."

// Enricher wraps the chat-completion client with the three document
// operations: reformat+explain (PDF uploads), explain (image uploads) and
// question answering.
type Enricher struct {
	Client Client
}

// NewEnricher constructs an Enricher on the shared client.
func NewEnricher(client Client) *Enricher {
	return &Enricher{Client: client}
}

// ReformatAndExplain first corrects word spacing and structure of text parsed
// from a PDF without altering its content, then explains the corrected text.
// Any failure is fatal to the upload.
func (e *Enricher) ReformatAndExplain(ctx context.Context, rawText string) (string, string, error) {
	formatted, err := e.Client.Complete(ctx, reformatPrompt(rawText))
	if err != nil {
		return "", "", fmt.Errorf("reformat: %w", err)
	}
	formatted = strings.TrimSpace(formatted)

	explanation, err := e.Client.Complete(ctx, explainPrompt(formatted))
	if err != nil {
		return "", "", fmt.Errorf("explain: %w", err)
	}
	return formatted, strings.TrimSpace(explanation), nil
}

// Explain contextualizes OCR output. Failures are fatal to the upload.
func (e *Enricher) Explain(ctx context.Context, rawText string) (string, error) {
	explanation, err := e.Client.Complete(ctx, explainPrompt(rawText))
	if err != nil {
		return "", fmt.Errorf("explain: %w", err)
	}
	return strings.TrimSpace(explanation), nil
}

// Answer responds to a question grounded on previously stored document text.
// An empty completion degrades to a fixed fallback string instead of failing.
func (e *Enricher) Answer(ctx context.Context, documentText, question string) (string, error) {
	answer, err := e.Client.Complete(ctx, answerPrompt(documentText, question))
	if err != nil {
		if errors.Is(err, ErrEmptyCompletion) {
			return noAnswerFallback, nil
		}
		return "", fmt.Errorf("answer: %w", err)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return noAnswerFallback, nil
	}
	return answer, nil
}
