package documents

import "time"

// Document is a processed upload owned by a user. ExtractedText holds the
// LLM-reformatted text for PDFs and the verbatim OCR output for images.
type Document struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Filename      string    `json:"filename"`
	ExtractedText string    `json:"extractedText"`
	Explanation   string    `json:"explanation"`
	CreatedAt     time.Time `json:"createdAt"`
}
