package llm

import (
	"context"
	"errors"
)

// Client abstracts LLM providers for structured document extraction.
type Client interface {
	ExtractDocumentFields(ctx context.Context, text string) (*DocumentFields, error)
}

// LineItem is a single extracted line entry.
type LineItem struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// DocumentFields is the fixed schema the model is asked to produce.
// Amount and LineItems are optional; the rest are required.
type DocumentFields struct {
	DocumentType string     `json:"documentType"`
	Vendor       string     `json:"vendor"`
	Amount       *float64   `json:"amount,omitempty"`
	Date         string     `json:"date"`
	Description  string     `json:"description"`
	LineItems    []LineItem `json:"lineItems,omitempty"`
}

// ErrMissingCredential is returned when extraction is attempted without an
// API key configured.
var ErrMissingCredential = errors.New("OPENAI_API_KEY is required for structured extraction")

// Disabled is the client used when no API credential is configured. Uploads
// of non-PDF files still work; the first structured extraction fails.
type Disabled struct{}

// ExtractDocumentFields always fails with the missing-credential error.
func (Disabled) ExtractDocumentFields(ctx context.Context, text string) (*DocumentFields, error) {
	_ = ctx
	_ = text
	return nil, ErrMissingCredential
}

var _ Client = Disabled{}
