package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestParseDocumentFieldsBareJSON(t *testing.T) {
	raw := `{"documentType":"invoice","vendor":"Acme","amount":500,"date":"2024-01-15","description":"Jan invoice"}`

	fields, err := ParseDocumentFields(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if fields.DocumentType != "invoice" {
		t.Errorf("expected documentType invoice, got %q", fields.DocumentType)
	}
	if fields.Vendor != "Acme" {
		t.Errorf("expected vendor Acme, got %q", fields.Vendor)
	}
	if fields.Amount == nil || *fields.Amount != 500 {
		t.Errorf("expected amount 500, got %v", fields.Amount)
	}
	if fields.Date != "2024-01-15" {
		t.Errorf("expected date 2024-01-15, got %q", fields.Date)
	}
	if len(fields.LineItems) != 0 {
		t.Errorf("expected no line items, got %d", len(fields.LineItems))
	}
}

func TestParseDocumentFieldsJSONFence(t *testing.T) {
	raw := "Here is the extracted data:\n```json\n" +
		`{"documentType":"receipt","vendor":"Cafe","date":"2024-02-02","description":"Lunch receipt"}` +
		"\n```\nLet me know if you need anything else."

	fields, err := ParseDocumentFields(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if fields.DocumentType != "receipt" {
		t.Errorf("expected documentType receipt, got %q", fields.DocumentType)
	}
	if fields.Amount != nil {
		t.Errorf("expected absent amount, got %v", *fields.Amount)
	}
}

func TestParseDocumentFieldsPlainFence(t *testing.T) {
	raw := "```\n" +
		`{"documentType":"contract","vendor":"LegalCo","date":"2023-11-01","description":"Service agreement"}` +
		"\n```"

	fields, err := ParseDocumentFields(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if fields.Vendor != "LegalCo" {
		t.Errorf("expected vendor LegalCo, got %q", fields.Vendor)
	}
}

func TestParseDocumentFieldsProseWrappedBraces(t *testing.T) {
	raw := `Sure! The document appears to be an invoice. {"documentType":"invoice","vendor":"Acme","date":"2024-01-15","description":"Jan invoice","lineItems":[{"description":"widgets","amount":250.5}]} Hope that helps.`

	fields, err := ParseDocumentFields(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(fields.LineItems) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(fields.LineItems))
	}
	if fields.LineItems[0].Amount != 250.5 {
		t.Errorf("expected line item amount 250.5, got %v", fields.LineItems[0].Amount)
	}
}

func TestParseDocumentFieldsNoJSONObject(t *testing.T) {
	_, err := ParseDocumentFields("I could not find any structured data in this document.")
	if !errors.Is(err, ErrNoJSONObject) {
		t.Fatalf("expected ErrNoJSONObject, got %v", err)
	}
}

func TestParseDocumentFieldsMissingRequired(t *testing.T) {
	raw := `{"documentType":"invoice","amount":12.5}`

	_, err := ParseDocumentFields(raw)
	if err == nil {
		t.Fatalf("expected error for missing fields")
	}
	if !strings.Contains(err.Error(), "missing required fields") {
		t.Fatalf("expected missing required fields error, got %v", err)
	}
	if !strings.Contains(err.Error(), "vendor") || !strings.Contains(err.Error(), "date") {
		t.Fatalf("expected vendor and date named, got %v", err)
	}
}

func TestParseDocumentFieldsInvalidJSON(t *testing.T) {
	if _, err := ParseDocumentFields(`{"documentType": "invoice",`); err == nil {
		t.Fatalf("expected error for truncated JSON")
	}
}

func TestDisabledClientFailsWithCredentialError(t *testing.T) {
	_, err := Disabled{}.ExtractDocumentFields(context.Background(), "some text")
	if !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
}
