package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func completionResponse(content string) map[string]any {
	return map[string]any{
		"id":    "chatcmpl-test",
		"model": "gpt-4o-mini",
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
		"usage": map[string]any{
			"prompt_tokens":     12,
			"completion_tokens": 34,
			"total_tokens":      46,
		},
	}
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient("", "gpt-4o-mini", ""); err == nil {
		t.Fatalf("expected error for missing api key")
	}
	if _, err := NewClient("sk-test", "", ""); err == nil {
		t.Fatalf("expected error for missing model")
	}
	c, err := NewClient("sk-test", "gpt-4o-mini", "")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c.baseURL != defaultBaseURL {
		t.Errorf("expected default base URL, got %q", c.baseURL)
	}
}

func TestExtractDocumentFields(t *testing.T) {
	var gotPath, gotAuth string
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(completionResponse(
			`{"documentType":"invoice","vendor":"Acme","amount":500,"date":"2024-01-15","description":"January invoice"}`,
		))
	}))
	defer srv.Close()

	c, err := NewClient("sk-test", "gpt-4o-mini", srv.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	fields, err := c.ExtractDocumentFields(context.Background(), "Invoice #42 from Acme, total $500")
	if err != nil {
		t.Fatalf("ExtractDocumentFields: %v", err)
	}

	if gotPath != "/chat/completions" {
		t.Errorf("expected /chat/completions, got %q", gotPath)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}
	if gotReq.Model != "gpt-4o-mini" {
		t.Errorf("expected model in request, got %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 1 || !strings.Contains(gotReq.Messages[0].Content, "Invoice #42") {
		t.Errorf("expected document text in prompt, got %+v", gotReq.Messages)
	}
	if fields.Vendor != "Acme" {
		t.Errorf("expected vendor Acme, got %q", fields.Vendor)
	}
	if fields.Amount == nil || *fields.Amount != 500 {
		t.Errorf("expected amount 500, got %v", fields.Amount)
	}
}

func TestExtractDocumentFieldsFencedReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(completionResponse(
			"```json\n{\"documentType\":\"receipt\",\"vendor\":\"Cafe\",\"date\":\"2024-02-02\",\"description\":\"Lunch\"}\n```",
		))
	}))
	defer srv.Close()

	c, err := NewClient("sk-test", "gpt-4o-mini", srv.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	fields, err := c.ExtractDocumentFields(context.Background(), "coffee and sandwich")
	if err != nil {
		t.Fatalf("ExtractDocumentFields: %v", err)
	}
	if fields.DocumentType != "receipt" {
		t.Errorf("expected documentType receipt, got %q", fields.DocumentType)
	}
}

func TestExtractDocumentFieldsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "Incorrect API key provided", "type": "invalid_request_error"},
		})
	}))
	defer srv.Close()

	c, err := NewClient("sk-bad", "gpt-4o-mini", srv.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	_, err = c.ExtractDocumentFields(context.Background(), "text")
	if err == nil || !strings.Contains(err.Error(), "Incorrect API key") {
		t.Fatalf("expected api error surfaced, got %v", err)
	}
}

func TestExtractDocumentFieldsMissingChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"id": "chatcmpl-test", "choices": []any{}})
	}))
	defer srv.Close()

	c, err := NewClient("sk-test", "gpt-4o-mini", srv.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	_, err = c.ExtractDocumentFields(context.Background(), "text")
	if err == nil || !strings.Contains(err.Error(), "missing choices") {
		t.Fatalf("expected missing choices error, got %v", err)
	}
}
