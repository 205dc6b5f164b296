package extract

import "testing"

func TestTextEmptyInput(t *testing.T) {
	if _, err := Text(nil); err == nil {
		t.Fatalf("expected error for empty input")
	}
}

func TestTextMalformedPDF(t *testing.T) {
	if _, err := Text([]byte("this is not a pdf")); err == nil {
		t.Fatalf("expected error for malformed pdf")
	}
}

func TestTextTruncatedHeader(t *testing.T) {
	// A bare header with no xref table must fail, not panic.
	if _, err := Text([]byte("%PDF-1.4\n")); err == nil {
		t.Fatalf("expected error for truncated pdf")
	}
}
