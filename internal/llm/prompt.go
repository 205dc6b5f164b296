package llm

// BuildPrompt composes the fixed extraction instruction for a document's text.
// The model is asked for bare JSON, but responses regularly arrive wrapped in
// prose or code fences; ParseDocumentFields recovers from both.
func BuildPrompt(text string) string {
	return `You are a document analyst. Extract structured data from the document text below.

Respond with ONLY a JSON object, no surrounding prose, using exactly these keys:
- "documentType": string, e.g. "invoice", "receipt", "contract", "report"
- "vendor": string, the issuing company or party
- "amount": number, the total amount if present (omit if none)
- "date": string, ISO date (YYYY-MM-DD)
- "description": string, one concise sentence describing the document
- "lineItems": array of {"description": string, "amount": number} (omit if none)

Document text:
` + text
}
