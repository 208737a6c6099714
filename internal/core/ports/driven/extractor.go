package driven

import "context"

// TextExtractor pulls plain text out of uploaded document bytes.
// The only shipped implementation reads PDFs; the port exists so the
// extraction library can be swapped without touching ingestion.
type TextExtractor interface {
	// Extract returns the document's text. It does not trim or
	// validate the result; emptiness checks belong to the caller.
	Extract(ctx context.Context, data []byte) (string, error)
}
