// Package pdf provides the text extractor for PDF files.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// Extractor extracts plain text from PDF bytes. It is stateless and
// safe for concurrent use.
type Extractor struct{}

// NewExtractor creates a new PDF text extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses the PDF and returns its plain text across all pages.
// Scanned PDFs without a text layer come back empty, not as an error;
// callers decide what empty means.
func (e *Extractor) Extract(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, content); err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}
	return buf.String(), nil
}
