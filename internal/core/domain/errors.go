package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNoTextExtracted indicates a PDF produced no text (empty or
	// whitespace-only extraction). Client error, not retryable.
	ErrNoTextExtracted = errors.New("no text found in PDF")

	// ErrNoChunks indicates chunking produced zero chunks. Only
	// possible when extraction already returned nothing, but checked
	// independently.
	ErrNoChunks = errors.New("failed to generate chunks from PDF text")

	// ErrModelServerDown indicates the model server is unreachable.
	// Fatal for the whole answer attempt: no fallback candidate is
	// tried, because no model can be reached either.
	ErrModelServerDown = errors.New("Cannot connect to Ollama. Is Ollama running? Start it with: ollama serve")

	// ErrGenerateTimeout indicates a generation request exceeded its
	// deadline. Advances the fallback list; fatal only on the last
	// candidate.
	ErrGenerateTimeout = errors.New("Ollama request timed out. The model might be too slow or not responding")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not available in
	// the current wiring (e.g. no document registry configured).
	ErrNotImplemented = errors.New("not implemented")
)

// ModelError is a non-success reply from the model server: an error
// status, or a success status with a malformed payload.
type ModelError struct {
	// Model is the candidate that produced the failure.
	Model string

	// Status is the HTTP status the server answered with.
	Status int

	// Message is the server's error text (the "error" payload field
	// when present, otherwise a truncated raw body), or a
	// description of the malformed payload.
	Message string
}

func (e *ModelError) Error() string {
	if e.Status >= 300 {
		return fmt.Sprintf("Ollama returned status %d: %s", e.Status, e.Message)
	}
	return e.Message
}

// IsResourceExhausted reports whether error text describes a
// resource-exhaustion condition (model too large for available
// memory). The substring heuristic is deliberately preserved from the
// observed server behaviour, including its tendency to match
// unrelated errors mentioning "buffer"; keep every classification
// decision behind this single function.
func IsResourceExhausted(msg string) bool {
	m := strings.ToLower(msg)
	return strings.Contains(m, "unable to allocate") || strings.Contains(m, "buffer")
}
