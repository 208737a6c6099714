package domain

import "fmt"

// Chunk represents a retrievable unit of extracted document text.
// Chunks are created during ingestion and destroyed only by a full
// store clear; they are never updated in place.
type Chunk struct {
	// ID is the deterministic identifier "<filename>_<index>".
	ID string

	// Text is the chunk's character window of the source text.
	Text string

	// Source is the filename the chunk was extracted from.
	Source string

	// Index is the ordinal position within the source document.
	Index int
}

// ChunkID derives the deterministic chunk identifier for a source
// filename and chunk position. IDs are unique within a store.
func ChunkID(source string, index int) string {
	return fmt.Sprintf("%s_%d", source, index)
}

// NewChunk builds a chunk with its derived ID.
func NewChunk(source string, index int, text string) Chunk {
	return Chunk{
		ID:     ChunkID(source, index),
		Text:   text,
		Source: source,
		Index:  index,
	}
}

// Metadata returns the key-value pairs stored alongside the chunk's
// vector, used to cite sources on retrieval.
func (c Chunk) Metadata() map[string]any {
	return map[string]any{
		"source": c.Source,
		"chunk":  c.Index,
	}
}
