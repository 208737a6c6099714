package domain

// SourceRef cites the origin of one retrieved chunk.
type SourceRef struct {
	// Source is the originating filename, "Unknown" when the
	// retrieval metadata did not carry one.
	Source string

	// Chunk is the chunk index within the source, 0 when missing.
	Chunk int
}

// Answer is the result of a question-answering operation.
// Expected model failures are embedded in Text rather than surfaced
// as errors, so an Answer is produced even when generation failed.
type Answer struct {
	// Text is the model's reply, or user-facing remediation text
	// when the model could not be invoked.
	Text string

	// Sources cites the retrieved chunks in retrieval order.
	// Empty when no documents matched or generation failed.
	Sources []SourceRef
}

// Retrieved is one nearest-neighbour hit returned by a vector store.
type Retrieved struct {
	// Text is the stored chunk text.
	Text string

	// Metadata is the payload stored with the chunk. The ingestion
	// contract writes "source" (string) and "chunk" (int), but
	// retrieval tolerates missing keys.
	Metadata map[string]any

	// Distance is the embedding-space distance; lower is closer.
	Distance float64
}

// SourceRef derives the citation for a retrieved chunk, applying
// the Unknown/0 defaults for missing metadata fields.
func (r Retrieved) SourceRef() SourceRef {
	ref := SourceRef{Source: "Unknown", Chunk: 0}
	if s, ok := r.Metadata["source"].(string); ok {
		ref.Source = s
	}
	switch v := r.Metadata["chunk"].(type) {
	case int:
		ref.Chunk = v
	case int64:
		ref.Chunk = int(v)
	case float64:
		// JSON round-trips integers as float64.
		ref.Chunk = int(v)
	}
	return ref
}
