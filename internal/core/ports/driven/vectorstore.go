package driven

import (
	"context"

	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/core/domain"
)

// VectorStore stores chunks with their metadata and answers
// nearest-neighbour queries over everything ever upserted.
// Implementations own the text-to-vector conversion (they compose an
// EmbeddingService), so the core only ever passes text through.
type VectorStore interface {
	// Upsert stores the chunks under their deterministic IDs with
	// {source, chunk} metadata. No partial success: embedding or
	// engine failures reject the whole batch. Re-upserting an
	// existing ID replaces it.
	Upsert(ctx context.Context, chunks []domain.Chunk) error

	// Query returns the k nearest chunks for the question, ascending
	// by distance. An empty store yields an empty result, not an
	// error.
	Query(ctx context.Context, question string, k int) ([]domain.Retrieved, error)

	// Clear deletes all stored chunks. The store is immediately
	// usable again afterwards.
	Clear(ctx context.Context) error

	// Close releases resources.
	Close() error
}
