package driven

import (
	"context"

	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/core/domain"
)

// DocumentLog records successful uploads so they can be listed later.
// This is an optional collaborator: the vector store remains the
// source of truth for answering, and a missing or failing log never
// blocks ingestion.
type DocumentLog interface {
	// Record stores the receipt for one upload, replacing any
	// previous record for the same filename.
	Record(ctx context.Context, doc domain.DocumentInfo) error

	// List returns recorded uploads, most recent first.
	List(ctx context.Context) ([]domain.DocumentInfo, error)

	// Clear removes all records.
	Clear(ctx context.Context) error

	// Close releases resources.
	Close() error
}
