package driving

import (
	"context"

	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/core/domain"
)

// AssistantService exposes the study assistant's operations to
// external actors.
type AssistantService interface {
	// Upload ingests one PDF: extract, chunk, embed, store. Fails
	// with domain.ErrNoTextExtracted or domain.ErrNoChunks on
	// unusable input.
	Upload(ctx context.Context, filename string, data []byte) (domain.UploadReceipt, error)

	// Ask answers a question from the uploaded documents. An empty
	// model selects the configured default. Expected model failures
	// are embedded in the returned Answer's text; the error return
	// is reserved for unexpected internal failures.
	Ask(ctx context.Context, question, model string) (domain.Answer, error)

	// Clear deletes all stored chunks and upload records.
	Clear(ctx context.Context) error

	// Health probes the model server and reports its state. Always
	// returns a report, never an error.
	Health(ctx context.Context) domain.Health

	// Models lists the models installed on the model server.
	Models(ctx context.Context) ([]domain.ModelInfo, error)

	// Documents lists recorded uploads, most recent first.
	Documents(ctx context.Context) ([]domain.DocumentInfo, error)
}
