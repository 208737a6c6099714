package driven

import (
	"context"

	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/core/domain"
)

// ModelClient talks to the generation model server (Ollama).
//
// Generate classifies failures into the domain error taxonomy so the
// fallback protocol can decide whether to return, advance, or abort
// without inspecting transport details:
//
//   - domain.ErrModelServerDown: server unreachable
//   - domain.ErrGenerateTimeout: attempt exceeded its deadline
//   - *domain.ModelError: non-success reply or malformed payload
type ModelClient interface {
	// Generate produces a complete (non-streaming) response for the
	// prompt using the named model. One bounded attempt, no retries.
	Generate(ctx context.Context, model, prompt string) (string, error)

	// ListModels reports the models installed on the server.
	ListModels(ctx context.Context) ([]domain.ModelInfo, error)

	// Ping validates the server is reachable with a lightweight
	// request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
