// Package ai assembles the driven AI adapters from settings.
package ai

import (
	"context"
	"fmt"
	"time"

	ollamaembed "github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/adapters/driven/embedding/ollama"
	ollamallm "github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/adapters/driven/llm/ollama"
	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/adapters/driven/vectorstore/memory"
	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/adapters/driven/vectorstore/qdrant"
	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/core/domain"
	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for the connectivity probe.
const pingTimeout = 5 * time.Second

// InitResult contains the assembled AI adapters.
type InitResult struct {
	Embedding driven.EmbeddingService
	Models    driven.ModelClient
	Store     driven.VectorStore
	Warnings  []string // Non-fatal issues discovered during assembly.
}

// Close releases all resources held by InitResult.
func (r *InitResult) Close() {
	if r.Store != nil {
		r.Store.Close()
	}
	if r.Embedding != nil {
		r.Embedding.Close()
	}
	if r.Models != nil {
		r.Models.Close()
	}
}

// Init builds the embedding service, model client and vector store
// described by settings. Connectivity problems with Ollama are reported
// as warnings rather than errors: the assistant must start even when
// the model server is not running yet, and the health endpoint reports
// the live state.
func Init(ctx context.Context, settings domain.Settings) (*InitResult, error) {
	embedding := ollamaembed.NewEmbeddingService(ollamaembed.Config{
		BaseURL:    settings.Ollama.BaseURL,
		Model:      settings.Embedding.Model,
		Dimensions: settings.Embedding.Dimensions,
	})

	models := ollamallm.NewModelClient(ollamallm.Config{
		BaseURL: settings.Ollama.BaseURL,
	})

	store, err := createVectorStore(ctx, embedding, settings.Vector)
	if err != nil {
		embedding.Close()
		models.Close()
		return nil, err
	}

	result := &InitResult{
		Embedding: embedding,
		Models:    models,
		Store:     store,
	}

	// One probe covers both adapters: generation and embedding are
	// served by the same Ollama instance.
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := models.Ping(pingCtx); err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Ollama is not reachable at %s: %v. Run 'ollama serve' to start it.",
				settings.Ollama.BaseURL, err))
	}

	return result, nil
}

// createVectorStore selects the similarity-search engine. The in-memory
// engine is always available; Qdrant must answer during initialisation
// because a misconfigured endpoint would otherwise surface as a failure
// on the first upload.
func createVectorStore(ctx context.Context, embedder driven.EmbeddingService, settings domain.VectorSettings) (driven.VectorStore, error) {
	switch settings.Engine {
	case domain.VectorEngineMemory, "":
		return memory.NewVectorStore(embedder), nil

	case domain.VectorEngineQdrant:
		store := qdrant.NewVectorStore(embedder, qdrant.Config{
			URL:        settings.URL,
			APIKey:     settings.APIKey,
			Collection: settings.Collection,
		})
		if err := store.Init(ctx); err != nil {
			return nil, fmt.Errorf("initialise qdrant collection: %w", err)
		}
		return store, nil

	default:
		return nil, fmt.Errorf("%w: unknown vector engine %q", domain.ErrInvalidInput, settings.Engine)
	}
}
