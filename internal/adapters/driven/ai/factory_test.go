package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/adapters/driven/vectorstore/memory"
	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/adapters/driven/vectorstore/qdrant"
	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/core/domain"
)

func TestInitResult_Close(t *testing.T) {
	t.Run("close with nil services", func(t *testing.T) {
		result := &InitResult{}
		// Should not panic
		result.Close()
	})
}

func TestInit_MemoryEngine(t *testing.T) {
	// Ollama answering /api/tags makes the probe succeed.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"models": []any{}})
	}))
	defer server.Close()

	settings := domain.DefaultSettings()
	settings.Ollama.BaseURL = server.URL

	result, err := Init(context.Background(), settings)
	require.NoError(t, err)
	defer result.Close()

	assert.NotNil(t, result.Embedding)
	assert.NotNil(t, result.Models)
	assert.IsType(t, (*memory.VectorStore)(nil), result.Store)
	assert.Empty(t, result.Warnings)
}

func TestInit_BlankEngineFallsBackToMemory(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.Ollama.BaseURL = "http://127.0.0.1:1"
	settings.Vector.Engine = ""

	result, err := Init(context.Background(), settings)
	require.NoError(t, err)
	defer result.Close()

	assert.IsType(t, (*memory.VectorStore)(nil), result.Store)
}

func TestInit_OllamaDownIsAWarning(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.Ollama.BaseURL = "http://127.0.0.1:1" // nothing listens here

	result, err := Init(context.Background(), settings)
	require.NoError(t, err)
	defer result.Close()

	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "Ollama is not reachable")
	assert.Contains(t, result.Warnings[0], "ollama serve")
}

func TestInit_QdrantEngine(t *testing.T) {
	var collectionCreated bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			collectionCreated = true
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	settings := domain.DefaultSettings()
	settings.Ollama.BaseURL = "http://127.0.0.1:1"
	settings.Vector.Engine = domain.VectorEngineQdrant
	settings.Vector.URL = server.URL

	result, err := Init(context.Background(), settings)
	require.NoError(t, err)
	defer result.Close()

	assert.IsType(t, (*qdrant.VectorStore)(nil), result.Store)
	assert.True(t, collectionCreated, "expected the collection to be ensured on startup")
}

func TestInit_QdrantUnreachableFails(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.Vector.Engine = domain.VectorEngineQdrant
	settings.Vector.URL = "http://127.0.0.1:1"

	result, err := Init(context.Background(), settings)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "qdrant")
}

func TestInit_UnknownEngineFails(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.Vector.Engine = "pinecone"

	result, err := Init(context.Background(), settings)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}
