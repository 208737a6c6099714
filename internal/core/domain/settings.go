package domain

import "fmt"

const unknownDescription = "Unknown"

// VectorEngine identifies the backing similarity-search engine.
type VectorEngine string

// Available vector engines.
const (
	// VectorEngineMemory is the in-process store. State lives for
	// the lifetime of the process.
	VectorEngineMemory VectorEngine = "memory"

	// VectorEngineQdrant is a Qdrant server reached over REST.
	VectorEngineQdrant VectorEngine = "qdrant"
)

// IsValid returns true if the engine is recognised.
func (e VectorEngine) IsValid() bool {
	switch e {
	case VectorEngineMemory, VectorEngineQdrant:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (e VectorEngine) String() string {
	return string(e)
}

// Description returns a human-readable description of the engine.
func (e VectorEngine) Description() string {
	switch e {
	case VectorEngineMemory:
		return "In-memory (per process, no persistence)"
	case VectorEngineQdrant:
		return "Qdrant (external server, persistent)"
	default:
		return unknownDescription
	}
}

// ServerSettings holds the HTTP API configuration.
type ServerSettings struct {
	// Addr is the listen address, e.g. ":8000".
	Addr string
}

// OllamaSettings holds the model server configuration.
type OllamaSettings struct {
	// BaseURL is the Ollama endpoint.
	BaseURL string

	// Model is the default generation model.
	Model string

	// FallbackModels are tried in order after Model fails.
	FallbackModels []string
}

// ChunkingSettings holds the text splitting parameters.
type ChunkingSettings struct {
	// Size is the maximum characters per chunk.
	Size int

	// Overlap is the characters shared between consecutive chunks.
	// Must stay below Size for the window to advance naturally.
	Overlap int
}

// EmbeddingSettings holds the embedding model configuration.
// Embeddings are served by the same Ollama instance as generation.
type EmbeddingSettings struct {
	// Model is the embedding model name.
	Model string

	// Dimensions is the embedding vector size.
	Dimensions int
}

// VectorSettings holds the similarity-search engine configuration.
type VectorSettings struct {
	// Engine selects the backing store.
	Engine VectorEngine

	// URL is the engine endpoint (Qdrant only).
	URL string

	// APIKey authenticates against the engine (Qdrant only,
	// optional).
	APIKey string

	// Collection is the engine-side collection name.
	Collection string
}

// Settings holds all application settings.
type Settings struct {
	// Server holds HTTP API settings.
	Server ServerSettings

	// Ollama holds model server settings.
	Ollama OllamaSettings

	// Chunking holds text splitting settings.
	Chunking ChunkingSettings

	// Embedding holds embedding model settings.
	Embedding EmbeddingSettings

	// Vector holds similarity-search engine settings.
	Vector VectorSettings
}

// DefaultSettings returns the out-of-the-box settings: port 8000,
// local Ollama, 1000/200 chunking, in-memory engine.
func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{
			Addr: ":8000",
		},
		Ollama: OllamaSettings{
			BaseURL:        "http://localhost:11434",
			Model:          DefaultModel,
			FallbackModels: DefaultFallbackModels(),
		},
		Chunking: ChunkingSettings{
			Size:    1000,
			Overlap: 200,
		},
		Embedding: EmbeddingSettings{
			Model:      "nomic-embed-text",
			Dimensions: 768,
		},
		Vector: VectorSettings{
			Engine:     VectorEngineMemory,
			URL:        "http://localhost:6333",
			Collection: "study_docs",
		},
	}
}

// Validate reports the first configuration problem, if any. The
// chunker additionally guards its window advance at call time, so an
// overlap >= size setting is rejected here rather than silently
// degrading to single-character steps.
func (s Settings) Validate() error {
	if s.Server.Addr == "" {
		return fmt.Errorf("%w: server addr must not be empty", ErrInvalidInput)
	}
	if s.Ollama.BaseURL == "" {
		return fmt.Errorf("%w: ollama base URL must not be empty", ErrInvalidInput)
	}
	if s.Ollama.Model == "" {
		return fmt.Errorf("%w: default model must not be empty", ErrInvalidInput)
	}
	if s.Chunking.Size <= 0 {
		return fmt.Errorf("%w: chunk size must be positive", ErrInvalidInput)
	}
	if s.Chunking.Overlap < 0 {
		return fmt.Errorf("%w: chunk overlap must not be negative", ErrInvalidInput)
	}
	if s.Chunking.Overlap >= s.Chunking.Size {
		return fmt.Errorf("%w: chunk overlap %d must be below chunk size %d",
			ErrInvalidInput, s.Chunking.Overlap, s.Chunking.Size)
	}
	if s.Embedding.Dimensions <= 0 {
		return fmt.Errorf("%w: embedding dimensions must be positive", ErrInvalidInput)
	}
	if !s.Vector.Engine.IsValid() {
		return fmt.Errorf("%w: unknown vector engine %q", ErrInvalidInput, s.Vector.Engine)
	}
	if s.Vector.Engine == VectorEngineQdrant && s.Vector.URL == "" {
		return fmt.Errorf("%w: qdrant engine requires a URL", ErrInvalidInput)
	}
	if s.Vector.Collection == "" {
		return fmt.Errorf("%w: vector collection must not be empty", ErrInvalidInput)
	}
	return nil
}
