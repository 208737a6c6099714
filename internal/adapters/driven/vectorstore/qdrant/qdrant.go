// Package qdrant provides a vector store adapter backed by a Qdrant
// server over its REST API.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/core/domain"
	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/core/ports/driven"
)

// Ensure VectorStore implements the interface.
var _ driven.VectorStore = (*VectorStore)(nil)

// Default configuration values.
const (
	DefaultURL        = "http://localhost:6333"
	DefaultCollection = "study_docs"
	DefaultTimeout    = 15 * time.Second
)

// Config holds configuration for the Qdrant vector store.
type Config struct {
	// URL is the Qdrant REST endpoint (default: http://localhost:6333).
	URL string

	// APIKey is sent as the api-key header when set.
	APIKey string

	// Collection is the collection name (default: study_docs).
	Collection string

	// Timeout is the request timeout (default: 15s).
	Timeout time.Duration
}

// VectorStore stores embedded chunks in a Qdrant collection using
// cosine distance. The collection is created on Init if missing.
type VectorStore struct {
	embedder   driven.EmbeddingService
	client     *http.Client
	url        string
	apiKey     string
	collection string
}

// point is the Qdrant point format for upserts.
type point struct {
	ID      string         `json:"id"`
	Vector  []float32      `json:"vector"`
	Payload map[string]any `json:"payload"`
}

// searchResponse is the Qdrant points/search response format.
type searchResponse struct {
	Result []struct {
		Score   float64        `json:"score"`
		Payload map[string]any `json:"payload"`
	} `json:"result"`
}

// NewVectorStore creates a Qdrant-backed vector store using the given
// embedder. Call Init before use to ensure the collection exists.
func NewVectorStore(embedder driven.EmbeddingService, cfg Config) *VectorStore {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &VectorStore{
		embedder:   embedder,
		client:     &http.Client{Timeout: cfg.Timeout},
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
	}
}

// Init ensures the collection exists with the embedder's dimensions.
// Qdrant answers 200 when the collection already exists with the same
// schema, so Init is idempotent.
func (s *VectorStore) Init(ctx context.Context) error {
	return s.ensureCollection(ctx)
}

// Upsert embeds and stores the chunks in one request. Point IDs are
// derived deterministically from chunk IDs so re-uploading a document
// replaces its points.
func (s *VectorStore) Upsert(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed chunks: %w", err)
	}

	points := make([]point, len(chunks))
	for i, c := range chunks {
		points[i] = point{
			ID:     pointID(c.ID),
			Vector: vectors[i],
			Payload: map[string]any{
				"chunk_id": c.ID,
				"source":   c.Source,
				"chunk":    c.Index,
				"text":     c.Text,
			},
		}
	}

	path := fmt.Sprintf("/collections/%s/points?wait=true", s.collection)
	if err := s.putJSON(ctx, path, map[string]any{"points": points}); err != nil {
		return fmt.Errorf("upsert points: %w", err)
	}
	return nil
}

// Query embeds the question and runs a top-k similarity search.
// Qdrant reports cosine similarity as score; distance is 1 - score.
func (s *VectorStore) Query(ctx context.Context, question string, k int) ([]domain.Retrieved, error) {
	if k <= 0 {
		return nil, nil
	}

	queryVec, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	reqBody := map[string]any{
		"vector":       queryVec,
		"limit":        k,
		"with_payload": true,
	}

	var resp searchResponse
	path := fmt.Sprintf("/collections/%s/points/search", s.collection)
	if err := s.postJSON(ctx, path, reqBody, &resp); err != nil {
		return nil, fmt.Errorf("search points: %w", err)
	}

	retrieved := make([]domain.Retrieved, 0, len(resp.Result))
	for _, r := range resp.Result {
		text, _ := r.Payload["text"].(string)
		retrieved = append(retrieved, domain.Retrieved{
			Text: text,
			Metadata: map[string]any{
				"source": r.Payload["source"],
				"chunk":  r.Payload["chunk"],
			},
			Distance: 1 - r.Score,
		})
	}
	return retrieved, nil
}

// Clear drops the collection and recreates it empty, so the store is
// usable again immediately.
func (s *VectorStore) Clear(ctx context.Context) error {
	path := fmt.Sprintf("/collections/%s", s.collection)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.url+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	s.setHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	defer resp.Body.Close()

	// 404 means the collection was already gone; recreate either way.
	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("delete collection: qdrant returned %s", resp.Status)
	}

	return s.ensureCollection(ctx)
}

// Close releases resources.
func (s *VectorStore) Close() error {
	return nil
}

func (s *VectorStore) ensureCollection(ctx context.Context) error {
	body := map[string]any{
		"vectors": map[string]any{
			"size":     s.embedder.Dimensions(),
			"distance": "Cosine",
		},
	}
	path := fmt.Sprintf("/collections/%s", s.collection)
	if err := s.putJSON(ctx, path, body); err != nil {
		return fmt.Errorf("ensure collection: %w", err)
	}
	return nil
}

// pointID converts a chunk ID into the UUID form Qdrant accepts.
// The derivation is deterministic, which is what makes re-uploads
// replace instead of accumulate.
func pointID(chunkID string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(chunkID)).String()
}

func (s *VectorStore) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
}

func (s *VectorStore) putJSON(ctx context.Context, path string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.url+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	s.setHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant PUT %s: %s", path, resp.Status)
	}
	return nil
}

func (s *VectorStore) postJSON(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	s.setHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant POST %s: %s", path, resp.Status)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
