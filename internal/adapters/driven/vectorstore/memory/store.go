// Package memory provides an in-memory vector store. It embeds chunks
// on ingestion and ranks them by cosine distance at query time, which
// is plenty for a single-user corpus and needs no external service.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/core/domain"
	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/core/ports/driven"
)

// Ensure VectorStore implements the interface.
var _ driven.VectorStore = (*VectorStore)(nil)

// VectorStore keeps embedded chunks in memory, keyed by chunk ID so
// re-uploading a document replaces its chunks instead of duplicating
// them.
type VectorStore struct {
	embedder driven.EmbeddingService

	mu      sync.RWMutex
	entries map[string]entry
}

type entry struct {
	chunk  domain.Chunk
	vector []float32
}

// NewVectorStore creates an empty in-memory vector store using the
// given embedder.
func NewVectorStore(embedder driven.EmbeddingService) *VectorStore {
	return &VectorStore{
		embedder: embedder,
		entries:  make(map[string]entry),
	}
}

// Upsert embeds and stores the chunks. Chunks with known IDs are
// replaced. Embedding happens before the lock is taken so slow
// embedding calls do not block concurrent queries.
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

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range chunks {
		s.entries[c.ID] = entry{chunk: c, vector: vectors[i]}
	}
	return nil
}

// Query embeds the question and returns the k nearest chunks by
// cosine distance, nearest first. An empty store returns no results.
func (s *VectorStore) Query(ctx context.Context, question string, k int) ([]domain.Retrieved, error) {
	if k <= 0 {
		return nil, nil
	}

	queryVec, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	type scored struct {
		chunk    domain.Chunk
		distance float64
	}
	results := make([]scored, 0, len(s.entries))
	for _, e := range s.entries {
		results = append(results, scored{
			chunk:    e.chunk,
			distance: 1 - cosineSimilarity(queryVec, e.vector),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].distance != results[j].distance {
			return results[i].distance < results[j].distance
		}
		return results[i].chunk.ID < results[j].chunk.ID
	})

	if k > len(results) {
		k = len(results)
	}
	retrieved := make([]domain.Retrieved, 0, k)
	for _, r := range results[:k] {
		retrieved = append(retrieved, domain.Retrieved{
			Text:     r.chunk.Text,
			Metadata: r.chunk.Metadata(),
			Distance: r.distance,
		})
	}
	return retrieved, nil
}

// Clear removes every stored chunk.
func (s *VectorStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]entry)
	return nil
}

// Close releases resources.
func (s *VectorStore) Close() error {
	return nil
}

// cosineSimilarity computes the cosine of the angle between two
// vectors. Mismatched lengths and zero vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
