package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/core/domain"
)

// fakeEmbedder implements driven.EmbeddingService with fixed vectors
// keyed by text.
type fakeEmbedder struct {
	vectors  map[string][]float32
	embedErr error
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	v, ok := f.vectors[text]
	if !ok {
		return nil, fmt.Errorf("no vector for %q", text)
	}
	return v, nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	result := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := f.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		result[i] = v
	}
	return result, nil
}

func (f *fakeEmbedder) Dimensions() int { return 3 }

func (f *fakeEmbedder) ModelName() string { return "fake-embed" }

func (f *fakeEmbedder) Ping(_ context.Context) error { return nil }

func (f *fakeEmbedder) Close() error { return nil }

func newTestStore() *VectorStore {
	return NewVectorStore(&fakeEmbedder{
		vectors: map[string][]float32{
			"cats are mammals":   {1, 0, 0},
			"dogs are mammals":   {0.8, 0.6, 0},
			"rust is a language": {0, 0, 1},
			"tell me about cats": {1, 0, 0},
		},
	})
}

func testChunks() []domain.Chunk {
	return []domain.Chunk{
		domain.NewChunk("animals.pdf", 0, "cats are mammals"),
		domain.NewChunk("animals.pdf", 1, "dogs are mammals"),
		domain.NewChunk("code.pdf", 0, "rust is a language"),
	}
}

func TestVectorStore_Query_RanksByDistance(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()
	require.NoError(t, store.Upsert(ctx, testChunks()))

	results, err := store.Query(ctx, "tell me about cats", 2)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "cats are mammals", results[0].Text)
	assert.InDelta(t, 0.0, results[0].Distance, 1e-9)
	assert.Equal(t, "dogs are mammals", results[1].Text)
	assert.Greater(t, results[1].Distance, results[0].Distance)
}

func TestVectorStore_Query_Metadata(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()
	require.NoError(t, store.Upsert(ctx, testChunks()))

	results, err := store.Query(ctx, "tell me about cats", 1)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, map[string]any{"source": "animals.pdf", "chunk": 0}, results[0].Metadata)
}

func TestVectorStore_Query_KLargerThanStore(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()
	require.NoError(t, store.Upsert(ctx, testChunks()))

	results, err := store.Query(ctx, "tell me about cats", 10)

	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestVectorStore_Query_EmptyStore(t *testing.T) {
	store := newTestStore()

	results, err := store.Query(context.Background(), "tell me about cats", 3)

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestVectorStore_Query_EmbedError(t *testing.T) {
	store := NewVectorStore(&fakeEmbedder{embedErr: errors.New("embedder offline")})

	_, err := store.Query(context.Background(), "q", 3)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "embed question")
}

func TestVectorStore_Upsert_ReplacesByID(t *testing.T) {
	embedder := &fakeEmbedder{
		vectors: map[string][]float32{
			"first version":      {1, 0, 0},
			"second version":     {0, 1, 0},
			"tell me about cats": {1, 0, 0},
		},
	}
	store := NewVectorStore(embedder)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, []domain.Chunk{domain.NewChunk("doc.pdf", 0, "first version")}))
	require.NoError(t, store.Upsert(ctx, []domain.Chunk{domain.NewChunk("doc.pdf", 0, "second version")}))

	results, err := store.Query(ctx, "tell me about cats", 10)

	require.NoError(t, err)
	require.Len(t, results, 1, "same chunk ID must replace, not duplicate")
	assert.Equal(t, "second version", results[0].Text)
}

func TestVectorStore_Upsert_EmbedError(t *testing.T) {
	store := NewVectorStore(&fakeEmbedder{embedErr: errors.New("embedder offline")})

	err := store.Upsert(context.Background(), testChunks())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "embed chunks")
}

func TestVectorStore_Upsert_Empty(t *testing.T) {
	store := NewVectorStore(&fakeEmbedder{embedErr: errors.New("must not be called")})

	assert.NoError(t, store.Upsert(context.Background(), nil))
}

func TestVectorStore_Clear(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()
	require.NoError(t, store.Upsert(ctx, testChunks()))

	require.NoError(t, store.Clear(ctx))

	results, err := store.Query(ctx, "tell me about cats", 3)
	require.NoError(t, err)
	assert.Empty(t, results)

	// The store keeps working after a clear.
	require.NoError(t, store.Upsert(ctx, testChunks()))
	results, err = store.Query(ctx, "tell me about cats", 3)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 0}, []float32{1, 0}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"scaled", []float32{2, 0}, []float32{5, 0}, 1},
		{"zero vector", []float32{0, 0}, []float32{1, 0}, 0},
		{"length mismatch", []float32{1}, []float32{1, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, cosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}
