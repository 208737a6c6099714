package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkID(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		index    int
		expected string
	}{
		{
			name:     "simple filename",
			source:   "notes.pdf",
			index:    0,
			expected: "notes.pdf_0",
		},
		{
			name:     "later index",
			source:   "notes.pdf",
			index:    12,
			expected: "notes.pdf_12",
		},
		{
			name:     "filename containing underscores",
			source:   "my_lecture_notes.pdf",
			index:    3,
			expected: "my_lecture_notes.pdf_3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ChunkID(tt.source, tt.index))
		})
	}
}

func TestNewChunk(t *testing.T) {
	chunk := NewChunk("paper.pdf", 2, "some text")

	assert.Equal(t, "paper.pdf_2", chunk.ID)
	assert.Equal(t, "some text", chunk.Text)
	assert.Equal(t, "paper.pdf", chunk.Source)
	assert.Equal(t, 2, chunk.Index)
}

func TestChunk_Metadata(t *testing.T) {
	chunk := NewChunk("paper.pdf", 5, "text")

	meta := chunk.Metadata()

	assert.Equal(t, "paper.pdf", meta["source"])
	assert.Equal(t, 5, meta["chunk"])
}
