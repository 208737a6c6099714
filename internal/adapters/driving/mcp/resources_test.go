package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/core/domain"
)

func TestServer_handleDocumentsResource(t *testing.T) {
	ctx := context.Background()

	readRequest := &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: uriScheme + "documents"},
	}

	t.Run("returns documents as JSON", func(t *testing.T) {
		assistant := &mockAssistantService{
			documents: []domain.DocumentInfo{
				{
					Filename:   "bio.pdf",
					Chunks:     12,
					UploadedAt: time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC),
				},
			},
		}
		server := newTestServer(t, assistant)

		result, err := server.handleDocumentsResource(ctx, readRequest)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, uriScheme+"documents", result.Contents[0].URI)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, `"filename": "bio.pdf"`)
		assert.Contains(t, result.Contents[0].Text, `"chunks": 12`)
	})

	t.Run("empty registry yields an empty array", func(t *testing.T) {
		server := newTestServer(t, &mockAssistantService{})

		result, err := server.handleDocumentsResource(ctx, readRequest)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns error on listing failure", func(t *testing.T) {
		server := newTestServer(t, &mockAssistantService{docsErr: assert.AnError})

		_, err := server.handleDocumentsResource(ctx, readRequest)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing documents")
	})
}
