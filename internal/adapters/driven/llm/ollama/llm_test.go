package ollama

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/core/domain"
)

func TestNewModelClient_Defaults(t *testing.T) {
	client := NewModelClient(Config{})

	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.Equal(t, DefaultGenerateTimeout, client.generateTimeout)
	assert.Equal(t, DefaultListTimeout, client.listTimeout)
}

func TestModelClient_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/generate", r.URL.Path)

		var req generateRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3.2:1b", req.Model)
		assert.Equal(t, "why is the sky blue?", req.Prompt)
		assert.False(t, req.Stream)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"llama3.2:1b","response":"Rayleigh scattering.","done":true}`))
	}))
	defer srv.Close()

	client := NewModelClient(Config{BaseURL: srv.URL})
	text, err := client.Generate(context.Background(), "llama3.2:1b", "why is the sky blue?")

	require.NoError(t, err)
	assert.Equal(t, "Rayleigh scattering.", text)
}

func TestModelClient_Generate_EmptyResponseField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"response":""}`))
	}))
	defer srv.Close()

	client := NewModelClient(Config{BaseURL: srv.URL})
	text, err := client.Generate(context.Background(), "m", "p")

	require.NoError(t, err, "an empty completion is still a completion")
	assert.Empty(t, text)
}

func TestModelClient_Generate_MissingResponseField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"done":true}`))
	}))
	defer srv.Close()

	client := NewModelClient(Config{BaseURL: srv.URL})
	_, err := client.Generate(context.Background(), "m", "p")

	var modelErr *domain.ModelError
	require.ErrorAs(t, err, &modelErr)
	assert.Equal(t, http.StatusOK, modelErr.Status)
	assert.Contains(t, modelErr.Message, "unexpected response format")
}

func TestModelClient_Generate_ServerErrorJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"unable to allocate CUDA0 buffer"}`))
	}))
	defer srv.Close()

	client := NewModelClient(Config{BaseURL: srv.URL})
	_, err := client.Generate(context.Background(), "big-model", "p")

	var modelErr *domain.ModelError
	require.ErrorAs(t, err, &modelErr)
	assert.Equal(t, "big-model", modelErr.Model)
	assert.Equal(t, http.StatusInternalServerError, modelErr.Status)
	assert.Equal(t, "unable to allocate CUDA0 buffer", modelErr.Message)
	assert.Equal(t, "Ollama returned status 500: unable to allocate CUDA0 buffer", modelErr.Error())
}

func TestModelClient_Generate_ServerErrorPlainBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	client := NewModelClient(Config{BaseURL: srv.URL})
	_, err := client.Generate(context.Background(), "m", "p")

	var modelErr *domain.ModelError
	require.ErrorAs(t, err, &modelErr)
	assert.Equal(t, "upstream exploded", modelErr.Message)
}

func TestModelClient_Generate_ErrorBodyTruncated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(strings.Repeat("x", 500)))
	}))
	defer srv.Close()

	client := NewModelClient(Config{BaseURL: srv.URL})
	_, err := client.Generate(context.Background(), "m", "p")

	var modelErr *domain.ModelError
	require.ErrorAs(t, err, &modelErr)
	assert.Len(t, modelErr.Message, maxErrorDetail+len("..."))
	assert.True(t, strings.HasSuffix(modelErr.Message, "..."))
}

func TestModelClient_Generate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		// Drain the body first: the server only watches for client
		// disconnect once the body is consumed, and without that watch
		// r.Context() never fires and srv.Close deadlocks.
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer srv.Close()

	client := NewModelClient(Config{BaseURL: srv.URL, GenerateTimeout: 50 * time.Millisecond})
	_, err := client.Generate(context.Background(), "m", "p")

	require.ErrorIs(t, err, domain.ErrGenerateTimeout)
}

func TestModelClient_Generate_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewModelClient(Config{BaseURL: url})
	_, err := client.Generate(context.Background(), "m", "p")

	require.ErrorIs(t, err, domain.ErrModelServerDown)
}

func TestModelClient_Generate_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewModelClient(Config{BaseURL: srv.URL})
	_, err := client.Generate(ctx, "m", "p")

	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, domain.ErrGenerateTimeout)
}

func TestModelClient_ListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/tags", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"models":[
			{"name":"llama3.2:1b","size":1321098329,"modified_at":"2025-01-15T10:30:00Z"},
			{"name":"tinyllama:latest","size":637700138,"modified_at":"2025-01-10T08:00:00Z"}
		]}`))
	}))
	defer srv.Close()

	client := NewModelClient(Config{BaseURL: srv.URL})
	models, err := client.ListModels(context.Background())

	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, domain.ModelInfo{
		Name:       "llama3.2:1b",
		Size:       1321098329,
		ModifiedAt: "2025-01-15T10:30:00Z",
	}, models[0])
	assert.Equal(t, "tinyllama:latest", models[1].Name)
}

func TestModelClient_ListModels_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"models":[]}`))
	}))
	defer srv.Close()

	client := NewModelClient(Config{BaseURL: srv.URL})
	models, err := client.ListModels(context.Background())

	require.NoError(t, err)
	assert.Empty(t, models)
}

func TestModelClient_ListModels_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewModelClient(Config{BaseURL: url})
	_, err := client.ListModels(context.Background())

	require.ErrorIs(t, err, domain.ErrModelServerDown)
}

func TestModelClient_ListModels_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"loading"}`))
	}))
	defer srv.Close()

	client := NewModelClient(Config{BaseURL: srv.URL})
	_, err := client.ListModels(context.Background())

	var modelErr *domain.ModelError
	require.ErrorAs(t, err, &modelErr)
	assert.Equal(t, http.StatusServiceUnavailable, modelErr.Status)
	assert.Equal(t, "loading", modelErr.Message)
}

func TestModelClient_Ping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"models":[]}`))
	}))
	defer srv.Close()

	client := NewModelClient(Config{BaseURL: srv.URL})
	assert.NoError(t, client.Ping(context.Background()))
}

func TestModelClient_Ping_Down(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewModelClient(Config{BaseURL: url})
	assert.ErrorIs(t, client.Ping(context.Background()), domain.ErrModelServerDown)
}
