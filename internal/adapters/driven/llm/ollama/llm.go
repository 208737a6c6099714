// Package ollama provides the model client adapter for the Ollama
// HTTP API.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/core/domain"
	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/core/ports/driven"
	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/logger"
)

// Ensure ModelClient implements the interface.
var _ driven.ModelClient = (*ModelClient)(nil)

// Default configuration values. Generation gets a long leash because
// small machines run big models; listing tags is near-instant.
const (
	DefaultBaseURL         = "http://localhost:11434"
	DefaultGenerateTimeout = 90 * time.Second
	DefaultListTimeout     = 5 * time.Second
)

// maxErrorDetail caps how much of an error body is carried into the
// returned error.
const maxErrorDetail = 200

// Config holds configuration for the Ollama model client.
type Config struct {
	// BaseURL is the Ollama API base URL (default: http://localhost:11434).
	BaseURL string

	// GenerateTimeout bounds one generation request (default: 90s).
	GenerateTimeout time.Duration

	// ListTimeout bounds one tags request (default: 5s).
	ListTimeout time.Duration
}

// ModelClient talks to an Ollama server. One client serves many
// models; the model is chosen per generation call.
type ModelClient struct {
	client          *http.Client
	baseURL         string
	generateTimeout time.Duration
	listTimeout     time.Duration
}

// generateRequest is the Ollama /api/generate request format.
type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// generateResponse is the Ollama /api/generate response format. The
// pointer distinguishes a missing response field from an empty one.
type generateResponse struct {
	Response *string `json:"response"`
}

// errorResponse is the body Ollama sends with non-2xx statuses.
type errorResponse struct {
	Error string `json:"error"`
}

// tagsResponse is the Ollama /api/tags response format.
type tagsResponse struct {
	Models []struct {
		Name       string `json:"name"`
		Size       int64  `json:"size"`
		ModifiedAt string `json:"modified_at"`
	} `json:"models"`
}

// NewModelClient creates a new Ollama model client.
func NewModelClient(cfg Config) *ModelClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.GenerateTimeout == 0 {
		cfg.GenerateTimeout = DefaultGenerateTimeout
	}
	if cfg.ListTimeout == 0 {
		cfg.ListTimeout = DefaultListTimeout
	}

	// Timeouts are applied per call via the context, because the two
	// endpoints need different deadlines on one client.
	return &ModelClient{
		client:          &http.Client{},
		baseURL:         cfg.BaseURL,
		generateTimeout: cfg.GenerateTimeout,
		listTimeout:     cfg.ListTimeout,
	}
}

// Generate produces a completion for prompt using the given model.
// Failures map onto the taxonomy the fallback protocol runs on:
// domain.ErrModelServerDown for connectivity, domain.ErrGenerateTimeout
// for deadlines, *domain.ModelError for anything the server said.
func (c *ModelClient) Generate(ctx context.Context, model, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.generateTimeout)
	defer cancel()

	jsonBody, err := json.Marshal(generateRequest{
		Model:  model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/api/generate",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", c.transportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &domain.ModelError{
			Model:   model,
			Status:  resp.StatusCode,
			Message: errorDetail(raw),
		}
	}

	var genResp generateResponse
	if err := json.Unmarshal(raw, &genResp); err != nil || genResp.Response == nil {
		return "", &domain.ModelError{
			Model:   model,
			Status:  resp.StatusCode,
			Message: "unexpected response format: " + truncateDetail(raw),
		}
	}

	return *genResp.Response, nil
}

// ListModels returns the models installed on the server.
func (c *ModelClient) ListModels(ctx context.Context) ([]domain.ModelInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, c.listTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		if isTimeout(err) {
			return nil, fmt.Errorf("list models: %w", domain.ErrGenerateTimeout)
		}
		logger.Debug("Ollama transport failure: %v", err)
		return nil, domain.ErrModelServerDown
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.ModelError{
			Status:  resp.StatusCode,
			Message: errorDetail(raw),
		}
	}

	var tags tagsResponse
	if err := json.Unmarshal(raw, &tags); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	infos := make([]domain.ModelInfo, 0, len(tags.Models))
	for _, m := range tags.Models {
		infos = append(infos, domain.ModelInfo{
			Name:       m.Name,
			Size:       m.Size,
			ModifiedAt: m.ModifiedAt,
		})
	}
	return infos, nil
}

// Ping validates the server is reachable without running inference.
func (c *ModelClient) Ping(ctx context.Context) error {
	_, err := c.ListModels(ctx)
	return err
}

// Close releases resources.
func (c *ModelClient) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}

// transportError maps a failed generation round trip onto the domain
// taxonomy. Cancellation passes through untouched so callers see
// their own abort; the raw cause is logged, not surfaced.
func (c *ModelClient) transportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if isTimeout(err) {
		return domain.ErrGenerateTimeout
	}
	logger.Debug("Ollama transport failure: %v", err)
	return domain.ErrModelServerDown
}

// isTimeout reports whether a transport error was a deadline rather
// than a connectivity failure.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// errorDetail extracts the server's error message from a non-2xx
// body: the "error" field when the body is Ollama's JSON error shape,
// a truncated dump otherwise.
func errorDetail(raw []byte) string {
	var errResp errorResponse
	if err := json.Unmarshal(raw, &errResp); err == nil && errResp.Error != "" {
		return errResp.Error
	}
	return truncateDetail(raw)
}

func truncateDetail(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if len(s) > maxErrorDetail {
		return s[:maxErrorDetail] + "..."
	}
	return s
}
