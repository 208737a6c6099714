package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/chunker"
	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/core/domain"
	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/core/ports/driven"
	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/core/ports/driving"
	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/logger"
)

// Ensure AssistantService implements the interface.
var _ driving.AssistantService = (*AssistantService)(nil)

// AssistantService is the façade gluing extraction, chunking, the
// vector store, and the model invoker together.
type AssistantService struct {
	extractor driven.TextExtractor
	splitter  *chunker.Splitter
	store     driven.VectorStore
	models    driven.ModelClient
	invoker   *ModelInvoker
	docLog    driven.DocumentLog
}

// NewAssistantService creates the façade. The document log is
// optional; set it with SetDocumentLog.
func NewAssistantService(
	extractor driven.TextExtractor,
	splitter *chunker.Splitter,
	store driven.VectorStore,
	models driven.ModelClient,
	invoker *ModelInvoker,
) *AssistantService {
	return &AssistantService{
		extractor: extractor,
		splitter:  splitter,
		store:     store,
		models:    models,
		invoker:   invoker,
	}
}

// SetDocumentLog sets the upload registry used by Documents.
func (s *AssistantService) SetDocumentLog(log driven.DocumentLog) {
	s.docLog = log
}

// Upload ingests one PDF: extract text, chunk it, and store the
// chunks with their metadata. The whole batch either lands or the
// operation fails.
func (s *AssistantService) Upload(ctx context.Context, filename string, data []byte) (domain.UploadReceipt, error) {
	logger.Section("Document Ingestion")
	logger.Debug("Uploading %q (%d bytes)", filename, len(data))

	if filename == "" {
		return domain.UploadReceipt{}, fmt.Errorf("%w: filename must not be empty", domain.ErrInvalidInput)
	}

	text, err := s.extractor.Extract(ctx, data)
	if err != nil {
		return domain.UploadReceipt{}, fmt.Errorf("extract text: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return domain.UploadReceipt{}, domain.ErrNoTextExtracted
	}

	texts := s.splitter.Split(text)
	if len(texts) == 0 {
		return domain.UploadReceipt{}, domain.ErrNoChunks
	}

	chunks := make([]domain.Chunk, len(texts))
	for i, t := range texts {
		chunks[i] = domain.NewChunk(filename, i, t)
	}

	if err := s.store.Upsert(ctx, chunks); err != nil {
		return domain.UploadReceipt{}, fmt.Errorf("store chunks: %w", err)
	}
	logger.Info("Stored %d chunks for %q", len(chunks), filename)

	if s.docLog != nil {
		record := domain.DocumentInfo{
			Filename:   filename,
			Chunks:     len(chunks),
			UploadedAt: time.Now().UTC(),
		}
		// The vector store is the source of truth; a registry
		// failure must not undo a successful ingestion.
		if err := s.docLog.Record(ctx, record); err != nil {
			logger.Warn("Recording upload of %q failed: %v", filename, err)
		}
	}

	return domain.UploadReceipt{Filename: filename, Chunks: len(chunks)}, nil
}

// Ask answers a question from the indexed documents. Expected model
// failures come back inside the Answer; the error return is reserved
// for unexpected internal failures such as a broken vector store.
func (s *AssistantService) Ask(ctx context.Context, question, model string) (domain.Answer, error) {
	logger.Section("Question Answering")
	logger.Debug("Question: %q", question)

	retrieved, err := s.store.Query(ctx, question, retrievalTopK)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("query vector store: %w", err)
	}

	if len(retrieved) == 0 {
		logger.Debug("Store is empty, skipping model call")
		return domain.Answer{
			Text:    noDocumentsAnswer,
			Sources: []domain.SourceRef{},
		}, nil
	}

	prompt := buildPrompt(question, chunkTexts(retrieved))
	logger.Debug("Prompt assembled from %d chunks", len(retrieved))

	text, err := s.invoker.Complete(ctx, prompt, model)
	if err != nil {
		logger.Warn("Model invocation failed: %v", err)
		return domain.Answer{
			Text:    errorAnswer(err),
			Sources: []domain.SourceRef{},
		}, nil
	}

	return domain.Answer{
		Text:    text,
		Sources: sourceRefs(retrieved),
	}, nil
}

// Clear wipes the vector store and the upload registry. The store is
// usable again immediately afterwards.
func (s *AssistantService) Clear(ctx context.Context) error {
	logger.Section("Clear")

	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear vector store: %w", err)
	}
	if s.docLog != nil {
		if err := s.docLog.Clear(ctx); err != nil {
			return fmt.Errorf("clear document registry: %w", err)
		}
	}
	logger.Info("Database cleared")
	return nil
}

// Health probes the model server. It never fails: probe errors are
// folded into an unhealthy report.
func (s *AssistantService) Health(ctx context.Context) domain.Health {
	health := domain.Health{
		Status:       domain.HealthStatusHealthy,
		Ollama:       "running",
		DefaultModel: s.invoker.DefaultModel(),
	}

	infos, err := s.models.ListModels(ctx)
	if err != nil {
		health.Status = domain.HealthStatusUnhealthy
		var modelErr *domain.ModelError
		switch {
		case errors.Is(err, domain.ErrModelServerDown):
			health.Ollama = "not running"
			health.Error = "Cannot connect to Ollama. Please run 'ollama serve' in terminal."
		case errors.As(err, &modelErr):
			health.Ollama = "responding but error"
			health.Error = fmt.Sprintf("Status %d", modelErr.Status)
		default:
			health.Ollama = "error"
			health.Error = err.Error()
		}
		return health
	}

	health.Models = make([]string, 0, len(infos))
	health.SmallModels = []string{}
	for _, info := range infos {
		health.Models = append(health.Models, info.Name)
		if strings.Contains(info.Name, health.DefaultModel) {
			health.ModelAvailable = true
		}
		if info.IsSmall() {
			health.SmallModels = append(health.SmallModels, info.Name)
		}
	}
	return health
}

// Models lists the models installed on the model server.
func (s *AssistantService) Models(ctx context.Context) ([]domain.ModelInfo, error) {
	return s.models.ListModels(ctx)
}

// Documents lists recorded uploads, most recent first.
func (s *AssistantService) Documents(ctx context.Context) ([]domain.DocumentInfo, error) {
	if s.docLog == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.docLog.List(ctx)
}
