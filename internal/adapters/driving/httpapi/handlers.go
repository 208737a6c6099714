package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/core/domain"
	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/logger"
)

type messageResponse struct {
	Message string `json:"message"`
}

type uploadResponse struct {
	Message  string `json:"message"`
	Filename string `json:"filename"`
	Chunks   int    `json:"chunks"`
}

type askRequest struct {
	Question string `json:"question"`
	Model    string `json:"model,omitempty"`
}

type sourceRef struct {
	Source string `json:"source"`
	Chunk  int    `json:"chunk"`
}

type askResponse struct {
	Answer  string      `json:"answer"`
	Sources []sourceRef `json:"sources"`
}

type healthyResponse struct {
	Status         string   `json:"status"`
	Ollama         string   `json:"ollama"`
	Models         []string `json:"models"`
	DefaultModel   string   `json:"default_model"`
	ModelAvailable bool     `json:"model_available"`
	SmallModels    []string `json:"recommended_small_models"`
}

type unhealthyResponse struct {
	Status string `json:"status"`
	Ollama string `json:"ollama"`
	Error  string `json:"error"`
}

type modelEntry struct {
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	Modified string `json:"modified"`
}

type modelsResponse struct {
	Status string       `json:"status"`
	Models []modelEntry `json:"models"`
	Count  int          `json:"count"`
}

type modelsErrorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

type documentEntry struct {
	Filename   string    `json:"filename"`
	Chunks     int       `json:"chunks"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type documentsResponse struct {
	Documents []documentEntry `json:"documents"`
	Count     int             `json:"count"`
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{
		Message: "AI Study Assistant API is running with Ollama",
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, fmt.Sprintf("read upload: %v", err))
		return
	}

	receipt, err := s.assistant.Upload(r.Context(), header.Filename, data)
	switch {
	case errors.Is(err, domain.ErrNoTextExtracted):
		writeDetail(w, http.StatusBadRequest, "No text found in PDF")
	case errors.Is(err, domain.ErrNoChunks):
		writeDetail(w, http.StatusBadRequest, "Failed to generate chunks from PDF text")
	case errors.Is(err, domain.ErrInvalidInput):
		writeDetail(w, http.StatusBadRequest, err.Error())
	case err != nil:
		writeDetail(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, uploadResponse{
			Message:  "Document uploaded successfully",
			Filename: receipt.Filename,
			Chunks:   receipt.Chunks,
		})
	}
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Question == "" {
		writeDetail(w, http.StatusBadRequest, "question is required")
		return
	}

	answer, err := s.assistant.Ask(r.Context(), req.Question, req.Model)
	if err != nil {
		// Expected model failures arrive inside the Answer; an
		// error here is an internal fault worth a 500.
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	sources := make([]sourceRef, 0, len(answer.Sources))
	for _, src := range answer.Sources {
		sources = append(sources, sourceRef{Source: src.Source, Chunk: src.Chunk})
	}

	writeJSON(w, http.StatusOK, askResponse{Answer: answer.Text, Sources: sources})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if err := s.assistant.Clear(r.Context()); err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Database cleared successfully"})
}

// handleHealth always answers 200; the body carries the state. The
// degraded shape deliberately omits the model fields.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := s.assistant.Health(r.Context())

	if health.Status != domain.HealthStatusHealthy {
		writeJSON(w, http.StatusOK, unhealthyResponse{
			Status: health.Status,
			Ollama: health.Ollama,
			Error:  health.Error,
		})
		return
	}

	writeJSON(w, http.StatusOK, healthyResponse{
		Status:         health.Status,
		Ollama:         health.Ollama,
		Models:         health.Models,
		DefaultModel:   health.DefaultModel,
		ModelAvailable: health.ModelAvailable,
		SmallModels:    health.SmallModels,
	})
}

// handleModels always answers 200; failures become a status:error body.
func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	models, err := s.assistant.Models(r.Context())
	if err != nil {
		writeJSON(w, http.StatusOK, modelsErrorResponse{
			Status: "error",
			Error:  modelsErrorText(err),
		})
		return
	}

	entries := make([]modelEntry, 0, len(models))
	for _, m := range models {
		entries = append(entries, modelEntry{Name: m.Name, Size: m.Size, Modified: m.ModifiedAt})
	}

	writeJSON(w, http.StatusOK, modelsResponse{
		Status: "success",
		Models: entries,
		Count:  len(entries),
	})
}

// modelsErrorText keeps the error wording the frontend knows.
func modelsErrorText(err error) string {
	var modelErr *domain.ModelError
	switch {
	case errors.Is(err, domain.ErrModelServerDown):
		return "Cannot connect to Ollama. Please run 'ollama serve' in terminal."
	case errors.As(err, &modelErr):
		return fmt.Sprintf("Ollama returned status %d", modelErr.Status)
	default:
		return err.Error()
	}
}

func (s *Server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.assistant.Documents(r.Context())
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	entries := make([]documentEntry, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, documentEntry{
			Filename:   doc.Filename,
			Chunks:     doc.Chunks,
			UploadedAt: doc.UploadedAt,
		})
	}

	writeJSON(w, http.StatusOK, documentsResponse{Documents: entries, Count: len(entries)})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Debug("write response: %v", err)
	}
}

// writeDetail writes an error body in the {"detail": ...} shape the
// frontend parses.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
