// Package httpapi exposes the assistant over HTTP with JSON bodies.
// The routes and response shapes match what the web frontend expects.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/core/ports/driving"
	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/logger"
)

const (
	// DefaultAddr is the listen address when none is configured.
	DefaultAddr = ":8000"

	// maxUploadBytes caps the in-memory portion of a multipart
	// upload; larger files spill to disk.
	maxUploadBytes = 32 << 20

	// Write generously outlasts the 90s generation bound so a slow
	// model does not have its answer cut off mid-response.
	readTimeout     = 60 * time.Second
	writeTimeout    = 2 * time.Minute
	idleTimeout     = 2 * time.Minute
	shutdownTimeout = 10 * time.Second
)

// Server serves the assistant's HTTP API.
type Server struct {
	assistant driving.AssistantService
	addr      string
}

// NewServer creates a server for assistant listening on addr.
// An empty addr selects DefaultAddr.
func NewServer(assistant driving.AssistantService, addr string) *Server {
	if addr == "" {
		addr = DefaultAddr
	}
	return &Server{assistant: assistant, addr: addr}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.addr
}

// Handler builds the routed and middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("POST /upload", s.handleUpload)
	mux.HandleFunc("POST /ask", s.handleAsk)
	mux.HandleFunc("DELETE /clear", s.handleClear)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /models", s.handleModels)
	mux.HandleFunc("GET /documents", s.handleDocuments)

	// CORS sits inside recovery but outside the mux so preflight
	// requests never reach routing (the mux would answer 405).
	return recoverPanics(requestID(cors(logRequests(mux))))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown: %v", err)
		}
	}()

	logger.Info("HTTP API listening on %s", s.addr)

	err := server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
