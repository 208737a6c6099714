// Package cli implements the study-assistant command line interface.
package cli

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/adapters/driven/ai"
	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/adapters/driven/config/file"
	pdfextract "github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/adapters/driven/extractor/pdf"
	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/adapters/driven/storage/sqlite"
	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/chunker"
	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/core/domain"
	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/core/ports/driving"
	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/core/services"
	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/logger"
)

// version is overridden at build time via -ldflags.
var version = "dev"

// Persistent flags.
var (
	configDir string
	verbose   bool
)

// Shared runtime, built lazily by assistant() so commands like
// version never touch the filesystem or the network. Tests inject a
// fake by assigning assistantService directly.
var (
	assistantService driving.AssistantService
	runtimeSettings  domain.Settings
	runtimeClosers   []func()
)

var rootCmd = &cobra.Command{
	Use:   "study-assistant",
	Short: "Ask questions about your PDFs with a local Ollama model",
	Long: `An offline study assistant: upload PDFs, then ask questions answered
from their content by a local Ollama model. Nothing leaves your machine.

Typical session:
  study-assistant upload lecture-notes.pdf
  study-assistant ask "What are the three laws of thermodynamics?"

Or run the HTTP API for the web frontend:
  study-assistant serve`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// Best effort; running without a .env file is the normal case.
		_ = godotenv.Load()
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "",
		"config directory (default ~/.study-assistant)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose logging")
}

// Execute runs the root command and tears down whatever the commands
// built.
func Execute() error {
	err := rootCmd.Execute()
	closeRuntime()
	return err
}

// assistant returns the shared assistant service, building the full
// stack from settings on first use.
func assistant(cmd *cobra.Command) (driving.AssistantService, error) {
	if assistantService != nil {
		return assistantService, nil
	}

	store, err := file.NewSettingsStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("open settings: %w", err)
	}

	settings, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("settings %s: %w", store.Path(), err)
	}

	engine, err := ai.Init(cmd.Context(), settings)
	if err != nil {
		return nil, err
	}
	runtimeClosers = append(runtimeClosers, engine.Close)
	for _, warning := range engine.Warnings {
		logger.Warn("%s", warning)
	}

	registry, err := sqlite.NewStore("")
	if err != nil {
		closeRuntime()
		return nil, fmt.Errorf("open upload registry: %w", err)
	}
	runtimeClosers = append(runtimeClosers, func() { _ = registry.Close() })

	splitter := chunker.New(
		chunker.WithSize(settings.Chunking.Size),
		chunker.WithOverlap(settings.Chunking.Overlap),
	)
	invoker := services.NewModelInvoker(engine.Models, settings.Ollama.Model, settings.Ollama.FallbackModels)

	svc := services.NewAssistantService(pdfextract.NewExtractor(), splitter, engine.Store, engine.Models, invoker)
	svc.SetDocumentLog(registry)

	runtimeSettings = settings
	assistantService = svc
	return svc, nil
}

func closeRuntime() {
	for i := len(runtimeClosers) - 1; i >= 0; i-- {
		runtimeClosers[i]()
	}
	runtimeClosers = nil
}
