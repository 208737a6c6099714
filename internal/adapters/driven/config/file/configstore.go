package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/core/domain"
	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/core/ports/driven"
)

// Ensure SettingsStore implements the interface.
var _ driven.SettingsStore = (*SettingsStore)(nil)

// SettingsStore persists settings as a TOML file in the assistant's
// config directory.
type SettingsStore struct {
	mu       sync.Mutex
	filePath string
}

// fileSettings is the on-disk TOML shape. It mirrors domain.Settings
// so the domain stays free of serialisation tags.
type fileSettings struct {
	Server    serverSection    `toml:"server"`
	Ollama    ollamaSection    `toml:"ollama"`
	Chunking  chunkingSection  `toml:"chunking"`
	Embedding embeddingSection `toml:"embedding"`
	Vector    vectorSection    `toml:"vector"`
}

type serverSection struct {
	Addr string `toml:"addr"`
}

type ollamaSection struct {
	BaseURL        string   `toml:"base_url"`
	Model          string   `toml:"model"`
	FallbackModels []string `toml:"fallback_models"`
}

type chunkingSection struct {
	Size    int `toml:"size"`
	Overlap int `toml:"overlap"`
}

type embeddingSection struct {
	Model      string `toml:"model"`
	Dimensions int    `toml:"dimensions"`
}

type vectorSection struct {
	Engine     string `toml:"engine"`
	URL        string `toml:"url"`
	APIKey     string `toml:"api_key"`
	Collection string `toml:"collection"`
}

// NewSettingsStore creates a TOML-based settings store.
// If configDir is empty, defaults to ~/.study-assistant/config.toml.
func NewSettingsStore(configDir string) (*SettingsStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".study-assistant")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	return &SettingsStore{
		filePath: filepath.Join(configDir, "config.toml"),
	}, nil
}

// Load reads settings from disk. A missing file yields the defaults;
// a present file overrides only the keys it sets. Environment
// variables override both.
func (s *SettingsStore) Load() (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := fromDomain(domain.DefaultSettings())

	data, err := os.ReadFile(s.filePath)
	switch {
	case os.IsNotExist(err):
		// No config file yet - run on defaults.
	case err != nil:
		return domain.Settings{}, fmt.Errorf("reading config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return domain.Settings{}, fmt.Errorf("parsing %s: %w", s.filePath, err)
		}
	}

	applyEnvOverrides(&cfg)
	return cfg.toDomain(), nil
}

// Save writes the settings to disk with restricted permissions.
func (s *SettingsStore) Save(settings domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(fromDomain(settings))
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Path returns the configuration file path.
func (s *SettingsStore) Path() string {
	return s.filePath
}

// applyEnvOverrides lets the environment win over the file.
// OLLAMA_HOST is the same variable the Ollama CLI itself respects.
func applyEnvOverrides(cfg *fileSettings) {
	if v := os.Getenv("OLLAMA_HOST"); v != "" {
		cfg.Ollama.BaseURL = v
	}
	if v := os.Getenv("QDRANT_URL"); v != "" {
		cfg.Vector.URL = v
	}
	if v := os.Getenv("QDRANT_API_KEY"); v != "" {
		cfg.Vector.APIKey = v
	}
	if v := os.Getenv("STUDY_ASSISTANT_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
}

func fromDomain(settings domain.Settings) fileSettings {
	return fileSettings{
		Server: serverSection{
			Addr: settings.Server.Addr,
		},
		Ollama: ollamaSection{
			BaseURL:        settings.Ollama.BaseURL,
			Model:          settings.Ollama.Model,
			FallbackModels: settings.Ollama.FallbackModels,
		},
		Chunking: chunkingSection{
			Size:    settings.Chunking.Size,
			Overlap: settings.Chunking.Overlap,
		},
		Embedding: embeddingSection{
			Model:      settings.Embedding.Model,
			Dimensions: settings.Embedding.Dimensions,
		},
		Vector: vectorSection{
			Engine:     settings.Vector.Engine.String(),
			URL:        settings.Vector.URL,
			APIKey:     settings.Vector.APIKey,
			Collection: settings.Vector.Collection,
		},
	}
}

func (f fileSettings) toDomain() domain.Settings {
	return domain.Settings{
		Server: domain.ServerSettings{
			Addr: f.Server.Addr,
		},
		Ollama: domain.OllamaSettings{
			BaseURL:        f.Ollama.BaseURL,
			Model:          f.Ollama.Model,
			FallbackModels: f.Ollama.FallbackModels,
		},
		Chunking: domain.ChunkingSettings{
			Size:    f.Chunking.Size,
			Overlap: f.Chunking.Overlap,
		},
		Embedding: domain.EmbeddingSettings{
			Model:      f.Embedding.Model,
			Dimensions: f.Embedding.Dimensions,
		},
		Vector: domain.VectorSettings{
			Engine:     domain.VectorEngine(f.Vector.Engine),
			URL:        f.Vector.URL,
			APIKey:     f.Vector.APIKey,
			Collection: f.Vector.Collection,
		},
	}
}
