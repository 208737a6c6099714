package driven

import (
	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/core/domain"
)

// SettingsStore persists application settings.
// Implementations handle the file format and default filling.
type SettingsStore interface {
	// Load reads settings from storage. A missing file yields the
	// defaults, not an error.
	Load() (domain.Settings, error)

	// Save persists the settings.
	Save(settings domain.Settings) error

	// Path returns the backing file path.
	Path() string
}
