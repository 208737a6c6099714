package domain

import "strings"

// DefaultModel is the generation model tried first when the caller
// does not request one.
const DefaultModel = "llama3.2:1b"

// DefaultFallbackModels returns the ordered models tried after the
// requested one fails. The list intentionally starts with the default
// model; candidate construction deduplicates it.
func DefaultFallbackModels() []string {
	return []string{"llama3.2:1b", "llama3.2", "llama3:1b", "tinyllama", "phi"}
}

// ModelInfo describes one installed model as reported by the model
// server's tag listing.
type ModelInfo struct {
	// Name is the model identifier, e.g. "llama3.2:1b".
	Name string

	// Size is the on-disk size in bytes.
	Size int64

	// ModifiedAt is the server-reported modification timestamp,
	// passed through verbatim.
	ModifiedAt string
}

// smallModelMarkers are the name fragments that mark a model as small
// enough to recommend on memory-constrained machines.
var smallModelMarkers = []string{"tiny", "1b", "phi"}

// IsSmall reports whether the model is a lightweight one worth
// suggesting when larger models fail to load.
func (m ModelInfo) IsSmall() bool {
	name := strings.ToLower(m.Name)
	for _, marker := range smallModelMarkers {
		if strings.Contains(name, marker) {
			return true
		}
	}
	return false
}
