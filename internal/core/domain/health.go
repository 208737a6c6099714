package domain

// Health status values.
const (
	// HealthStatusHealthy means the model server answered the tag
	// listing and models can be enumerated.
	HealthStatusHealthy = "healthy"

	// HealthStatusUnhealthy means the model server could not be
	// queried; Error carries the reason.
	HealthStatusUnhealthy = "unhealthy"
)

// Health reports the reachability of the model server and the models
// it has installed. It is always produced, never replaced by an error:
// a failed probe yields an unhealthy report.
type Health struct {
	// Status is HealthStatusHealthy or HealthStatusUnhealthy.
	Status string

	// Ollama describes the model server's state in words
	// ("running", "not running", ...).
	Ollama string

	// Models lists the installed model names.
	Models []string

	// DefaultModel is the configured generation model.
	DefaultModel string

	// ModelAvailable reports whether any installed model name
	// contains the default model's name.
	ModelAvailable bool

	// SmallModels lists installed models suitable for low-memory
	// machines (see ModelInfo.IsSmall).
	SmallModels []string

	// Error carries the probe failure when unhealthy.
	Error string
}
