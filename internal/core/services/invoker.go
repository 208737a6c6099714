package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/core/domain"
	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/core/ports/driven"
	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/logger"
)

// maxSuggestedModels caps the installed-model names listed in the
// exhaustion error.
const maxSuggestedModels = 5

// attemptOutcome classifies one generation attempt's failure.
type attemptOutcome int

const (
	// outcomeFatal aborts the whole operation: the server itself is
	// unreachable, so no candidate can do better.
	outcomeFatal attemptOutcome = iota

	// outcomeTimeout advances to the next candidate; on the last
	// candidate the timeout itself is the failure.
	outcomeTimeout

	// outcomeExhausted is a resource-exhaustion reply. It always
	// advances, even past the last candidate - it is the only path
	// into the composite "all models failed" error.
	outcomeExhausted

	// outcomeFailed is any other non-success reply or malformed
	// payload; fatal only on the last candidate.
	outcomeFailed
)

// ModelInvoker runs the ordered-fallback protocol for one prompt:
// attempt a candidate, classify the outcome, then return, advance, or
// abort. A model is never retried within one call, and no state
// outlives a call.
type ModelInvoker struct {
	client    driven.ModelClient
	model     string
	fallbacks []string
}

// NewModelInvoker creates an invoker over the given client. model is
// the default candidate when a call does not request one; fallbacks
// are tried in order after the requested model fails.
func NewModelInvoker(client driven.ModelClient, model string, fallbacks []string) *ModelInvoker {
	if model == "" {
		model = domain.DefaultModel
	}
	if fallbacks == nil {
		fallbacks = domain.DefaultFallbackModels()
	}
	return &ModelInvoker{
		client:    client,
		model:     model,
		fallbacks: fallbacks,
	}
}

// DefaultModel returns the model used when a call requests none.
func (inv *ModelInvoker) DefaultModel() string {
	return inv.model
}

// Complete generates a response for the prompt, walking the candidate
// list until one model answers. An empty model selects the configured
// default. The returned error is always user-presentable; transport
// detail is logged, not surfaced.
func (inv *ModelInvoker) Complete(ctx context.Context, prompt, model string) (string, error) {
	if model == "" {
		model = inv.model
	}
	candidates := candidateModels(model, inv.fallbacks)

	// lastErr mirrors the original bookkeeping: resource exhaustion
	// records the server's message, generic failures record the
	// formatted error, timeouts record nothing.
	var lastErr string

	for i, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		last := i == len(candidates)-1
		logger.Debug("Trying model %s (%d/%d)", candidate, i+1, len(candidates))

		text, err := inv.client.Generate(ctx, candidate, prompt)
		if err == nil {
			logger.Info("Model %s answered", candidate)
			return text, nil
		}

		switch classifyAttempt(err) {
		case outcomeFatal:
			logger.Warn("Model server unreachable, aborting fallback")
			return "", err

		case outcomeTimeout:
			logger.Warn("Model %s timed out", candidate)
			if last {
				return "", err
			}

		case outcomeExhausted:
			var modelErr *domain.ModelError
			if errors.As(err, &modelErr) {
				lastErr = modelErr.Message
			}
			logger.Warn("Model %s out of memory, trying next", candidate)

		case outcomeFailed:
			lastErr = err.Error()
			logger.Warn("Model %s failed: %v", candidate, err)
			if last {
				return "", fmt.Errorf("Ollama error: %w", err)
			}
		}
	}

	return "", inv.exhaustedError(ctx, lastErr)
}

// candidateModels builds the ordered candidate list: the requested
// model first, then the fallbacks minus the requested model. Only the
// requested model is deduplicated; the fallback list is otherwise
// taken as configured.
func candidateModels(requested string, fallbacks []string) []string {
	models := make([]string, 0, len(fallbacks)+1)
	models = append(models, requested)
	for _, m := range fallbacks {
		if m != requested {
			models = append(models, m)
		}
	}
	return models
}

// classifyAttempt maps a Generate error onto the protocol's outcome
// taxonomy. Resource exhaustion is only recognised on error statuses;
// a malformed success payload is a plain failure however its text
// reads.
func classifyAttempt(err error) attemptOutcome {
	switch {
	case errors.Is(err, context.Canceled):
		// The caller gave up; trying another model helps nobody.
		return outcomeFatal
	case errors.Is(err, domain.ErrModelServerDown):
		return outcomeFatal
	case errors.Is(err, domain.ErrGenerateTimeout):
		return outcomeTimeout
	}

	var modelErr *domain.ModelError
	if errors.As(err, &modelErr) && modelErr.Status >= 300 && domain.IsResourceExhausted(modelErr.Error()) {
		return outcomeExhausted
	}
	return outcomeFailed
}

// exhaustedError builds the composite failure raised when every
// candidate was tried without success. The installed-model listing is
// best-effort: when it fails, the error suggests pulling a small
// model instead.
func (inv *ModelInvoker) exhaustedError(ctx context.Context, lastErr string) error {
	names := inv.installedModelNames(ctx)

	var b strings.Builder
	fmt.Fprintf(&b, "All models failed. Last error: %s\n\n", lastErr)
	b.WriteString("Try:\n")
	b.WriteString("1. Restart Ollama: Close and run 'ollama serve' again\n")
	b.WriteString("2. Free up RAM: Close other applications\n")
	if len(names) > 0 {
		if len(names) > maxSuggestedModels {
			names = names[:maxSuggestedModels]
		}
		fmt.Fprintf(&b, "3. Available models: %s\n", strings.Join(names, ", "))
	} else {
		b.WriteString("3. Install a smaller model: 'ollama pull tinyllama'\n")
	}
	return errors.New(b.String())
}

func (inv *ModelInvoker) installedModelNames(ctx context.Context) []string {
	infos, err := inv.client.ListModels(ctx)
	if err != nil {
		logger.Debug("Model listing for remediation failed: %v", err)
		return nil
	}
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}
	return names
}
