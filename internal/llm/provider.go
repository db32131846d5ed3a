// Package llm is the optional structuring fallback: when the heuristic
// extractor finds nothing, a model can be asked to emit the typed entities.
// It is disabled by default and never affects deterministic builds.
package llm

import (
	"context"
	"fmt"

	"github.com/ppiankov/claimtrace/internal/model"
)

// Provider defines the interface for structuring providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Structure asks the model to convert freeform analysis text into
	// the typed extraction entities
	Structure(ctx context.Context, rawText string) (*model.Extraction, error)

	// IsAvailable checks if the provider is configured and reachable
	IsAvailable(ctx context.Context) bool
}

// NewProvider creates a provider from configuration. An empty provider
// name disables the fallback.
func NewProvider(cfg model.LLMConfig) (Provider, error) {
	switch cfg.Provider {
	case "":
		return nil, nil
	case "openai":
		return NewOpenAIProvider(cfg)
	default:
		return nil, fmt.Errorf("unknown llm provider: %q", cfg.Provider)
	}
}
