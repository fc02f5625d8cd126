package llm

import (
	"fmt"

	"github.com/datphan/lawgen/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with logging
// and retry middleware. Pass a nil log to skip event logging (tests).
func NewProvider(cfg Config, log store.RequestAppender, runID string) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "ollama":
		base, err = NewOllamaProvider(cfg.Ollama)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → retry → logging → base
	wrapped := base
	if log != nil {
		wrapped = WithLogging(wrapped, log, runID, cfg.Provider)
	}
	return WithRetry(wrapped, cfg.Retry), nil
}
