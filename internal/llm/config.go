package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds provider configuration.
type Config struct {
	// Provider selects the transport. Values: "ollama", "openai", "mock".
	Provider string

	Ollama OllamaConfig
	OpenAI OpenAIConfig
	Retry  RetryConfig
}

// OllamaConfig configures the native Ollama transport.
type OllamaConfig struct {
	Host  string // Default: http://localhost:11434
	Model string
}

// OpenAIConfig configures the OpenAI-compatible transport.
type OpenAIConfig struct {
	APIKey  string // Optional for local servers.
	Model   string
	BaseURL string // e.g. http://localhost:11434/v1
}

// DefaultConfig returns a Config aimed at a local Ollama install.
func DefaultConfig() Config {
	return Config{
		Provider: "ollama",
		Ollama: OllamaConfig{
			Host:  DefaultOllamaHost,
			Model: "llama3.1:8b",
		},
		OpenAI: OpenAIConfig{
			Model:   "llama3.1:8b",
			BaseURL: DefaultOllamaHost + "/v1",
		},
		Retry: RetryConfig{
			MaxRetries: 1,
			Sleep:      time.Second,
		},
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.ApplyEnv()
	return cfg
}

// ApplyEnv overlays LAWGEN_* environment variables onto the config.
// Unset variables leave the current values alone, so env sits between the
// settings file and command-line flags in precedence.
func (c *Config) ApplyEnv() {
	if p := os.Getenv("LAWGEN_PROVIDER"); p != "" {
		c.Provider = p
	}
	if h := os.Getenv("LAWGEN_HOST"); h != "" {
		c.Ollama.Host = h
	}
	if m := os.Getenv("LAWGEN_MODEL"); m != "" {
		c.Ollama.Model = m
		c.OpenAI.Model = m
	}
	if k := os.Getenv("LAWGEN_API_KEY"); k != "" {
		c.OpenAI.APIKey = k
	}
	if u := os.Getenv("LAWGEN_BASE_URL"); u != "" {
		c.OpenAI.BaseURL = u
	}
}

// Validate checks that the selected provider is known and usable.
func (c Config) Validate() error {
	switch c.Provider {
	case "ollama":
		if c.Ollama.Model == "" {
			return fmt.Errorf("a model name is required for the ollama provider")
		}
	case "openai":
		if c.OpenAI.Model == "" {
			return fmt.Errorf("a model name is required for the openai provider")
		}
	case "mock":
		// Nothing to check.
	default:
		return fmt.Errorf("unknown provider: %q", c.Provider)
	}
	return nil
}
