package providers

import (
	"context"
	"fmt"
	"time"
)

type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
	ProviderGemini    Provider = "gemini"
	ProviderOllama    Provider = "ollama"
	ProviderCerebras  Provider = "cerebras"
)

func ToProvider(provider string) (Provider, error) {
	switch provider {
	case "anthropic":
		return ProviderAnthropic, nil
	case "openai":
		return ProviderOpenAI, nil
	case "gemini":
		return ProviderGemini, nil
	case "ollama":
		return ProviderOllama, nil
	case "cerebras":
		return ProviderCerebras, nil
	default:
		return "", fmt.Errorf("invalid provider: %s", provider)
	}
}

func GetAllProviders() []Provider {
	return []Provider{ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOllama, ProviderCerebras}
}

type ProviderDefaults struct {
	Model     string
	ApiKeyVar string
	KeyURL    string
}

func GetProviderDefaults(provider Provider) ProviderDefaults {
	switch provider {
	case ProviderAnthropic:
		return ProviderDefaults{
			Model:     "claude-sonnet-4-5-20250929",
			ApiKeyVar: "ANTHROPIC_API_KEY",
			KeyURL:    "https://console.anthropic.com/",
		}
	case ProviderOpenAI:
		return ProviderDefaults{
			Model:     "gpt-4o",
			ApiKeyVar: "OPENAI_API_KEY",
			KeyURL:    "https://platform.openai.com/api-keys",
		}
	case ProviderGemini:
		return ProviderDefaults{
			Model:     "gemini-2.5-flash",
			ApiKeyVar: "GOOGLE_API_KEY",
			KeyURL:    "https://aistudio.google.com/apikey",
		}
	case ProviderOllama:
		return ProviderDefaults{
			Model:     "llama3.2",
			ApiKeyVar: "", // Ollama doesn't require an API key
		}
	case ProviderCerebras:
		return ProviderDefaults{
			Model:     "llama-4-scout-17b-16e-instruct",
			ApiKeyVar: "CEREBRAS_API_KEY",
			KeyURL:    "https://cloud.cerebras.ai/",
		}
	default:
		return ProviderDefaults{
			Model:     "<unknown>",
			ApiKeyVar: "<unknown>",
		}
	}
}

// Request represents a single completion request to an AI provider
type Request struct {
	Prompt    string
	MaxTokens int
	Timeout   time.Duration
}

// Response represents the text completion returned by an AI provider
type Response struct {
	Content string
	Usage   Usage
}

// Usage represents token usage information
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Client defines the interface for AI providers
type Client interface {
	// Complete sends a completion request to the AI provider
	Complete(ctx context.Context, req *Request) (*Response, error)

	// Name returns the name of the provider
	Name() string

	// Validate checks if the client configuration is valid
	Validate() error
}

// Config holds common configuration for AI providers
type Config struct {
	Provider    Provider
	Model       string
	APIKey      string
	BaseURL     string
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
}

// CreateClient creates the completion client for the configured provider.
// Exactly one request is sent per run; failures are surfaced to the caller
// without retries.
func CreateClient(cfg *Config) (Client, error) {
	var client Client
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		client, err = NewAnthropicClient(cfg)
	case ProviderOpenAI:
		client, err = NewOpenAIClient(cfg)
	case ProviderGemini:
		client, err = NewGeminiClient(cfg)
	case ProviderOllama:
		client, err = NewOllamaClient(cfg)
	case ProviderCerebras:
		client, err = NewCerebrasClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}
