package providers

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiClient implements the Client interface for Google Gemini API
type GeminiClient struct {
	client      *genai.Client
	model       string
	temperature float64
	maxTokens   int
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(config *Config) (*GeminiClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("API key is required for Gemini provider")
	}

	ctx := context.Background()

	// Create client with Gemini API backend
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client:      client,
		model:       config.Model,
		temperature: config.Temperature,
		maxTokens:   config.MaxTokens,
	}, nil
}

// Name returns the provider name
func (c *GeminiClient) Name() string {
	return string(ProviderGemini)
}

// Validate checks if the client configuration is valid
func (c *GeminiClient) Validate() error {
	if c.client == nil {
		return fmt.Errorf("client is not initialized")
	}
	if c.model == "" {
		return fmt.Errorf("model is required")
	}
	return nil
}

// Complete sends a completion request to Gemini API
func (c *GeminiClient) Complete(ctx context.Context, req *Request) (*Response, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("client validation failed: %w", err)
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.maxTokens
	}
	temperature := float32(c.temperature)

	genConfig := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxTokens),
		Temperature:     &temperature,
	}

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(req.Prompt), genConfig)
	if err != nil {
		return nil, fmt.Errorf("gemini API request failed: %w", err)
	}

	responseText := result.Text()
	if responseText == "" {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	usage := Usage{}
	if result.UsageMetadata != nil {
		usage = Usage{
			PromptTokens:     int(result.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(result.UsageMetadata.TotalTokenCount),
		}
	}

	return &Response{
		Content: responseText,
		Usage:   usage,
	}, nil
}
