package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicClient implements the Client interface for Anthropic API
type AnthropicClient struct {
	client      *anthropic.Client
	model       string
	temperature float64
	maxTokens   int
}

// NewAnthropicClient creates a new Anthropic client
func NewAnthropicClient(config *Config) (*AnthropicClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("API key is required for Anthropic provider")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
	}

	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}

	client := anthropic.NewClient(opts...)

	return &AnthropicClient{
		client:      &client,
		model:       config.Model,
		temperature: config.Temperature,
		maxTokens:   config.MaxTokens,
	}, nil
}

// Name returns the provider name
func (c *AnthropicClient) Name() string {
	return string(ProviderAnthropic)
}

// Validate checks if the client configuration is valid
func (c *AnthropicClient) Validate() error {
	if c.client == nil {
		return fmt.Errorf("client is not initialized")
	}
	if c.model == "" {
		return fmt.Errorf("model is required")
	}
	return nil
}

// Complete sends a completion request to Anthropic API
func (c *AnthropicClient) Complete(ctx context.Context, req *Request) (*Response, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("client validation failed: %w", err)
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.maxTokens
	}

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Temperature: anthropic.Float(c.temperature),
		Model:       anthropic.Model(c.model),
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: req.Prompt},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
		MaxTokens: int64(maxTokens),
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic API request failed: %w", err)
	}

	// Concatenate all text blocks in the response
	var sb strings.Builder
	for _, content := range resp.Content {
		if content.Type == "text" {
			sb.WriteString(content.Text)
		}
	}

	return &Response{
		Content: sb.String(),
		Usage: Usage{
			PromptTokens:     int(resp.Usage.InputTokens),
			CompletionTokens: int(resp.Usage.OutputTokens),
			TotalTokens:      int(resp.Usage.InputTokens + resp.Usage.OutputTokens),
		},
	}, nil
}
