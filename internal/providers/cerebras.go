package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// CerebrasClient implements the Client interface for Cerebras API
type CerebrasClient struct {
	httpClient  *http.Client
	apiKey      string
	model       string
	baseURL     string
	temperature float64
	maxTokens   int
}

// NewCerebrasClient creates a new Cerebras client
func NewCerebrasClient(config *Config) (*CerebrasClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("API key is required for Cerebras provider")
	}

	baseURL := "https://api.cerebras.ai/v1"
	if config.BaseURL != "" {
		baseURL = config.BaseURL
	}

	return &CerebrasClient{
		httpClient:  &http.Client{Timeout: config.Timeout},
		apiKey:      config.APIKey,
		model:       config.Model,
		baseURL:     baseURL,
		temperature: config.Temperature,
		maxTokens:   config.MaxTokens,
	}, nil
}

// Name returns the provider name
func (c *CerebrasClient) Name() string {
	return string(ProviderCerebras)
}

// Validate checks if the client configuration is valid
func (c *CerebrasClient) Validate() error {
	if c.httpClient == nil {
		return fmt.Errorf("HTTP client is not initialized")
	}
	if c.apiKey == "" {
		return fmt.Errorf("API key is required")
	}
	if c.model == "" {
		return fmt.Errorf("model is required")
	}
	return nil
}

// CerebrasMessage represents a message in the chat completion request
type CerebrasMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CerebrasRequest represents the request payload for Cerebras API
type CerebrasRequest struct {
	Model       string            `json:"model"`
	Messages    []CerebrasMessage `json:"messages"`
	Temperature *float64          `json:"temperature,omitempty"`
	MaxTokens   *int              `json:"max_completion_tokens,omitempty"`
}

// CerebrasChoice represents a choice in the API response
type CerebrasChoice struct {
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
}

// CerebrasUsage represents token usage in the API response
type CerebrasUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// CerebrasResponse represents the response from Cerebras API
type CerebrasResponse struct {
	ID      string           `json:"id"`
	Choices []CerebrasChoice `json:"choices"`
	Usage   CerebrasUsage    `json:"usage"`
	Created int64            `json:"created"`
	Model   string           `json:"model"`
}

// Complete sends a completion request to Cerebras API
func (c *CerebrasClient) Complete(ctx context.Context, req *Request) (*Response, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("client validation failed: %w", err)
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.maxTokens
	}

	payload := CerebrasRequest{
		Model: c.model,
		Messages: []CerebrasMessage{
			{Role: "user", Content: req.Prompt},
		},
		Temperature: &c.temperature,
		MaxTokens:   &maxTokens,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("cerebras API request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cerebras API returned status %d: %s", resp.StatusCode, string(body))
	}

	var cerebrasResp CerebrasResponse
	if err := json.Unmarshal(body, &cerebrasResp); err != nil {
		return nil, fmt.Errorf("failed to parse Cerebras response: %w", err)
	}

	if len(cerebrasResp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	return &Response{
		Content: cerebrasResp.Choices[0].Message.Content,
		Usage: Usage{
			PromptTokens:     cerebrasResp.Usage.PromptTokens,
			CompletionTokens: cerebrasResp.Usage.CompletionTokens,
			TotalTokens:      cerebrasResp.Usage.TotalTokens,
		},
	}, nil
}
