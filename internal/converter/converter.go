package converter

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/jonathanhle/rego2hcl/internal/providers"
)

// Converter runs a single Rego-to-HCL conversion through a completion
// client. It holds no state between invocations.
type Converter struct {
	client    providers.Client
	maxTokens int
	timeout   time.Duration
}

type Options struct {
	MaxTokens int
	Timeout   time.Duration
}

func New(client providers.Client, opts Options) *Converter {
	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}

	return &Converter{
		client:    client,
		maxTokens: maxTokens,
		timeout:   opts.Timeout,
	}
}

// ReadPolicy loads the input Rego policy as UTF-8 text.
func ReadPolicy(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("error reading file %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("error reading file %s: content is not valid UTF-8", path)
	}
	return string(data), nil
}

// ConvertFile reads the Rego policy at path, submits it to the
// completion provider, and returns the sanitized HCL rule text.
func (c *Converter) ConvertFile(ctx context.Context, path string) (string, error) {
	regoContent, err := ReadPolicy(path)
	if err != nil {
		return "", err
	}

	return c.Convert(ctx, regoContent)
}

// Convert submits the Rego policy text to the completion provider and
// returns the sanitized HCL rule text. Exactly one request is sent.
func (c *Converter) Convert(ctx context.Context, regoContent string) (string, error) {
	prompt, err := BuildPrompt(regoContent)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Complete(ctx, &providers.Request{
		Prompt:    prompt,
		MaxTokens: c.maxTokens,
		Timeout:   c.timeout,
	})
	if err != nil {
		return "", err
	}

	log.Debug("Completion finished",
		"provider", c.client.Name(),
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens)

	return StripFence(strings.TrimSpace(resp.Content)), nil
}
