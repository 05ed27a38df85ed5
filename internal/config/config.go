package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/jonathanhle/rego2hcl/internal/providers"
)

type Config struct {
	Version     string   `yaml:"version,omitempty"`
	Provider    string   `yaml:"provider"`
	Model       string   `yaml:"model,omitempty"`
	APIKey      string   `yaml:"api_key,omitempty"`
	BaseURL     string   `yaml:"base_url,omitempty"`
	Timeout     int      `yaml:"timeout,omitempty"`
	MaxTokens   int      `yaml:"max_tokens,omitempty"`
	Temperature *float64 `yaml:"temperature,omitempty"`
}

// Default returns the configuration used when no config file exists:
// the Anthropic provider with its default model and a 4096 output
// token budget, keyed from the environment.
func Default() *Config {
	cfg := &Config{
		Version:  "1.0",
		Provider: string(providers.ProviderAnthropic),
	}
	cfg.applyDefaults()
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	data = []byte(os.ExpandEnv(string(data)))

	config, err := ParseFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func ParseFromBytes(data []byte) (*Config, error) {
	var config Config
	if err := yaml.UnmarshalWithOptions(data, &config, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.MaxTokens == 0 {
		c.MaxTokens = 4096
	}
	if c.Temperature == nil {
		defaultTemperature := 0.0
		c.Temperature = &defaultTemperature
	}
}

func (c *Config) validate() error {
	if c.Version != "" && c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s", c.Version)
	}

	if c.Provider == "" {
		return fmt.Errorf("provider is required")
	}
	if _, err := providers.ToProvider(c.Provider); err != nil {
		return err
	}

	c.applyDefaults()

	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be positive number, got: %d", c.Timeout)
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must be positive number, got: %d", c.MaxTokens)
	}
	if *c.Temperature < 0 || *c.Temperature > 1 {
		return fmt.Errorf("temperature must be between 0.0 and 1.0, got: %f", *c.Temperature)
	}

	return nil
}

// MissingCredentialError is returned when the provider's API key is
// neither configured nor present in the environment. Its message
// includes remediation instructions.
type MissingCredentialError struct {
	EnvVar string
	KeyURL string
}

func (e *MissingCredentialError) Error() string {
	msg := fmt.Sprintf("%s environment variable not set", e.EnvVar)
	if e.KeyURL != "" {
		msg += fmt.Sprintf("\n\nGet your API key from: %s", e.KeyURL)
	}
	msg += fmt.Sprintf("\nThen set it: export %s='your-key-here'", e.EnvVar)
	return msg
}

// Resolve fills in the provider's default model and resolves the API
// key from the environment. It must run before any input file is read
// or network connection is opened, so a missing credential fails the
// run up front.
func (c *Config) Resolve() error {
	provider, err := providers.ToProvider(c.Provider)
	if err != nil {
		return err
	}

	defaults := providers.GetProviderDefaults(provider)

	if c.Model == "" {
		c.Model = defaults.Model
	}

	if c.APIKey == "" && defaults.ApiKeyVar != "" {
		c.APIKey = os.Getenv(defaults.ApiKeyVar)
		if c.APIKey == "" {
			return &MissingCredentialError{
				EnvVar: defaults.ApiKeyVar,
				KeyURL: defaults.KeyURL,
			}
		}
	}

	return nil
}

// maskAPIKey masks the API key for secure display
func maskAPIKey(apiKey string) string {
	if len(apiKey) <= 11 {
		return "[MASKED]"
	}
	return apiKey[:7] + "[MASKED]" + apiKey[len(apiKey)-4:]
}

func (c *Config) PrintAsYAML() error {
	// Create a copy of the config with masked API key
	configCopy := *c
	if c.APIKey != "" {
		configCopy.APIKey = maskAPIKey(c.APIKey)
	}

	yamlData, err := yaml.Marshal(&configCopy)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	fmt.Println(string(yamlData))
	return nil
}
