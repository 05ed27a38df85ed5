package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "rego2hcl.yaml")

	validConfig := `version: "1.0"
provider: anthropic
model: claude-sonnet-4-5-20250929
api_key: test-key
timeout: 120
max_tokens: 4096
temperature: 0.0
`

	err := os.WriteFile(configPath, []byte(validConfig), 0644)
	if err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	config, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if config.Version != "1.0" {
		t.Errorf("expected version '1.0', got %s", config.Version)
	}
	if config.Provider != "anthropic" {
		t.Errorf("expected provider 'anthropic', got %s", config.Provider)
	}
	if config.Model != "claude-sonnet-4-5-20250929" {
		t.Errorf("expected model 'claude-sonnet-4-5-20250929', got %s", config.Model)
	}
	if config.APIKey != "test-key" {
		t.Errorf("expected api_key 'test-key', got %s", config.APIKey)
	}
	if config.Timeout != 120 {
		t.Errorf("expected timeout 120, got %d", config.Timeout)
	}
	if config.MaxTokens != 4096 {
		t.Errorf("expected max_tokens 4096, got %d", config.MaxTokens)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("REGO2HCL_TEST_KEY", "expanded-key")

	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "rego2hcl.yaml")

	cfg := `provider: anthropic
api_key: ${REGO2HCL_TEST_KEY}
`
	if err := os.WriteFile(configPath, []byte(cfg), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	config, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if config.APIKey != "expanded-key" {
		t.Errorf("expected api_key 'expanded-key', got %s", config.APIKey)
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		wantErr string
	}{
		{
			name:    "unknown provider",
			config:  "provider: bedrock\n",
			wantErr: "invalid provider",
		},
		{
			name:    "missing provider",
			config:  "model: gpt-4o\n",
			wantErr: "provider is required",
		},
		{
			name:    "unsupported version",
			config:  "version: \"2.0\"\nprovider: anthropic\n",
			wantErr: "unsupported version",
		},
		{
			name:    "negative timeout",
			config:  "provider: anthropic\ntimeout: -5\n",
			wantErr: "timeout must be positive",
		},
		{
			name:    "temperature out of range",
			config:  "provider: anthropic\ntemperature: 1.5\n",
			wantErr: "temperature must be between",
		},
		{
			name:    "unknown field rejected",
			config:  "provider: anthropic\nretries: 3\n",
			wantErr: "failed to parse config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "rego2hcl.yaml")
			if err := os.WriteFile(configPath, []byte(tt.config), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			_, err := Load(configPath)
			if err == nil {
				t.Fatal("expected error but got none")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Provider != "anthropic" {
		t.Errorf("expected default provider 'anthropic', got %s", cfg.Provider)
	}
	if cfg.MaxTokens != 4096 {
		t.Errorf("expected default max_tokens 4096, got %d", cfg.MaxTokens)
	}
	if cfg.Temperature == nil || *cfg.Temperature != 0.0 {
		t.Error("expected default temperature 0.0")
	}
	if cfg.Timeout != 0 {
		t.Errorf("expected no default timeout, got %d", cfg.Timeout)
	}
}

func TestResolve(t *testing.T) {
	t.Run("api key from environment", func(t *testing.T) {
		t.Setenv("ANTHROPIC_API_KEY", "env-key")

		cfg := Default()
		if err := cfg.Resolve(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.APIKey != "env-key" {
			t.Errorf("expected api key from environment, got %s", cfg.APIKey)
		}
		if cfg.Model == "" {
			t.Error("expected default model to be filled in")
		}
	})

	t.Run("missing credential", func(t *testing.T) {
		t.Setenv("ANTHROPIC_API_KEY", "")

		cfg := Default()
		err := cfg.Resolve()
		if err == nil {
			t.Fatal("expected error for missing credential")
		}

		var credErr *MissingCredentialError
		if !errors.As(err, &credErr) {
			t.Fatalf("expected MissingCredentialError, got %T", err)
		}
		if !strings.Contains(err.Error(), "ANTHROPIC_API_KEY") {
			t.Errorf("error should name the environment variable, got %q", err.Error())
		}
		if !strings.Contains(err.Error(), "console.anthropic.com") {
			t.Errorf("error should include remediation URL, got %q", err.Error())
		}
	})

	t.Run("ollama needs no credential", func(t *testing.T) {
		cfg := &Config{Provider: "ollama"}
		cfg.applyDefaults()
		if err := cfg.Resolve(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("explicit key wins over environment", func(t *testing.T) {
		t.Setenv("ANTHROPIC_API_KEY", "env-key")

		cfg := Default()
		cfg.APIKey = "explicit-key"
		if err := cfg.Resolve(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.APIKey != "explicit-key" {
			t.Errorf("expected explicit key to win, got %s", cfg.APIKey)
		}
	})
}

func TestMaskAPIKey(t *testing.T) {
	if got := maskAPIKey("short"); got != "[MASKED]" {
		t.Errorf("expected short keys fully masked, got %s", got)
	}
	got := maskAPIKey("sk-ant-api03-abcdefgh1234")
	if !strings.HasPrefix(got, "sk-ant-") || !strings.HasSuffix(got, "1234") {
		t.Errorf("unexpected mask result: %s", got)
	}
	if strings.Contains(got, "abcdefgh") {
		t.Errorf("mask leaked key material: %s", got)
	}
}
