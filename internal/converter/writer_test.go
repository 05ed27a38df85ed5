package converter

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteRuleCreatesParentDirs(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "rules", "aws", "s3_versioning.hcl")
	content := "rule \"s3_versioning\" {\n  severity = \"error\"\n}"

	if err := WriteRule(path, content); err != nil {
		t.Fatalf("WriteRule failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written file: %v", err)
	}
	if string(data) != content {
		t.Errorf("written content mismatch: got %q, want %q", string(data), content)
	}
}

func TestWriteRuleOverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rule.hcl")

	if err := WriteRule(path, "old"); err != nil {
		t.Fatalf("WriteRule failed: %v", err)
	}
	if err := WriteRule(path, "new"); err != nil {
		t.Fatalf("WriteRule failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written file: %v", err)
	}
	if string(data) != "new" {
		t.Errorf("expected overwrite, got %q", string(data))
	}
}

func TestWriteRuleBareFilename(t *testing.T) {
	tempDir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	defer func() { _ = os.Chdir(cwd) }()

	if err := WriteRule("rule.hcl", "content"); err != nil {
		t.Fatalf("WriteRule failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tempDir, "rule.hcl"))
	if err != nil {
		t.Fatalf("failed to read written file: %v", err)
	}
	if string(data) != "content" {
		t.Errorf("written content mismatch: got %q", string(data))
	}
}
