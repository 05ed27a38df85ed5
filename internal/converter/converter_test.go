package converter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathanhle/rego2hcl/internal/providers"
)

// stubClient implements providers.Client without network access
type stubClient struct {
	response string
	err      error
	lastReq  *providers.Request
}

func (s *stubClient) Complete(ctx context.Context, req *providers.Request) (*providers.Response, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &providers.Response{Content: s.response}, nil
}

func (s *stubClient) Name() string { return "stub" }

func (s *stubClient) Validate() error { return nil }

const regoFixture = `package accurics

s3Versioning[api.id] {
    api := input.aws_s3_bucket[_]
    not api.config.versioning
}
`

func TestConvertFile(t *testing.T) {
	tempDir := t.TempDir()
	regoPath := filepath.Join(tempDir, "s3Versioning.rego")
	if err := os.WriteFile(regoPath, []byte(regoFixture), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	stub := &stubClient{response: "```hcl\nrule \"s3_versioning\" {}\n```"}
	conv := New(stub, Options{})

	got, err := conv.ConvertFile(context.Background(), regoPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != "rule \"s3_versioning\" {}" {
		t.Errorf("expected sanitized rule, got %q", got)
	}

	// The rendered prompt carries the policy at its single
	// interpolation point and the output instruction verbatim.
	if stub.lastReq == nil {
		t.Fatal("no request was sent")
	}
	if !strings.Contains(stub.lastReq.Prompt, regoFixture) {
		t.Error("prompt does not contain the Rego policy text")
	}
	if !strings.Contains(stub.lastReq.Prompt, "Output ONLY the HCL rule, no explanation or markdown formatting.") {
		t.Error("prompt does not contain the output instruction")
	}
	if stub.lastReq.MaxTokens != 4096 {
		t.Errorf("expected default max tokens 4096, got %d", stub.lastReq.MaxTokens)
	}
}

func TestConvertTrimsWhitespace(t *testing.T) {
	stub := &stubClient{response: "\n\nrule \"x\" {}\n\n"}
	conv := New(stub, Options{})

	got, err := conv.Convert(context.Background(), regoFixture)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "rule \"x\" {}" {
		t.Errorf("expected trimmed response, got %q", got)
	}
}

func TestConvertProviderError(t *testing.T) {
	stub := &stubClient{err: fmt.Errorf("rate limited")}
	conv := New(stub, Options{})

	_, err := conv.Convert(context.Background(), regoFixture)
	if err == nil {
		t.Fatal("expected provider error to propagate")
	}
	if !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("expected underlying error, got %v", err)
	}
}

func TestConvertFileMissingInput(t *testing.T) {
	stub := &stubClient{response: "rule \"x\" {}"}
	conv := New(stub, Options{})

	_, err := conv.ConvertFile(context.Background(), filepath.Join(t.TempDir(), "missing.rego"))
	if err == nil {
		t.Fatal("expected error for missing input file")
	}
	if !strings.Contains(err.Error(), "missing.rego") {
		t.Errorf("error should name the input path, got %v", err)
	}
	if stub.lastReq != nil {
		t.Error("no completion request should be sent when the input file is unreadable")
	}
}

func TestReadPolicyRejectsInvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.rego")
	if err := os.WriteFile(path, []byte{0xff, 0xfe, 0xfd}, 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	_, err := ReadPolicy(path)
	if err == nil {
		t.Fatal("expected error for invalid UTF-8 input")
	}
	if !strings.Contains(err.Error(), "UTF-8") {
		t.Errorf("expected UTF-8 error, got %v", err)
	}
}
