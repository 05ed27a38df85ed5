package converter

import (
	"bytes"
	"fmt"
	"text/template"
)

// ConversionPromptTemplate is the instructional prompt sent to the
// completion provider. Its wording is part of the tool's observable
// contract: it drives the shape and quality of the generated rule.
const ConversionPromptTemplate = `You are an expert at converting Terrascan OPA/Rego policies to Planguard HCL rules.

# Planguard HCL Rule Format

Planguard rules use HashiCorp Configuration Language (HCL) with Terraform expression syntax:

` + "```hcl" + `
rule "rule_id" {
  name     = "Human readable name"
  severity = "error"  # or "warning", "info"

  resource_type = "aws_s3_bucket"  # or "*" for all resources

  # Optional: only apply when this condition is true
  when {
    expression = "lookup(self.tags, 'Environment', '') == 'prod'"
  }

  # Main validation logic
  condition {
    expression = "!has(self, 'versioning') || try(self.versioning.enabled, false) != true"
  }

  message = "S3 buckets should enable versioning"

  # Optional remediation guidance
  remediation = <<-EOT
    Enable versioning in your S3 bucket:

    resource "aws_s3_bucket" "example" {
      bucket = "my-bucket"

      versioning {
        enabled = true
      }
    }
  EOT
}
` + "```" + `

## Key Planguard Features:

1. **Direct Resource Access**: Use ` + "`self`" + ` to access current resource attributes
   - ` + "`self.acl`, `self.versioning.enabled`" + `, etc.

2. **Cross-Resource Queries**: Use ` + "`resources()`" + ` function
   ` + "```hcl" + `
   resources("aws_flow_log")  # Get all flow logs
   resources("aws_*")          # Wildcard matching
   ` + "```" + `

3. **Safe Attribute Access**: Use ` + "`has()`" + ` and ` + "`try()`" + `
   ` + "```hcl" + `
   has(self, "versioning")
   try(self.versioning.enabled, false)
   ` + "```" + `

4. **All Terraform Functions**: length, contains, jsondecode, lookup, etc.

5. **Heredoc for Complex Expressions**: Use ` + "`<<-EXPR ... EXPR`" + ` for multi-line

## Conversion Guidelines:

1. **Simplify Logic**: Focus on the most common case, not every edge case
2. **Remove Variable Cleanup**: Planguard evaluates after variable resolution
3. **Single Expression**: Combine multiple Rego clauses into one HCL expression with OR logic
4. **Clear Messages**: Simple, actionable violation messages
5. **Resource Type**: Extract from ` + "`input.aws_*`" + ` pattern

## Common Patterns:

**Rego → HCL Mappings:**
- ` + "`input.aws_s3_bucket[_]`" + ` → ` + "`resource_type = \"aws_s3_bucket\"`" + `
- ` + "`not x`" + ` → ` + "`!x`" + `
- ` + "`bucket.config.versioning`" + ` → ` + "`self.versioning`" + `
- Pattern matching → ` + "`try()`" + ` or ` + "`has()`" + ` functions

# Your Task:

Convert the following Terrascan Rego policy to a Planguard HCL rule.

1. Extract the key check being performed
2. Identify the resource type
3. Simplify the logic to cover common cases
4. Write idiomatic HCL with clear expressions
5. Include helpful message and remediation

Output ONLY the HCL rule, no explanation or markdown formatting.

---

# Terrascan Rego Policy:

` + "```rego" + `
{{ .RegoContent }}
` + "```" + `

# Planguard HCL Rule:
`

type PromptData struct {
	RegoContent string
}

var promptTmpl = template.Must(template.New("conversion").Parse(ConversionPromptTemplate))

// BuildPrompt renders the conversion prompt with the Rego policy text
// at its single interpolation point.
func BuildPrompt(regoContent string) (string, error) {
	var buf bytes.Buffer
	if err := promptTmpl.Execute(&buf, PromptData{RegoContent: regoContent}); err != nil {
		return "", fmt.Errorf("failed to render conversion prompt: %w", err)
	}
	return buf.String(), nil
}
