// Package validate decodes converted output against the Planguard
// rule schema, catching completions that are not syntactically valid
// HCL before they reach disk.
package validate

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclsimple"
)

// RuleFile mirrors the schema Planguard expects in a rule file.
type RuleFile struct {
	Rules []Rule `hcl:"rule,block"`
}

type Rule struct {
	ID           string      `hcl:"id,label"`
	Name         string      `hcl:"name"`
	Severity     string      `hcl:"severity"`
	ResourceType string      `hcl:"resource_type"`
	When         *WhenBlock  `hcl:"when,block"`
	Conditions   []Condition `hcl:"condition,block"`
	Message      string      `hcl:"message"`
	Remediation  *string     `hcl:"remediation,optional"`
	References   []string    `hcl:"references,optional"`
}

type WhenBlock struct {
	Expression string `hcl:"expression"`
}

type Condition struct {
	Expression string `hcl:"expression"`
}

// Check decodes the converted text as a single Planguard rule and
// verifies the fields Planguard requires. The rule's expressions are
// carried as strings and are not evaluated here.
func Check(content string) (*Rule, error) {
	var file RuleFile
	if err := hclsimple.Decode("converted.hcl", []byte(content), nil, &file); err != nil {
		return nil, fmt.Errorf("converted output is not a valid Planguard rule: %w", err)
	}

	if len(file.Rules) == 0 {
		return nil, fmt.Errorf("converted output contains no rule block")
	}
	if len(file.Rules) > 1 {
		return nil, fmt.Errorf("converted output contains %d rule blocks, expected exactly one", len(file.Rules))
	}

	rule := &file.Rules[0]

	switch rule.Severity {
	case "error", "warning", "info":
	default:
		return nil, fmt.Errorf("rule %q has invalid severity %q, expected error, warning, or info", rule.ID, rule.Severity)
	}

	if len(rule.Conditions) == 0 {
		return nil, fmt.Errorf("rule %q has no condition block", rule.ID)
	}

	return rule, nil
}
