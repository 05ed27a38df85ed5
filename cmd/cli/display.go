package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jonathanhle/rego2hcl/internal/color"
)

const previewLines = 20

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(color.Cyan)

	bannerStyle = lipgloss.NewStyle().
			Foreground(color.DarkGray)

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(color.Green)

	ruleStyle = lipgloss.NewStyle().
			Foreground(color.LightGray)

	mutedStyle = lipgloss.NewStyle().
			Foreground(color.DarkGray)
)

// printDryRun prints the converted rule between banner lines instead
// of writing it to disk.
func printDryRun(content string) {
	banner := bannerStyle.Render(strings.Repeat("=", 60))

	fmt.Println()
	fmt.Println(banner)
	fmt.Println(headerStyle.Render("Converted HCL Rule:"))
	fmt.Println(banner)
	fmt.Println(content)
	fmt.Println(banner)
}

func printSaved(path string) {
	fmt.Println(successStyle.Render("✅ Converted rule saved to: " + path))
}

// printPreview shows the first 20 lines of the converted rule with a
// count of any remaining lines.
func printPreview(content string) {
	divider := bannerStyle.Render(strings.Repeat("-", 60))

	fmt.Println()
	fmt.Println(headerStyle.Render("📋 Preview:"))
	fmt.Println(divider)

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if i >= previewLines {
			break
		}
		fmt.Println(ruleStyle.Render(line))
	}
	if len(lines) > previewLines {
		fmt.Println(mutedStyle.Render(fmt.Sprintf("... (%d more lines)", len(lines)-previewLines)))
	}
	fmt.Println(divider)
}
