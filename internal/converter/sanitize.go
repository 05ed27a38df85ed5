package converter

import "strings"

// StripFence removes a wrapping markdown code fence from the
// completion text. When the text opens with a fence marker the first
// and last lines are dropped unconditionally, so a response with an
// opening fence but no closing fence loses its final content line.
// That matches the reference converter and is kept for compatibility.
func StripFence(content string) string {
	if !strings.HasPrefix(content, "```") {
		return content
	}

	lines := strings.Split(content, "\n")
	if len(lines) < 2 {
		return ""
	}
	return strings.Join(lines[1:len(lines)-1], "\n")
}
