package validate

import (
	"fmt"
	"strings"
)

// imperativeStarts are sentence openers treated as actionable guidance.
var imperativeStarts = map[string]bool{
	"use":      true,
	"avoid":    true,
	"keep":     true,
	"prefer":   true,
	"write":    true,
	"run":      true,
	"add":      true,
	"create":   true,
	"define":   true,
	"ensure":   true,
	"make":     true,
	"never":    true,
	"always":   true,
	"do":       true,
	"don't":    true,
	"treat":    true,
	"return":   true,
	"document": true,
	"link":     true,
	"respond":  true,
	"declare":  true,
	"check":    true,
	"review":   true,
	"test":     true,
	"split":    true,
	"name":     true,
	"set":      true,
	"isolate":  true,
	"let":      true,
	"paginate": true,
	"post":     true,
	"model":    true,
	"give":     true,
	"drive":    true,
}

// contentPass heuristically checks for actionable guidance, examples, and a
// reasonable minimum length. All findings are warnings.
func contentPass(text string, lines []string) []Issue {
	var issues []Issue

	if len(strings.TrimSpace(text)) < minContentLength {
		issues = append(issues, Issue{
			Severity:  SeverityWarning,
			Message:   fmt.Sprintf("document is shorter than %d characters; likely too brief to be useful guidance", minContentLength),
			Line:      1,
			Column:    1,
			EndLine:   1,
			EndColumn: 1,
			Code:      "content-too-short",
		})
	}

	if !hasActionableGuidance(lines) {
		issues = append(issues, Issue{
			Severity:  SeverityWarning,
			Message:   "no actionable guidance found (no list items or imperative sentences)",
			Line:      1,
			Column:    1,
			EndLine:   1,
			EndColumn: 1,
			Code:      "no-actionable-guidance",
		})
	}

	if !hasExamples(text, lines) {
		issues = append(issues, Issue{
			Severity:  SeverityWarning,
			Message:   `no examples found (no fenced code blocks or "for example" phrasing)`,
			Line:      1,
			Column:    1,
			EndLine:   1,
			EndColumn: 1,
			Code:      "no-examples",
		})
	}

	return issues
}

// hasActionableGuidance looks for list markers or imperative sentence starts.
func hasActionableGuidance(lines []string) bool {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if isListItem(trimmed) {
			return true
		}
		first, _, _ := strings.Cut(trimmed, " ")
		if imperativeStarts[strings.ToLower(first)] {
			return true
		}
	}
	return false
}

// isListItem reports bullet or ordered list markers.
func isListItem(trimmed string) bool {
	if len(trimmed) >= 2 {
		switch trimmed[0] {
		case '-', '*', '+':
			if trimmed[1] == ' ' {
				return true
			}
		}
	}
	// Ordered list: digits followed by ". " or ") ".
	i := 0
	for i < len(trimmed) && trimmed[i] >= '0' && trimmed[i] <= '9' {
		i++
	}
	if i > 0 && i+1 < len(trimmed) && (trimmed[i] == '.' || trimmed[i] == ')') && trimmed[i+1] == ' ' {
		return true
	}
	return false
}

// hasExamples looks for fenced code blocks or literal "for example" phrasing.
func hasExamples(text string, lines []string) bool {
	for _, line := range lines {
		if isFenceDelimiter(line) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(text), "for example")
}
