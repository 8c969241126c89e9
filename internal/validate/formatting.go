package validate

import (
	"fmt"
	"strings"
)

// formattingPass detects markdown defects: skipped heading levels, empty
// headings, an unclosed code fence, and links with empty text or URL.
func formattingPass(lines []string) []Issue {
	var issues []Issue

	issues = append(issues, checkHeadings(lines)...)
	issues = append(issues, checkFences(lines)...)
	issues = append(issues, checkLinks(lines)...)

	return issues
}

// checkHeadings flags level skips (warning) and headings with no text (error).
func checkHeadings(lines []string) []Issue {
	var issues []Issue
	prevLevel := 0
	for _, h := range scanHeadings(lines) {
		if h.text == "" {
			issues = append(issues, Issue{
				Severity:  SeverityError,
				Message:   "heading has no text",
				Line:      h.line,
				Column:    1,
				EndLine:   h.line,
				EndColumn: h.width + 1,
				Code:      "empty-heading",
			})
		}
		if prevLevel > 0 && h.level > prevLevel+1 {
			issues = append(issues, Issue{
				Severity:  SeverityWarning,
				Message:   fmt.Sprintf("heading level jumps from %d to %d", prevLevel, h.level),
				Line:      h.line,
				Column:    1,
				EndLine:   h.line,
				EndColumn: h.width + 1,
				Code:      "heading-level-skip",
			})
		}
		prevLevel = h.level
	}
	return issues
}

// checkFences flags a code fence left open at end of document.
func checkFences(lines []string) []Issue {
	inFence := false
	openLine := 0
	for i, line := range lines {
		if isFenceDelimiter(line) {
			inFence = !inFence
			if inFence {
				openLine = i + 1
			}
		}
	}
	if !inFence {
		return nil
	}
	return []Issue{{
		Severity:  SeverityError,
		Message:   "code fence opened here is never closed",
		Line:      openLine,
		Column:    1,
		EndLine:   openLine,
		EndColumn: len(lines[openLine-1]) + 1,
		Code:      "unclosed-code-fence",
	}}
}

// checkLinks flags inline links with empty display text or empty URL.
// The scan is a single pass per line over "[text](url)" shapes; it does not
// attempt full markdown parsing.
func checkLinks(lines []string) []Issue {
	var issues []Issue
	inFence := false
	for i, line := range lines {
		if isFenceDelimiter(line) {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}

		for pos := 0; pos < len(line); {
			open := strings.Index(line[pos:], "[")
			if open < 0 {
				break
			}
			open += pos
			sep := strings.Index(line[open:], "](")
			if sep < 0 {
				break
			}
			sep += open
			end := strings.Index(line[sep:], ")")
			if end < 0 {
				break
			}
			end += sep

			text := line[open+1 : sep]
			url := line[sep+2 : end]

			if strings.TrimSpace(text) == "" {
				issues = append(issues, Issue{
					Severity:  SeverityError,
					Message:   "link has empty display text",
					Line:      i + 1,
					Column:    open + 1,
					EndLine:   i + 1,
					EndColumn: end + 2,
					Code:      "empty-link-text",
				})
			}
			if strings.TrimSpace(url) == "" {
				issues = append(issues, Issue{
					Severity:  SeverityError,
					Message:   "link has empty URL",
					Line:      i + 1,
					Column:    open + 1,
					EndLine:   i + 1,
					EndColumn: end + 2,
					Code:      "empty-link-url",
				})
			}

			pos = end + 1
		}
	}
	return issues
}
