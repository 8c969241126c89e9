// Package validate checks steering documents for structural completeness,
// content quality signals, and markdown formatting defects. Validation is a
// pure function of the input text: no I/O, and every pass is a single
// linear scan so multi-megabyte documents stay fast.
package validate

import "strings"

// RequiredSections are the headings every steering document must carry,
// matched case-insensitively at any heading level.
var RequiredSections = []string{
	"Purpose",
	"Key Concepts",
	"Best Practices",
	"Summary",
}

// minContentLength is the threshold below which a document is flagged as
// too short to be useful guidance.
const minContentLength = 200

// Validate runs the structure, content, and formatting passes over text and
// merges their findings. An empty document produces the full set of
// missing-section errors rather than failing.
func Validate(text string) Result {
	lines := strings.Split(text, "\n")

	var issues []Issue
	issues = append(issues, structurePass(lines)...)
	issues = append(issues, contentPass(text, lines)...)
	issues = append(issues, formattingPass(lines)...)

	result := Result{Errors: []Issue{}, Warnings: []Issue{}}
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			result.Errors = append(result.Errors, issue)
		} else {
			result.Warnings = append(result.Warnings, issue)
		}
	}
	result.Valid = len(result.Errors) == 0
	return result
}

// heading describes a markdown ATX heading found outside code fences.
type heading struct {
	line  int // 1-based
	level int
	text  string
	width int // full line length, for range reporting
}

// scanHeadings collects ATX headings, skipping fenced code blocks.
func scanHeadings(lines []string) []heading {
	var headings []heading
	inFence := false
	for i, line := range lines {
		if isFenceDelimiter(line) {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		level, text, ok := parseHeading(line)
		if !ok {
			continue
		}
		headings = append(headings, heading{
			line:  i + 1,
			level: level,
			text:  text,
			width: len(line),
		})
	}
	return headings
}

// parseHeading parses an ATX heading line into level and trimmed text.
func parseHeading(line string) (level int, text string, ok bool) {
	trimmed := strings.TrimLeft(line, " ")
	if !strings.HasPrefix(trimmed, "#") {
		return 0, "", false
	}
	level = 0
	for level < len(trimmed) && trimmed[level] == '#' {
		level++
	}
	if level > 6 {
		return 0, "", false
	}
	rest := trimmed[level:]
	if rest != "" && !strings.HasPrefix(rest, " ") && !strings.HasPrefix(rest, "\t") {
		return 0, "", false
	}
	// Strip optional closing hashes ("## Title ##").
	text = strings.TrimSpace(rest)
	text = strings.TrimSpace(strings.TrimRight(text, "#"))
	return level, text, true
}

// isFenceDelimiter reports whether a line opens or closes a fenced block.
func isFenceDelimiter(line string) bool {
	trimmed := strings.TrimLeft(line, " ")
	return strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~")
}
