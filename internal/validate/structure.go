package validate

import (
	"fmt"
	"strings"
)

// structurePass checks that every required section heading appears at least
// once. Each missing section is an error pointing at the top of the
// document, with a stub heading as the suggested fix.
func structurePass(lines []string) []Issue {
	headings := scanHeadings(lines)

	var issues []Issue
	for _, section := range RequiredSections {
		if hasSection(headings, section) {
			continue
		}
		issues = append(issues, Issue{
			Severity:   SeverityError,
			Message:    fmt.Sprintf("missing required section %q", section),
			Line:       1,
			Column:     1,
			EndLine:    1,
			EndColumn:  1,
			Code:       "missing-section",
			Suggestion: "## " + section,
		})
	}
	return issues
}

// hasSection reports whether any heading matches the section name
// case-insensitively.
func hasSection(headings []heading, section string) bool {
	for _, h := range headings {
		if strings.EqualFold(h.text, section) {
			return true
		}
	}
	return false
}
