package validate

// Severity ranks a validation issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one finding from a validation pass. Lines and columns are
// 1-based; EndLine/EndColumn close the range.
type Issue struct {
	Severity  Severity `json:"severity"`
	Message   string   `json:"message"`
	Line      int      `json:"line"`
	Column    int      `json:"column"`
	EndLine   int      `json:"endLine"`
	EndColumn int      `json:"endColumn"`
	// Code is a stable machine-readable identifier, e.g. "missing-section".
	Code string `json:"code,omitempty"`
	// Suggestion is an optional quick-fix text (e.g., a stub heading).
	Suggestion string `json:"suggestion,omitempty"`
}

// Result is the merged outcome of all validation passes. Valid means no
// error-severity findings; warnings alone do not invalidate a document.
type Result struct {
	Valid    bool    `json:"valid"`
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// All returns errors followed by warnings.
func (r Result) All() []Issue {
	out := make([]Issue, 0, len(r.Errors)+len(r.Warnings))
	out = append(out, r.Errors...)
	return append(out, r.Warnings...)
}
