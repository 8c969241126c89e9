package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a framework id is absent from the catalog.
var ErrNotFound = errors.New("framework not found in catalog")

// ParseError indicates the manifest is not valid YAML.
type ParseError struct {
	Source string // manifest path, or "embedded"
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing manifest %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError indicates the manifest parsed but violates the entry schema
// (missing required fields, bad category, malformed version).
type SchemaError struct {
	Source string
	Issues []SchemaIssue
}

// SchemaIssue is a single schema violation.
type SchemaIssue struct {
	Path    string // instance location, e.g. "/frameworks/2/version"
	Message string
	Keyword string // schema keyword that failed
}

func (e *SchemaError) Error() string {
	if len(e.Issues) == 0 {
		return fmt.Sprintf("manifest %s failed schema validation", e.Source)
	}
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = fmt.Sprintf("%s: %s", issue.Path, issue.Message)
	}
	return fmt.Sprintf("manifest %s failed schema validation: %s", e.Source, strings.Join(parts, "; "))
}

// IntegrityError indicates a duplicate framework id across manifest entries.
// Duplicates are never silently deduplicated.
type IntegrityError struct {
	Source string
	ID     string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("manifest %s contains duplicate framework id %q", e.Source, e.ID)
}
