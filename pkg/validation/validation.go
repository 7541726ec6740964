package validation

import (
	"fmt"
	"strings"
)

// Issue represents a validation error with optional location metadata.
type Issue struct {
	Path     string   `json:"path,omitempty"`
	Field    string   `json:"field,omitempty"`
	Rule     string   `json:"rule,omitempty"`
	Severity Severity `json:"severity,omitempty"`
	Message  string   `json:"message"`
}

// Severity classifies settings lint findings.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Result captures validation outcomes. Valid is false as soon as one
// non-warning issue is recorded.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// Add appends an issue. Anything but a warning marks the result invalid.
func (r *Result) Add(issue Issue) {
	if issue.Severity != SeverityWarning {
		r.Valid = false
	}
	r.Issues = append(r.Issues, issue)
}

// FieldErrors groups issue messages by field name. Issues without a field are
// collected under the empty key.
func (r Result) FieldErrors() map[string][]string {
	if len(r.Issues) == 0 {
		return nil
	}
	out := make(map[string][]string, len(r.Issues))
	for _, issue := range r.Issues {
		out[issue.Field] = append(out[issue.Field], issue.Message)
	}
	return out
}

// Err folds the issues into a single error, or nil when the result is valid.
func (r Result) Err() error {
	if r.Valid || len(r.Issues) == 0 {
		return nil
	}
	parts := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		if issue.Severity == SeverityWarning {
			continue
		}
		if issue.Field != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
			continue
		}
		parts = append(parts, issue.Message)
	}
	return fmt.Errorf("validation: %s", strings.Join(parts, "; "))
}
