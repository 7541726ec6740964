package render

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-actionform/pkg/model"
	"github.com/goliatone/go-actionform/pkg/validation"
)

// ErrorMapping splits an error payload into field-level and form-level
// messages keyed by parameter id.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// AsOptionErrors folds the mapping into the RenderOptions.Errors shape, with
// form-level messages under the empty key.
func (m ErrorMapping) AsOptionErrors() map[string][]string {
	if len(m.Fields) == 0 && len(m.Form) == 0 {
		return nil
	}
	out := make(map[string][]string, len(m.Fields)+1)
	for name, messages := range m.Fields {
		out[name] = append([]string(nil), messages...)
	}
	if len(m.Form) > 0 {
		out[""] = append([]string(nil), m.Form...)
	}
	return out
}

// MergeFormErrors concatenates and normalises multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapIssues routes validation issues onto the form's fields. Issues naming a
// field that is not rendered end up at form level so they are not lost.
func MapIssues(form model.Form, issues []validation.Issue) ErrorMapping {
	payload := make(map[string][]string, len(issues))
	for _, issue := range issues {
		if issue.Severity == validation.SeverityWarning {
			continue
		}
		key := issue.Field
		if key == "" {
			key = issue.Path
		}
		payload[key] = append(payload[key], issue.Message)
	}
	return MapErrorPayload(form, payload)
}

// MapErrorPayload normalises server error payloads (JSON pointer, dotted or
// bracketed paths, optionally wrapped in body/parameters envelopes) into
// parameter ids. Unknown paths are treated as form-level errors.
func MapErrorPayload(form model.Form, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{
		Fields: make(map[string][]string),
	}
	if len(payload) == 0 {
		mapping.Fields = nil
		return mapping
	}

	names := make(map[string]struct{}, len(form.Fields))
	for _, field := range form.Fields {
		if name := strings.TrimSpace(field.Name); name != "" {
			names[name] = struct{}{}
		}
	}

	for rawPath, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}

		name, ok := fieldForPath(rawPath, names)
		if !ok {
			mapping.Form = append(mapping.Form, normalized...)
			continue
		}
		mapping.Fields[name] = append(mapping.Fields[name], normalized...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

var wrapperSegments = map[string]struct{}{
	"body":       {},
	"request":    {},
	"payload":    {},
	"data":       {},
	"parameters": {},
	"params":     {},
}

func fieldForPath(raw string, names map[string]struct{}) (string, bool) {
	if isFormLevelKey(raw) {
		return "", false
	}
	for _, segment := range parsePathSegments(raw) {
		if _, ok := names[segment]; ok {
			return segment, true
		}
		if _, wrapper := wrapperSegments[strings.ToLower(segment)]; wrapper {
			continue
		}
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		return "", false
	}
	return "", false
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = clean[1:]
	}

	replacer := strings.NewReplacer("[", ".", "]", "", "//", "/")
	clean = strings.Trim(replacer.Replace(clean), "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
