package schema

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"

	"github.com/goliatone/go-actionform/pkg/i18n"
	"github.com/goliatone/go-actionform/pkg/model"
	"github.com/goliatone/go-actionform/pkg/validation"
)

// TypeError reports a value that cannot be coerced into the rule's kind.
type TypeError struct {
	Field string
	Kind  Kind
	Value any
}

func (e TypeError) Error() string {
	return fmt.Sprintf("schema: %s must be a %s, got %T", e.Field, e.Kind, e.Value)
}

var temporalLayouts = map[model.InputType][]string{
	model.InputTypeDate:     {"2006-01-02"},
	model.InputTypeDateTime: {"2006-01-02T15:04", "2006-01-02T15:04:05", time.RFC3339},
	model.InputTypeTime:     {"15:04", "15:04:05"},
}

var (
	valueValidatorOnce sync.Once
	valueValidator     *validator.Validate
)

func values() *validator.Validate {
	valueValidatorOnce.Do(func() {
		valueValidator = validator.New()
	})
	return valueValidator
}

// Cast coerces value into the rule's kind. Blank strings become nil for
// number, boolean and date/time rules.
func (r Rule) Cast(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	switch r.Kind {
	case KindNumber:
		return r.castNumber(value)
	case KindBoolean:
		return r.castBoolean(value)
	case KindTemporal:
		return r.castTemporal(value)
	default:
		return r.castString(value)
	}
}

func (r Rule) castNumber(value any) (any, error) {
	switch v := value.(type) {
	case bool:
		return nil, TypeError{Field: r.Name, Kind: r.Kind, Value: value}
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil, nil
		}
		value = trimmed
	}
	out, err := cast.ToFloat64E(value)
	if err != nil || math.IsNaN(out) || math.IsInf(out, 0) {
		return nil, TypeError{Field: r.Name, Kind: r.Kind, Value: value}
	}
	return out, nil
}

func (r Rule) castBoolean(value any) (any, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "":
			return nil, nil
		case "true", "1":
			return true, nil
		case "false", "0":
			return false, nil
		}
		return nil, TypeError{Field: r.Name, Kind: r.Kind, Value: value}
	}
	n, err := cast.ToFloat64E(value)
	if err != nil || (n != 0 && n != 1) {
		return nil, TypeError{Field: r.Name, Kind: r.Kind, Value: value}
	}
	return n == 1, nil
}

func (r Rule) castTemporal(value any) (any, error) {
	if t, ok := value.(time.Time); ok {
		return formatTemporal(r.InputType, t), nil
	}
	s, err := cast.ToStringE(value)
	if err != nil {
		return nil, TypeError{Field: r.Name, Kind: r.Kind, Value: value}
	}
	if s == "" {
		return nil, nil
	}
	return s, nil
}

func (r Rule) castString(value any) (any, error) {
	s, err := cast.ToStringE(value)
	if err != nil {
		return nil, TypeError{Field: r.Name, Kind: r.Kind, Value: value}
	}
	return s, nil
}

func formatTemporal(input model.InputType, t time.Time) string {
	switch input {
	case model.InputTypeDate:
		return t.Format("2006-01-02")
	case model.InputTypeTime:
		return t.Format("15:04:05")
	default:
		return t.Format("2006-01-02T15:04:05")
	}
}

// Cast applies defaults to absent fields and coerces every known field.
// Unknown keys are copied through unchanged.
func (s *Schema) Cast(input map[string]any) (map[string]any, error) {
	out, errs := s.cast(input)
	return out, errors.Join(errs...)
}

func (s *Schema) cast(input map[string]any) (map[string]any, []error) {
	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	if s == nil {
		return out, nil
	}

	var errs []error
	for _, rule := range s.Fields {
		value, present := input[rule.Name]
		if !present {
			if !rule.HasDefault {
				continue
			}
			value = rule.Default
		}
		casted, err := rule.Cast(value)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out[rule.Name] = casted
	}
	return out, errs
}

// Validate casts input and checks every rule, returning the cast values and
// the collected issues. Required fields reject missing, null and empty
// values; optional fields accept null.
func (s *Schema) Validate(input map[string]any) (map[string]any, validation.Result) {
	result := validation.Result{Valid: true}
	out, errs := s.cast(input)
	if s == nil {
		return out, result
	}

	failed := make(map[string]struct{}, len(errs))
	for _, err := range errs {
		var typeErr TypeError
		if !errors.As(err, &typeErr) {
			result.Add(validation.Issue{Message: err.Error()})
			continue
		}
		failed[typeErr.Field] = struct{}{}
		result.Add(s.typeIssue(typeErr))
	}

	for _, rule := range s.Fields {
		if _, skip := failed[rule.Name]; skip {
			continue
		}
		if issue, ok := s.check(rule, out[rule.Name]); !ok {
			result.Add(issue)
		}
	}
	return out, result
}

// ValidateValue casts and checks a single field value, for callers collecting
// answers one at a time. Unknown fields pass through unchanged.
func (s *Schema) ValidateValue(name string, value any) (any, validation.Result) {
	result := validation.Result{Valid: true}
	rule, ok := s.Rule(name)
	if !ok {
		return value, result
	}

	casted, err := rule.Cast(value)
	if err != nil {
		var typeErr TypeError
		if errors.As(err, &typeErr) {
			result.Add(s.typeIssue(typeErr))
		} else {
			result.Add(validation.Issue{Path: name, Field: name, Severity: validation.SeverityError, Message: err.Error()})
		}
		return nil, result
	}
	if issue, ok := s.check(rule, casted); !ok {
		result.Add(issue)
	}
	return casted, result
}

func (s *Schema) typeIssue(err TypeError) validation.Issue {
	return validation.Issue{
		Path:     err.Field,
		Field:    err.Field,
		Rule:     "type",
		Severity: validation.SeverityError,
		Message:  s.typeMessage(err.Kind),
	}
}

func (s *Schema) check(rule Rule, value any) (validation.Issue, bool) {
	if isBlank(value) {
		if rule.Required {
			return validation.Issue{
				Path:     rule.Name,
				Field:    rule.Name,
				Rule:     "required",
				Severity: validation.SeverityError,
				Message:  rule.RequiredMessage,
			}, false
		}
		return validation.Issue{}, true
	}

	if rule.Kind == KindTemporal && s.strictTemporal {
		if str, ok := value.(string); ok && !matchesLayout(rule.InputType, str) {
			return validation.Issue{
				Path:     rule.Name,
				Field:    rule.Name,
				Rule:     "datetime",
				Severity: validation.SeverityError,
				Message:  s.localizer.T(i18n.KeyInvalidDate, "must be a valid date or time"),
			}, false
		}
	}
	return validation.Issue{}, true
}

func isBlank(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return s == ""
	}
	return false
}

func matchesLayout(input model.InputType, value string) bool {
	layouts, ok := temporalLayouts[input]
	if !ok {
		return true
	}
	for _, layout := range layouts {
		if values().Var(value, "datetime="+layout) == nil {
			return true
		}
	}
	return false
}

func (s *Schema) typeMessage(kind Kind) string {
	switch kind {
	case KindNumber:
		return s.localizer.T(i18n.KeyMustBeNumber, "must be a number")
	case KindBoolean:
		return s.localizer.T(i18n.KeyMustBeBoolean, "must be true or false")
	case KindTemporal:
		return s.localizer.T(i18n.KeyInvalidDate, "must be a valid date or time")
	default:
		return s.localizer.T(i18n.KeyMustBeString, "must be text")
	}
}
