package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-actionform/pkg/model"
)

// settingsShape mirrors the lintable subset of model.FieldSettings so the
// rules live in struct tags instead of hand-written checks.
type settingsShape struct {
	ID        string `json:"id" validate:"required"`
	InputType string `json:"inputType" validate:"omitempty,oneof=string text date datetime time number boolean category select radio"`
	FieldType string `json:"fieldType" validate:"omitempty,oneof=string number date boolean category"`
	Order     int    `json:"order" validate:"gte=0"`
}

var (
	settingsValidatorOnce sync.Once
	settingsValidator     *validator.Validate
)

func structValidator() *validator.Validate {
	settingsValidatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		settingsValidator = v
	})
	return settingsValidator
}

// ValidateSettings lints field settings against the action parameters. The
// form builder never fails on bad settings (it falls back to defaults), so
// this is the place where authors learn about those fallbacks. Structural
// problems are errors; fallbacks are warnings.
func ValidateSettings(params []model.Parameter, settings model.FieldSettingsMap) Result {
	result := Result{Valid: true}

	known := make(map[string]struct{}, len(params))
	for _, param := range params {
		known[param.ID] = struct{}{}
	}

	keys := make([]string, 0, len(settings))
	for key := range settings {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		cfg := settings[key]
		path := "fields." + key

		shape := settingsShape{
			ID:        cfg.ID,
			InputType: string(cfg.InputType),
			FieldType: string(cfg.FieldType),
			Order:     cfg.Order,
		}
		if shape.ID == "" {
			shape.ID = key
		}
		if err := structValidator().Struct(shape); err != nil {
			for _, issue := range issuesFromValidator(path, key, err) {
				result.Add(issue)
			}
		}

		if cfg.ID != "" && cfg.ID != key {
			result.Add(Issue{
				Path:     path + ".id",
				Field:    key,
				Rule:     "id",
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("settings id %q does not match key %q", cfg.ID, key),
			})
		}

		if _, ok := known[key]; !ok {
			result.Add(Issue{
				Path:     path,
				Field:    key,
				Rule:     "parameter",
				Severity: SeverityWarning,
				Message:  "settings do not match any parameter and are ignored",
			})
		}

		if model.InputTypeHasOptions(cfg.InputType) {
			lintOptions(&result, path, key, cfg)
		}
	}

	return result
}

func lintOptions(result *Result, path, key string, cfg model.FieldSettings) {
	if len(cfg.ValueOptions) == 0 {
		result.Add(Issue{
			Path:     path + ".valueOptions",
			Field:    key,
			Rule:     "options",
			Severity: SeverityWarning,
			Message:  "no value options configured; sample options will be shown",
		})
		return
	}

	for idx, option := range cfg.ValueOptions {
		if !isScalar(option) {
			result.Add(Issue{
				Path:     fmt.Sprintf("%s.valueOptions.%d", path, idx),
				Field:    key,
				Rule:     "options",
				Severity: SeverityError,
				Message:  fmt.Sprintf("value option %d must be a string or number", idx),
			})
		}
	}

	if cfg.DefaultValue == nil {
		return
	}
	for _, option := range cfg.ValueOptions {
		if fmt.Sprint(option) == fmt.Sprint(cfg.DefaultValue) {
			return
		}
	}
	result.Add(Issue{
		Path:     path + ".defaultValue",
		Field:    key,
		Rule:     "defaultValue",
		Severity: SeverityWarning,
		Message:  "default value is not one of the value options",
	})
}

func issuesFromValidator(path, key string, err error) []Issue {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Issue{{Path: path, Field: key, Severity: SeverityError, Message: err.Error()}}
	}
	out := make([]Issue, 0, len(verrs))
	for _, fe := range verrs {
		severity := SeverityError
		if fe.Tag() == "oneof" {
			// unknown kinds fall back to text inputs and string rules
			severity = SeverityWarning
		}
		out = append(out, Issue{
			Path:     path + "." + fe.Field(),
			Field:    key,
			Rule:     fe.Tag(),
			Severity: severity,
			Message:  ruleMessage(fe),
		})
	}
	return out
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s %q is not one of [%s]", fe.Field(), fmt.Sprint(fe.Value()), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed rule %q", fe.Field(), fe.Tag())
	}
}

func isScalar(value any) bool {
	switch value.(type) {
	case string, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	default:
		return false
	}
}
