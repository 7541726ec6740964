package schema

import (
	"encoding/json"
	"reflect"
	"sort"
	"strings"

	"github.com/goliatone/go-actionform/pkg/i18n"
	"github.com/goliatone/go-actionform/pkg/model"
)

// Kind selects how a submitted value is coerced and checked.
type Kind string

const (
	KindString   Kind = "string"
	KindNumber   Kind = "number"
	KindBoolean  Kind = "boolean"
	KindTemporal Kind = "temporal"
)

// Rule is the validation rule for a single form field.
type Rule struct {
	Name            string          `json:"name"`
	Kind            Kind            `json:"kind"`
	InputType       model.InputType `json:"inputType,omitempty"`
	Title           string          `json:"title,omitempty"`
	Description     string          `json:"description,omitempty"`
	Required        bool            `json:"required"`
	Nullable        bool            `json:"nullable"`
	RequiredMessage string          `json:"requiredMessage,omitempty"`
	Default         any             `json:"default,omitempty"`
	HasDefault      bool            `json:"hasDefault,omitempty"`

	order int
}

// Schema is the keyed set of rules for an action form. Fields keeps a
// deterministic order: settings order, then name.
type Schema struct {
	Fields []Rule `json:"fields"`

	index          map[string]int
	strictTemporal bool
	localizer      i18n.Localizer
}

// Option configures Build.
type Option func(*config)

type config struct {
	localizer      i18n.Localizer
	strictTemporal bool
}

// WithLocalizer translates the required and type error messages.
func WithLocalizer(localizer i18n.Localizer) Option {
	return func(cfg *config) {
		cfg.localizer = localizer
	}
}

// WithStrictTemporal makes date, datetime and time rules reject values that do
// not match the layouts browsers submit for those inputs.
func WithStrictTemporal(enabled bool) Option {
	return func(cfg *config) {
		cfg.strictTemporal = enabled
	}
}

// Build derives the validation schema for the settings that belong to one of
// params. Settings are matched by their ID, falling back to the map key when
// the ID is blank; settings for unknown parameters are skipped.
func Build(params []model.Parameter, settings model.FieldSettingsMap, options ...Option) *Schema {
	cfg := config{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	byID := make(map[string]model.Parameter, len(params))
	for _, param := range params {
		byID[param.ID] = param
	}

	s := &Schema{
		index:          make(map[string]int, len(settings)),
		strictTemporal: cfg.strictTemporal,
		localizer:      cfg.localizer,
	}

	keys := make([]string, 0, len(settings))
	for key := range settings {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fieldSettings := settings[key]
		id := fieldSettings.ID
		if id == "" {
			id = key
		}
		param, ok := byID[id]
		if !ok {
			continue
		}
		if _, dup := s.index[id]; dup {
			continue
		}
		s.index[id] = -1
		s.Fields = append(s.Fields, ruleFor(id, param, fieldSettings, cfg.localizer))
	}

	sort.SliceStable(s.Fields, func(i, j int) bool {
		if s.Fields[i].order != s.Fields[j].order {
			return s.Fields[i].order < s.Fields[j].order
		}
		return s.Fields[i].Name < s.Fields[j].Name
	})
	for idx, rule := range s.Fields {
		s.index[rule.Name] = idx
	}

	return s
}

// UnmarshalJSON decodes the rules and rebuilds the name index.
func (s *Schema) UnmarshalJSON(data []byte) error {
	var decoded struct {
		Fields []Rule `json:"fields"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	s.Fields = decoded.Fields
	s.index = make(map[string]int, len(decoded.Fields))
	for idx, rule := range decoded.Fields {
		s.index[rule.Name] = idx
	}
	return nil
}

// Rule returns the rule for the named field.
func (s *Schema) Rule(name string) (Rule, bool) {
	if s == nil {
		return Rule{}, false
	}
	if s.index == nil {
		for _, rule := range s.Fields {
			if rule.Name == name {
				return rule, true
			}
		}
		return Rule{}, false
	}
	idx, ok := s.index[name]
	if !ok || idx < 0 || idx >= len(s.Fields) {
		return Rule{}, false
	}
	return s.Fields[idx], true
}

// Names lists the field names in schema order.
func (s *Schema) Names() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.Fields))
	for _, rule := range s.Fields {
		out = append(out, rule.Name)
	}
	return out
}

// KindFor selects the rule kind for an input type. Anything that is not a
// number, boolean or date/time input validates as a string.
func KindFor(input model.InputType) Kind {
	switch {
	case input == model.InputTypeNumber:
		return KindNumber
	case input == model.InputTypeBoolean:
		return KindBoolean
	case model.IsTemporal(input):
		return KindTemporal
	default:
		return KindString
	}
}

func ruleFor(id string, param model.Parameter, settings model.FieldSettings, l i18n.Localizer) Rule {
	rule := Rule{
		Name:        id,
		Kind:        KindFor(settings.InputType),
		InputType:   settings.InputType,
		Title:       firstNonEmpty(settings.Title, settings.Name, param.DisplayName, param.Name),
		Description: settings.Description,
		order:       settings.Order,
	}

	if settings.Required {
		rule.Required = true
		rule.RequiredMessage = l.T(i18n.KeyRequired, "This field is required")
	} else {
		rule.Nullable = true
	}

	if !IsEmpty(settings.DefaultValue) {
		rule.Default = settings.DefaultValue
		rule.HasDefault = true
	}
	return rule
}

// IsEmpty reports whether a configured default counts as unset: nil, blank
// strings and empty collections. false and 0 are real values.
func IsEmpty(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
