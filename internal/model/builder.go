package model

import (
	"github.com/goliatone/go-actionform/pkg/i18n"
)

// Builder converts action parameters and their field settings into form
// descriptors.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Editable != nil {
		opts.Editable = options.Editable
	}
	if options.Less != nil {
		opts.Less = options.Less
	}
	opts.Localizer = options.Localizer
	return &Builder{opts: opts}
}

// Build sorts params, maps each through Field and drops the omitted ones.
// Parameters without settings are mapped with zero-value settings.
func (b *Builder) Build(params []Parameter, settings FieldSettingsMap) Form {
	sorted := SortParameters(params, settings, b.opts.Less)

	form := Form{Fields: make([]FormField, 0, len(sorted))}
	for _, param := range sorted {
		field, ok := b.Field(param, settings[param.ID])
		if !ok {
			continue
		}
		form.Fields = append(form.Fields, field)
	}
	return form
}

// Field maps a single parameter. The second return value is false when the
// backing field is not editable for param and the field must be omitted.
func (b *Builder) Field(param Parameter, settings FieldSettings) (FormField, bool) {
	if settings.Field != nil && !b.opts.Editable(*settings.Field, param) {
		return FormField{}, false
	}

	field := FormField{
		Name:        param.ID,
		Type:        WidgetFor(settings.InputType),
		Title:       fieldTitle(param, settings),
		Description: settings.Description,
		Placeholder: settings.Placeholder,
		Optional:    !settings.Required,
		Field:       settings.Field,
	}

	if InputTypeHasOptions(settings.InputType) {
		if len(settings.ValueOptions) > 0 {
			field.Options = optionsFromValues(settings.ValueOptions)
		} else {
			field.Options = b.sampleOptions(settings.FieldType)
		}
	}

	return field, true
}

func fieldTitle(param Parameter, settings FieldSettings) string {
	for _, candidate := range []string{
		settings.Title,
		settings.Name,
		param.DisplayName,
		param.Name,
	} {
		if candidate != "" {
			return candidate
		}
	}
	return param.ID
}

func optionsFromValues(values []any) []Option {
	out := make([]Option, 0, len(values))
	for _, value := range values {
		out = append(out, Option{Name: value, Value: value})
	}
	return out
}

func (b *Builder) sampleOptions(fieldType FieldType) []Option {
	if fieldType == FieldTypeNumber {
		return optionsFromValues([]any{1, 2, 3})
	}
	l := b.opts.Localizer
	return optionsFromValues([]any{
		l.T(i18n.KeySampleOptionOne, "Option One"),
		l.T(i18n.KeySampleOptionTwo, "Option Two"),
		l.T(i18n.KeySampleOptionThree, "Option Three"),
	})
}
