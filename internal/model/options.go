package model

import "github.com/goliatone/go-actionform/pkg/i18n"

// EditablePredicate reports whether a parameter backed by field may be
// written through the form.
type EditablePredicate func(field Field, param Parameter) bool

// LessFunc orders two parameters given the configured field settings.
type LessFunc func(a, b Parameter, settings FieldSettingsMap) bool

// Options configures the behaviour of the Builder. Options are constructed by
// the public adapter in pkg/model and passed into New.
type Options struct {
	Editable  EditablePredicate
	Less      LessFunc
	Localizer i18n.Localizer
}

func defaultOptions() Options {
	return Options{
		Editable: DefaultEditable,
		Less:     OrderLess,
	}
}
