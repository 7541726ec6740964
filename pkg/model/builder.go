package model

import (
	"github.com/goliatone/go-actionform/internal/model"
	"github.com/goliatone/go-actionform/pkg/i18n"
)

// Builder converts action parameters and field settings into form models.
type Builder interface {
	Build(params []Parameter, settings FieldSettingsMap) Form
	Field(param Parameter, settings FieldSettings) (FormField, bool)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	editable  EditablePredicate
	less      LessFunc
	localizer i18n.Localizer
}

// WithEditable overrides the predicate deciding whether a backing field can be
// written through the form.
func WithEditable(fn EditablePredicate) BuilderOption {
	return func(opts *builderOptions) {
		opts.editable = fn
	}
}

// WithOrdering overrides the parameter ordering rule.
func WithOrdering(less LessFunc) BuilderOption {
	return func(opts *builderOptions) {
		opts.less = less
	}
}

// WithLocalizer translates the sample option labels.
func WithLocalizer(localizer i18n.Localizer) BuilderOption {
	return func(opts *builderOptions) {
		opts.localizer = localizer
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	return model.New(model.Options{
		Editable:  cfg.editable,
		Less:      cfg.less,
		Localizer: cfg.localizer,
	})
}
