package render

import "github.com/goliatone/go-actionform/pkg/i18n"

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the form.
type RenderOptions struct {
	// Action is the URL the rendered form submits to.
	Action string
	// Method overrides the submission method (POST by default).
	Method string
	// Values pre-populates rendered controls keyed by parameter id.
	Values map[string]any
	// Errors surfaces server-side validation feedback keyed by parameter id.
	// Messages under the empty key are shown at form level.
	Errors map[string][]string
	// Hidden inputs emitted alongside the visible fields.
	Hidden map[string]string
	// SubmitLabel overrides the submit button caption.
	SubmitLabel string
	// Locale and Translator localise renderer chrome.
	Locale     string
	Translator i18n.Translator
}

// Localizer returns the i18n binding for these options.
func (o RenderOptions) Localizer() i18n.Localizer {
	return i18n.Localizer{Locale: o.Locale, Translator: o.Translator}
}
