// Package i18n resolves the few user-facing strings the form builder and the
// validation schema emit on their own (sample option labels, the required
// field message). Callers plug in their own catalogue through Translator; when
// a key is missing the English fallback is returned.
package i18n

import (
	"errors"
	"strings"
)

// Message keys emitted by the builder, schema and renderer packages.
const (
	KeyRequired          = "actionform.validation.required"
	KeyMustBeNumber      = "actionform.validation.number"
	KeyMustBeBoolean     = "actionform.validation.boolean"
	KeyMustBeString      = "actionform.validation.string"
	KeyInvalidDate       = "actionform.validation.date"
	KeySampleOptionOne   = "actionform.options.sample.one"
	KeySampleOptionTwo   = "actionform.options.sample.two"
	KeySampleOptionThree = "actionform.options.sample.three"
	KeySubmit            = "actionform.form.submit"
	KeyChooseOption      = "actionform.form.choose"
)

// ErrMissingTranslator is passed to MissingTranslationHandler when no
// translator was configured.
var ErrMissingTranslator = errors.New("i18n: translator is not configured")

// Translator resolves a message key for the supplied locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler decides what to return when a key cannot be
// translated. err is ErrMissingTranslator when no translator is configured.
type MissingTranslationHandler func(locale, key, fallback string, err error) string

// Localizer binds a translator to a locale.
type Localizer struct {
	Locale     string
	Translator Translator
	OnMissing  MissingTranslationHandler
}

// T translates key, returning fallback (or key when fallback is blank) when
// the translator is absent or fails.
func (l Localizer) T(key, fallback string) string {
	return Translate(l.Locale, key, fallback, l.Translator, l.OnMissing)
}

// Translate resolves key with t, routing failures through onMissing.
func Translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}

	if t == nil {
		if onMissing != nil {
			return onMissing(locale, key, fallback, ErrMissingTranslator)
		}
		return orKey(fallback, key)
	}

	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	if onMissing != nil {
		return onMissing(locale, key, fallback, err)
	}
	return orKey(fallback, key)
}

func orKey(fallback, key string) string {
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}

// Catalog is an in-memory Translator keyed by locale then message key.
type Catalog map[string]map[string]string

// Translate implements Translator.
func (c Catalog) Translate(locale, key string, _ ...any) (string, error) {
	if messages, ok := c[locale]; ok {
		if msg, ok := messages[key]; ok {
			return msg, nil
		}
	}
	if base, _, found := strings.Cut(locale, "-"); found {
		if messages, ok := c[base]; ok {
			if msg, ok := messages[key]; ok {
				return msg, nil
			}
		}
	}
	return "", errors.New("i18n: missing translation for " + key)
}
