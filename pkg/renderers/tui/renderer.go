package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/spf13/cast"

	"github.com/goliatone/go-actionform/pkg/model"
	"github.com/goliatone/go-actionform/pkg/render"
	"github.com/goliatone/go-actionform/pkg/schema"
)

// Renderer implements render.Renderer for terminal sessions: it prompts for
// every field, re-asks until the answer passes the field's rule and emits the
// collected values.
type Renderer struct {
	driver            PromptDriver
	out               io.Writer
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		theme:        defaultTheme(),
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver = newSurveyDriver(r.out)
	}

	switch r.outputFormat {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("tui: unsupported output format %q", r.outputFormat)
	}

	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render prompts for each form field in order. Prefilled values become prompt
// defaults and server errors are shown before the matching prompt.
func (r *Renderer) Render(ctx context.Context, form model.Form, rules *schema.Schema, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, ErrNoDriver
	}

	state := NewState(opts.Values, opts.Errors)

	for _, message := range render.MergeFormErrors(opts.Errors[""]) {
		if err := r.driver.Error(ctx, r.theme.ErrorPrefix+message); err != nil {
			return nil, err
		}
	}

	for _, field := range form.Fields {
		if err := r.promptField(ctx, field, rules, state); err != nil {
			return nil, err
		}
	}

	values := make(map[string]any, len(form.Fields))
	for _, field := range form.Fields {
		value, _ := state.Value(field.Name)
		values[field.Name] = value
	}
	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}

	return r.serialize(form, values)
}

func (r *Renderer) promptField(ctx context.Context, field model.FormField, rules *schema.Schema, state *State) error {
	for _, message := range state.ErrorsFor(field.Name) {
		if err := r.driver.Error(ctx, fmt.Sprintf("%s%s: %s", r.theme.ErrorPrefix, field.Title, message)); err != nil {
			return err
		}
	}

	current, hasCurrent := state.Value(field.Name)
	if !hasCurrent {
		if rule, ok := rules.Rule(field.Name); ok && rule.HasDefault {
			current = rule.Default
		}
	}

	for {
		answer, err := r.ask(ctx, field, current)
		if err != nil {
			return err
		}

		value, result := rules.ValidateValue(field.Name, answer)
		if !result.Valid {
			for _, issue := range result.Issues {
				if err := r.driver.Error(ctx, fmt.Sprintf("%s%s: %s", r.theme.ErrorPrefix, field.Title, issue.Message)); err != nil {
					return err
				}
			}
			current = answer
			continue
		}

		state.Set(field.Name, value)
		return nil
	}
}

func (r *Renderer) ask(ctx context.Context, field model.FormField, current any) (any, error) {
	label := promptLabel(field)
	help := promptHelp(field)

	switch {
	case field.Type == model.WidgetBoolean:
		answer, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: label,
			Default: cast.ToBool(current),
			Help:    help,
		})
		return answer, err
	case len(field.Options) > 0:
		return r.askChoice(ctx, field, label, help, current)
	case field.Type == model.WidgetTextArea:
		answer, err := r.driver.TextArea(ctx, TextAreaConfig{
			Message: label,
			Default: cast.ToString(current),
			Help:    help,
		})
		return answer, err
	default:
		answer, err := r.driver.Input(ctx, InputConfig{
			Message: label,
			Default: cast.ToString(current),
			Help:    help,
		})
		return answer, err
	}
}

func (r *Renderer) askChoice(ctx context.Context, field model.FormField, label, help string, current any) (any, error) {
	labels := make([]string, 0, len(field.Options)+1)
	values := make([]any, 0, len(field.Options)+1)
	if field.Optional {
		labels = append(labels, r.theme.SkipLabel)
		values = append(values, nil)
	}
	for _, opt := range field.Options {
		labels = append(labels, cast.ToString(opt.Name))
		values = append(values, opt.Value)
	}

	defaultIdx := -1
	if current != nil {
		currentStr := cast.ToString(current)
		for idx, value := range values {
			if value != nil && cast.ToString(value) == currentStr {
				defaultIdx = idx
				break
			}
		}
	}

	for {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      labels,
			DefaultIndex: defaultIdx,
			Help:         help,
		})
		if err != nil {
			return nil, err
		}
		if idx >= 0 && idx < len(values) {
			return values[idx], nil
		}
		if err := r.driver.Error(ctx, fmt.Sprintf("%sinvalid %s selection", r.theme.ErrorPrefix, field.Name)); err != nil {
			return nil, err
		}
	}
}

func promptLabel(field model.FormField) string {
	label := strings.TrimSpace(field.Title)
	if label == "" {
		label = field.Name
	}
	if !field.Optional {
		label += " *"
	}
	return label
}

var (
	plainPolicyOnce sync.Once
	plainPolicy     *bluemonday.Policy
)

// promptHelp strips markup from the description so it reads well in a
// terminal, falling back to the placeholder.
func promptHelp(field model.FormField) string {
	plainPolicyOnce.Do(func() {
		plainPolicy = bluemonday.StrictPolicy()
	})
	if desc := strings.TrimSpace(field.Description); desc != "" {
		return strings.TrimSpace(html.UnescapeString(plainPolicy.Sanitize(desc)))
	}
	return field.Placeholder
}

func (r *Renderer) serialize(form model.Form, values map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(encodeForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(form, values)), nil
	default:
		out, err := json.Marshal(values)
		if err != nil {
			return nil, fmt.Errorf("tui: marshal values: %w", err)
		}
		return out, nil
	}
}

func encodeForm(values map[string]any) string {
	encoded := url.Values{}
	for key, value := range values {
		if value == nil {
			encoded.Set(key, "")
			continue
		}
		encoded.Set(key, cast.ToString(value))
	}
	return encoded.Encode()
}

// prettyPrint lists values in form order, then any keys a submit transformer
// added, sorted.
func prettyPrint(form model.Form, values map[string]any) string {
	var b strings.Builder
	seen := make(map[string]struct{}, len(values))
	for _, field := range form.Fields {
		value, ok := values[field.Name]
		if !ok {
			continue
		}
		seen[field.Name] = struct{}{}
		writePretty(&b, field.Name, value)
	}

	var extra []string
	for key := range values {
		if _, ok := seen[key]; !ok {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	for _, key := range extra {
		writePretty(&b, key, values[key])
	}
	return b.String()
}

func writePretty(b *strings.Builder, key string, value any) {
	if value == nil {
		fmt.Fprintf(b, "%s=\n", key)
		return
	}
	fmt.Fprintf(b, "%s=%s\n", key, cast.ToString(value))
}
