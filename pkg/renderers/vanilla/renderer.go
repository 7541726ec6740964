package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-actionform/pkg/i18n"
	"github.com/goliatone/go-actionform/pkg/model"
	"github.com/goliatone/go-actionform/pkg/render"
	rendertemplate "github.com/goliatone/go-actionform/pkg/render/template"
	"github.com/goliatone/go-actionform/pkg/render/template/pongo"
	"github.com/goliatone/go-actionform/pkg/schema"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	idempotency      bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must provide templates/form.tpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithIdempotencyKey toggles the hidden idempotency key input (on by default).
func WithIdempotencyKey(enabled bool) Option {
	return func(cfg *config) {
		cfg.idempotency = enabled
	}
}

// Renderer emits an HTML <form> for an action.
type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	idempotency bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), idempotency: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(
			pongo.WithName("vanilla"),
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, idempotency: cfg.idempotency}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, form model.Form, rules *schema.Schema, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := r.templates.RenderTemplate(FormTemplate, r.view(form, rules, options))
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

type formView struct {
	ActionID    string       `json:"action_id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Action      string       `json:"action"`
	Method      string       `json:"method"`
	SubmitLabel string       `json:"submit_label"`
	Errors      []string     `json:"errors"`
	Hidden      []hiddenView `json:"hidden"`
	Fields      []fieldView  `json:"fields"`
}

type hiddenView struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type fieldView struct {
	Name        string       `json:"name"`
	ID          string       `json:"id"`
	Widget      string       `json:"widget"`
	InputType   string       `json:"input_type"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Placeholder string       `json:"placeholder"`
	Required    bool         `json:"required"`
	Value       string       `json:"value"`
	Checked     bool         `json:"checked"`
	Options     []optionView `json:"options"`
	Errors      []string     `json:"errors"`
}

type optionView struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
}

func (r *Renderer) view(form model.Form, rules *schema.Schema, options render.RenderOptions) map[string]any {
	localizer := options.Localizer()

	method := strings.ToLower(strings.TrimSpace(options.Method))
	if method == "" {
		method = "post"
	}
	submit := strings.TrimSpace(options.SubmitLabel)
	if submit == "" {
		submit = localizer.T(i18n.KeySubmit, "Submit")
	}

	view := formView{
		ActionID:    form.ActionID,
		Name:        form.Name,
		Description: sanitizeDescription(form.Description),
		Action:      options.Action,
		Method:      method,
		SubmitLabel: submit,
		Errors:      render.MergeFormErrors(options.Errors[""]),
		Hidden:      r.hidden(form, options),
		Fields:      make([]fieldView, 0, len(form.Fields)),
	}

	choose := localizer.T(i18n.KeyChooseOption, "Choose an option")
	for _, field := range form.Fields {
		view.Fields = append(view.Fields, fieldFor(field, currentValue(field.Name, rules, options), options.Errors[field.Name], choose))
	}

	return map[string]any{"form": view}
}

func (r *Renderer) hidden(form model.Form, options render.RenderOptions) []hiddenView {
	var extra []render.HiddenField
	if form.ActionID != "" {
		extra = append(extra, render.ActionID(form.ActionID))
	}
	if _, preset := options.Hidden[render.IdempotencyKeyField]; r.idempotency && !preset {
		extra = append(extra, render.IdempotencyKey())
	}

	merged := render.SortedHiddenFields(render.MergeHiddenFields(options.Hidden, extra...))
	out := make([]hiddenView, 0, len(merged))
	for _, field := range merged {
		out = append(out, hiddenView{Name: field.Name, Value: field.Value})
	}
	return out
}

func currentValue(name string, rules *schema.Schema, options render.RenderOptions) any {
	if value, ok := options.Values[name]; ok {
		return value
	}
	if rule, ok := rules.Rule(name); ok && rule.HasDefault {
		return rule.Default
	}
	return nil
}

func fieldFor(field model.FormField, value any, errors []string, choose string) fieldView {
	view := fieldView{
		Name:        field.Name,
		ID:          controlID(field.Name),
		Widget:      string(field.Type),
		InputType:   htmlInputType(field.Type),
		Title:       field.Title,
		Description: sanitizeDescription(field.Description),
		Placeholder: field.Placeholder,
		Required:    !field.Optional,
		Errors:      render.MergeFormErrors(errors),
	}

	if field.Type == model.WidgetBoolean {
		view.Checked = isTrue(value)
		return view
	}

	view.Value = inputValue(value)
	if len(field.Options) == 0 {
		return view
	}

	if field.Type == model.WidgetSelect && field.Optional {
		view.Options = append(view.Options, optionView{Label: choose, Value: "", Selected: view.Value == ""})
	}
	for _, opt := range field.Options {
		optValue := inputValue(opt.Value)
		view.Options = append(view.Options, optionView{
			Label:    inputValue(opt.Name),
			Value:    optValue,
			Selected: value != nil && optValue == view.Value,
		})
	}
	return view
}
