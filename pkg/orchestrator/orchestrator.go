package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	internalLoader "github.com/goliatone/go-actionform/internal/loader"
	"github.com/goliatone/go-actionform/internal/logger"
	"github.com/goliatone/go-actionform/pkg/loader"
	"github.com/goliatone/go-actionform/pkg/model"
	"github.com/goliatone/go-actionform/pkg/render"
	"github.com/goliatone/go-actionform/pkg/renderers/jsonform"
	"github.com/goliatone/go-actionform/pkg/renderers/vanilla"
	"github.com/goliatone/go-actionform/pkg/schema"
	"github.com/goliatone/go-actionform/pkg/validation"
)

const defaultRendererName = "vanilla"

var (
	// ErrActionNotFound is returned when the requested action is unknown.
	ErrActionNotFound = errors.New("orchestrator: action not found")
	// ErrInvalidSubmission wraps the validation failure returned by Submit.
	ErrInvalidSubmission = errors.New("orchestrator: submission is invalid")
)

// Logger is the structured logger accepted by WithLogger. *zap.SugaredLogger
// satisfies it.
type Logger = logger.Logger

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithStore supplies the definitions actions are resolved from.
func WithStore(store *loader.Store) Option {
	return func(o *Orchestrator) {
		o.store = store
	}
}

// WithLoader injects the loader used for Request.Source.
func WithLoader(l loader.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = l
	}
}

// WithBuilder injects a custom form builder.
func WithBuilder(builder model.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l Logger) Option {
	return func(o *Orchestrator) {
		o.logger = l
	}
}

// WithSchemaOptions forwards options to schema.Build.
func WithSchemaOptions(options ...schema.Option) Option {
	return func(o *Orchestrator) {
		o.schemaOptions = append(o.schemaOptions, options...)
	}
}

// WithTransformer registers a Transformer that can mutate forms after
// building but before decorators run.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithDecorators registers decorators that run against the built form before
// rendering.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		o.decorators = append(o.decorators, decorators...)
	}
}

// Orchestrator coordinates the pipeline from action definition to rendered
// form and back to validated values.
type Orchestrator struct {
	store           *loader.Store
	loader          loader.Loader
	builder         model.Builder
	registry        *render.Registry
	defaultRenderer string
	logger          Logger
	schemaOptions   []schema.Option
	transformer     Transformer
	decorators      []model.Decorator
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations (vanilla and
// json renderers, no-op logger).
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request identifies the action to work on and how to render it.
type Request struct {
	// ActionID selects the action. Optional when Definition is supplied or
	// Source holds a single action.
	ActionID string

	// Definition bypasses the store and loader.
	Definition *loader.Definition

	// Source loads definitions through the configured loader instead of the
	// store.
	Source loader.Source

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// RenderOptions carries per-request instructions such as prefilled values
	// or server-side errors.
	RenderOptions render.RenderOptions
}

// Prepared is a built form and its validation schema.
type Prepared struct {
	Definition loader.Definition
	Form       model.Form
	Schema     *schema.Schema
}

// SubmitResult holds the cast values of a submission and the issues found.
// Errors maps the issues onto the form for re-rendering.
type SubmitResult struct {
	Values map[string]any
	Result validation.Result
	Errors render.ErrorMapping
}

// Prepare resolves the action and builds its form and schema. The schema only
// covers fields the form renders.
func (o *Orchestrator) Prepare(ctx context.Context, req Request) (Prepared, error) {
	if ctx == nil {
		return Prepared{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Prepared{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Prepared{}, err
	}

	def, err := o.resolveDefinition(ctx, req)
	if err != nil {
		return Prepared{}, err
	}

	form := o.builder.Build(def.Parameters, def.Fields)
	form.ActionID = def.ID
	form.Name = def.Name
	form.Description = def.Description

	if err := o.applyTransformer(ctx, &form); err != nil {
		return Prepared{}, err
	}
	if err := o.applyDecorators(&form); err != nil {
		return Prepared{}, err
	}

	rules := schema.Build(def.Parameters, renderedSettings(form, def.Fields), o.schemaOptions...)

	o.logger.Debugw("prepared action form",
		"action", def.ID,
		"parameters", len(def.Parameters),
		"fields", len(form.Fields),
	)

	return Prepared{Definition: def, Form: form, Schema: rules}, nil
}

// Generate prepares the action and renders it with the requested renderer.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	prepared, err := o.Prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, prepared.Form, prepared.Schema, req.RenderOptions)
	if err != nil {
		o.logger.Warnw("render failed", "action", prepared.Definition.ID, "renderer", renderer.Name(), "error", err)
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}

	o.logger.Infow("rendered action form",
		"action", prepared.Definition.ID,
		"renderer", renderer.Name(),
		"bytes", len(output),
	)
	return output, nil
}

// Submit validates submitted values for the action. Keys for parameters the
// form does not render are dropped. When validation fails the result is
// returned alongside an error wrapping ErrInvalidSubmission.
func (o *Orchestrator) Submit(ctx context.Context, req Request, values map[string]any) (SubmitResult, error) {
	prepared, err := o.Prepare(ctx, req)
	if err != nil {
		return SubmitResult{}, err
	}

	rendered := make(map[string]struct{}, len(prepared.Form.Fields))
	for _, field := range prepared.Form.Fields {
		rendered[field.Name] = struct{}{}
	}

	input := make(map[string]any, len(values))
	for key, value := range values {
		if _, ok := rendered[key]; !ok {
			o.logger.Debugw("dropping value for unrendered parameter", "action", prepared.Definition.ID, "parameter", key)
			continue
		}
		input[key] = value
	}

	cast, result := prepared.Schema.Validate(input)
	out := SubmitResult{
		Values: cast,
		Result: result,
		Errors: render.MapIssues(prepared.Form, result.Issues),
	}
	if !result.Valid {
		o.logger.Infow("rejected submission",
			"action", prepared.Definition.ID,
			"issues", len(result.Issues),
		)
		return out, fmt.Errorf("%w: %w", ErrInvalidSubmission, result.Err())
	}
	return out, nil
}

// Actions lists the ids of the actions in the configured store.
func (o *Orchestrator) Actions() []string {
	return o.store.IDs()
}

func (o *Orchestrator) resolveDefinition(ctx context.Context, req Request) (loader.Definition, error) {
	actionID := strings.TrimSpace(req.ActionID)

	if req.Definition != nil {
		return *req.Definition, nil
	}

	if req.Source != nil {
		defs, err := o.loader.Load(ctx, req.Source)
		if err != nil {
			return loader.Definition{}, fmt.Errorf("orchestrator: load definitions: %w", err)
		}
		if actionID == "" && len(defs) == 1 {
			return defs[0], nil
		}
		for _, def := range defs {
			if def.ID == actionID {
				return def, nil
			}
		}
		if actionID == "" {
			return loader.Definition{}, fmt.Errorf("orchestrator: %s defines %d actions, action id is required", req.Source.Location(), len(defs))
		}
		return loader.Definition{}, fmt.Errorf("%w: %q in %s", ErrActionNotFound, actionID, req.Source.Location())
	}

	if actionID == "" {
		return loader.Definition{}, errors.New("orchestrator: action id is required")
	}
	def, ok := o.store.Action(actionID)
	if !ok {
		return loader.Definition{}, fmt.Errorf("%w: %q", ErrActionNotFound, actionID)
	}
	return def, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDecorators(form *model.Form) error {
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(form); err != nil {
			return fmt.Errorf("orchestrator: decorate form: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, form *model.Form) error {
	if o.transformer == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, form); err != nil {
		return fmt.Errorf("orchestrator: transform form: %w", err)
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	o.logger = logger.OrNop(o.logger)

	if o.loader == nil {
		o.loader = internalLoader.New(loader.NewLoaderOptions())
	}
	if o.builder == nil {
		o.builder = model.NewBuilder()
	}
	if o.registry == nil {
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			o.registry = render.NewRegistry(jsonform.New())
		} else {
			o.registry = render.NewRegistry(renderer, jsonform.New())
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}

// renderedSettings keeps the settings of fields present in the form so that
// omitted parameters never fail validation.
func renderedSettings(form model.Form, settings model.FieldSettingsMap) model.FieldSettingsMap {
	rendered := make(map[string]struct{}, len(form.Fields))
	for _, field := range form.Fields {
		rendered[field.Name] = struct{}{}
	}

	out := make(model.FieldSettingsMap, len(rendered))
	for key, cfg := range settings {
		id := cfg.ID
		if id == "" {
			id = key
		}
		if _, ok := rendered[id]; ok {
			out[key] = cfg
		}
	}
	return out
}
