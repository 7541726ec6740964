// Package actionform turns writeback action parameters and their field
// settings into renderable forms plus the validation schema that guards
// submissions. The subpackages hold the pieces; this package re-exports the
// common entry points.
package actionform

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-actionform/pkg/loader"
	"github.com/goliatone/go-actionform/pkg/model"
	"github.com/goliatone/go-actionform/pkg/orchestrator"
	"github.com/goliatone/go-actionform/pkg/render"
	"github.com/goliatone/go-actionform/pkg/schema"
)

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// Definition aliases loader.Definition.
type Definition = loader.Definition

// BuildForm maps parameters and settings into the ordered form descriptor
// using the default editability and ordering rules.
func BuildForm(params []model.Parameter, settings model.FieldSettingsMap) model.Form {
	return model.NewBuilder().Build(params, settings)
}

// BuildSchema derives the validation schema for the given settings.
func BuildSchema(params []model.Parameter, settings model.FieldSettingsMap, options ...schema.Option) *schema.Schema {
	return schema.Build(params, settings, options...)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// LoadStore parses every action definition file in fsys.
func LoadStore(fsys fs.FS) (*loader.Store, error) {
	return loader.LoadFS(fsys)
}

// GenerateHTML renders the action held in fsys with the named renderer
// (vanilla HTML when empty).
func GenerateHTML(ctx context.Context, fsys fs.FS, actionID, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	store, err := loader.LoadFS(fsys)
	if err != nil {
		return nil, err
	}
	gen := orchestrator.New(append([]orchestrator.Option{orchestrator.WithStore(store)}, options...)...)
	return gen.Generate(ctx, orchestrator.Request{
		ActionID: actionID,
		Renderer: rendererName,
	})
}

// GenerateFromDefinition renders an in-memory definition, bypassing the store.
func GenerateFromDefinition(ctx context.Context, def Definition, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Definition: &def,
		Renderer:   rendererName,
	})
}
