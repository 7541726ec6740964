// Package jsonform renders an action form as a JSON document for clients that
// draw their own widgets.
package jsonform

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-actionform/pkg/model"
	"github.com/goliatone/go-actionform/pkg/render"
	"github.com/goliatone/go-actionform/pkg/schema"
)

// Document is the payload emitted by the renderer.
type Document struct {
	Form   model.Form          `json:"form"`
	Schema *schema.Schema      `json:"schema,omitempty"`
	Values map[string]any      `json:"values,omitempty"`
	Errors map[string][]string `json:"errors,omitempty"`
	Hidden map[string]string   `json:"hidden,omitempty"`
}

type Option func(*Renderer)

// WithIndent pretty prints the output using the given indent string.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// Renderer emits Document as JSON.
type Renderer struct {
	indent string
}

var _ render.Renderer = (*Renderer)(nil)

func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return "json"
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

func (r *Renderer) Render(ctx context.Context, form model.Form, rules *schema.Schema, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := Document{
		Form:   form,
		Schema: rules,
		Values: options.Values,
		Errors: options.Errors,
		Hidden: options.Hidden,
	}

	var (
		out []byte
		err error
	)
	if r.indent != "" {
		out, err = json.MarshalIndent(doc, "", r.indent)
	} else {
		out, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("json renderer: marshal: %w", err)
	}
	return out, nil
}
