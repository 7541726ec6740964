package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-actionform/pkg/model"
)

// Transformer mutates a built Form before decorators run. Implementations can
// retitle fields, reword descriptions, or drop fields a caller must not see.
type Transformer interface {
	Transform(ctx context.Context, form *model.Form) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, form *model.Form) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, form *model.Form) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, form)
}

// JSONPresetTransformer applies declarative copy overrides loaded from a JSON
// file, typically per-locale wording maintained outside the action editor:
//
//	{
//	  "name": "Update contact",
//	  "description": "Edits the selected row",
//	  "fields": {
//	    "email": {"title": "Work email", "placeholder": "name@company.com"}
//	  }
//	}
type JSONPresetTransformer struct {
	document jsonTransformDocument
}

type jsonTransformDocument struct {
	Name        string                    `json:"name"`
	Description string                    `json:"description"`
	Fields      map[string]jsonFieldPatch `json:"fields"`
}

type jsonFieldPatch struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Placeholder string `json:"placeholder"`
}

// NewJSONPresetTransformer constructs a transformer from raw JSON bytes.
func NewJSONPresetTransformer(data []byte) (*JSONPresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("json preset transformer: document is empty")
	}
	var document jsonTransformDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("json preset transformer: parse document: %w", err)
	}
	return &JSONPresetTransformer{document: document}, nil
}

// NewJSONPresetTransformerFromFS loads a JSON transformer document from the
// provided filesystem path.
func NewJSONPresetTransformerFromFS(fsys fs.FS, path string) (*JSONPresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("json preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("json preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("json preset transformer: read %s: %w", path, err)
	}
	return NewJSONPresetTransformer(data)
}

// Transform applies the declarative patches onto the supplied form. Patches
// naming a field the form does not render are skipped, so one preset can
// serve actions that hide different fields.
func (t *JSONPresetTransformer) Transform(ctx context.Context, form *model.Form) error {
	if form == nil {
		return errors.New("json preset transformer: form is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if t.document.Name != "" {
		form.Name = t.document.Name
	}
	if t.document.Description != "" {
		form.Description = t.document.Description
	}

	for name, patch := range t.document.Fields {
		if field := findField(form.Fields, name); field != nil {
			applyFieldPatch(field, patch)
		}
	}
	return nil
}

func applyFieldPatch(field *model.FormField, patch jsonFieldPatch) {
	if patch.Title != "" {
		field.Title = patch.Title
	}
	if patch.Description != "" {
		field.Description = patch.Description
	}
	if patch.Placeholder != "" {
		field.Placeholder = patch.Placeholder
	}
}

func findField(fields []model.FormField, name string) *model.FormField {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	for idx := range fields {
		if fields[idx].Name == name {
			return &fields[idx]
		}
	}
	return nil
}
