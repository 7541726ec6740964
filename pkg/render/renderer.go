package render

import (
	"context"

	"github.com/goliatone/go-actionform/pkg/model"
	"github.com/goliatone/go-actionform/pkg/schema"
)

// Renderer converts an action form and its validation schema into a byte
// representation (HTML, JSON, collected terminal answers...). schema may be
// nil when the caller only needs the descriptor.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.Form, rules *schema.Schema, options RenderOptions) ([]byte, error)
}
