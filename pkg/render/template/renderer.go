package template

import (
	"io"
)

// TemplateRenderer executes a named template from the engine's bundle. The
// result is returned and also written to every out writer.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
