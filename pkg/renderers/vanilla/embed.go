package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// FormTemplate is the template rendered for every action form.
const FormTemplate = "templates/form"

// TemplatesFS exposes the embedded template bundle so callers can start from
// it when supplying their own templates.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
