package testsupport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/goliatone/go-actionform/pkg/loader"
	pkgmodel "github.com/goliatone/go-actionform/pkg/model"
)

// SampleActionID identifies the action returned by SampleDefinition.
const SampleActionID = "update_contact"

// SampleDefinition returns an action covering every input type, a retired
// field and a generated field. Each call returns a fresh copy.
func SampleDefinition() loader.Definition {
	return loader.Definition{
		ID:          SampleActionID,
		Name:        "Update contact",
		Description: "Edit a contact record",
		Parameters: []pkgmodel.Parameter{
			{ID: "name", Name: "Name", Type: pkgmodel.FieldTypeString, Required: true},
			{ID: "email", Name: "Email", Type: pkgmodel.FieldTypeString},
			{ID: "age", Name: "Age", Type: pkgmodel.FieldTypeNumber},
			{ID: "birthday", Name: "Birthday", Type: pkgmodel.FieldTypeDate},
			{ID: "vip", Name: "VIP", Type: pkgmodel.FieldTypeBoolean},
			{ID: "tier", Name: "Tier", Type: pkgmodel.FieldTypeString},
			{ID: "notes", Name: "Notes", Type: pkgmodel.FieldTypeString},
			{ID: "legacy", Name: "Legacy", Type: pkgmodel.FieldTypeString},
			{ID: "created_at", Name: "Created", Type: pkgmodel.FieldTypeDate},
		},
		Fields: pkgmodel.FieldSettingsMap{
			"name": {
				ID: "name", Title: "Full name", Order: 0,
				FieldType: pkgmodel.FieldTypeString, InputType: pkgmodel.InputTypeString,
				Required: true, Placeholder: "Jane Doe",
			},
			"email": {
				ID: "email", Order: 1,
				FieldType: pkgmodel.FieldTypeString, InputType: pkgmodel.InputTypeString,
				Description: "<b>Work</b> address<script>alert(1)</script>",
			},
			"age": {
				ID: "age", Order: 2,
				FieldType: pkgmodel.FieldTypeNumber, InputType: pkgmodel.InputTypeNumber,
				DefaultValue: 30,
			},
			"birthday": {
				ID: "birthday", Order: 3,
				FieldType: pkgmodel.FieldTypeDate, InputType: pkgmodel.InputTypeDate,
			},
			"vip": {
				ID: "vip", Order: 4,
				FieldType: pkgmodel.FieldTypeBoolean, InputType: pkgmodel.InputTypeBoolean,
			},
			"tier": {
				ID: "tier", Order: 5,
				FieldType: pkgmodel.FieldTypeString, InputType: pkgmodel.InputTypeSelect,
				ValueOptions: []any{"gold", "silver"},
			},
			"notes": {
				ID: "notes", Order: 6,
				FieldType: pkgmodel.FieldTypeString, InputType: pkgmodel.InputTypeText,
			},
			"legacy": {
				ID: "legacy", Order: 7,
				FieldType: pkgmodel.FieldTypeString, InputType: pkgmodel.InputTypeString,
				Field: &pkgmodel.Field{ID: 11, Name: "legacy", VisibilityType: "retired"},
			},
			"created_at": {
				ID: "created_at", Order: 8,
				FieldType: pkgmodel.FieldTypeDate, InputType: pkgmodel.InputTypeDateTime,
				Field: &pkgmodel.Field{ID: 12, Name: "created_at", DatabaseIsGenerated: true},
			},
		},
	}
}

// SampleStore returns a store holding SampleDefinition.
func SampleStore(t *testing.T) *loader.Store {
	t.Helper()

	store, err := loader.NewStore(SampleDefinition())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

// LoadDefinitions parses a JSON or YAML action fixture from disk.
func LoadDefinitions(t *testing.T, path string) []loader.Definition {
	t.Helper()

	defs, err := LoadDefinitionsFromPath(path)
	if err != nil {
		t.Fatalf("load definitions: %v", err)
	}
	return defs
}

// LoadDefinitionsFromPath is LoadDefinitions without a *testing.T, for setup
// code outside tests.
func LoadDefinitionsFromPath(path string) ([]loader.Definition, error) {
	if path == "" {
		return nil, errors.New("testsupport: definition path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read definition: %w", err)
	}
	return loader.Parse(data, path)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents. Tests can assert
// the renderer returns and writes the same payload without duplicating buffer
// setup.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
