package validation_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-actionform/pkg/model"
	"github.com/goliatone/go-actionform/pkg/testsupport"
	"github.com/goliatone/go-actionform/pkg/validation"
)

func TestResult_AddAndErr(t *testing.T) {
	result := validation.Result{Valid: true}
	result.Add(validation.Issue{Field: "tier", Severity: validation.SeverityWarning, Message: "no options"})
	if !result.Valid {
		t.Fatal("warnings must not invalidate the result")
	}
	if err := result.Err(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	result.Add(validation.Issue{Field: "name", Message: "This field is required"})
	result.Add(validation.Issue{Message: "action failed"})
	if result.Valid {
		t.Fatal("expected invalid result")
	}

	err := result.Err()
	if err == nil {
		t.Fatal("expected error")
	}
	if got, want := err.Error(), "validation: name: This field is required; action failed"; got != want {
		t.Fatalf("error mismatch: want %q got %q", want, got)
	}

	want := map[string][]string{
		"tier": {"no options"},
		"name": {"This field is required"},
		"":     {"action failed"},
	}
	if diff := cmp.Diff(want, result.FieldErrors()); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateSettings_SampleHasNoErrors(t *testing.T) {
	def := testsupport.SampleDefinition()
	result := validation.ValidateSettings(def.Parameters, def.Fields)
	if !result.Valid {
		t.Fatalf("expected sample settings to lint clean, got %#v", result.Issues)
	}
}

func TestValidateSettings_ReportsFallbacks(t *testing.T) {
	params := []model.Parameter{
		{ID: "status"},
		{ID: "size"},
		{ID: "colour"},
	}
	settings := model.FieldSettingsMap{
		"status": {ID: "state", InputType: model.InputTypeSelect},
		"size": {
			InputType:    model.InputTypeRadio,
			ValueOptions: []any{"s", map[string]any{"m": 1}},
			DefaultValue: "xl",
		},
		"colour": {InputType: "colour-picker", FieldType: "rgb", Order: -2},
		"ghost":  {InputType: model.InputTypeString},
	}

	result := validation.ValidateSettings(params, settings)
	if result.Valid {
		t.Fatal("expected errors")
	}

	type finding struct {
		Path     string
		Rule     string
		Severity validation.Severity
	}
	var got []finding
	for _, issue := range result.Issues {
		got = append(got, finding{issue.Path, issue.Rule, issue.Severity})
	}

	want := []finding{
		{"fields.colour.inputType", "oneof", validation.SeverityWarning},
		{"fields.colour.fieldType", "oneof", validation.SeverityWarning},
		{"fields.colour.order", "gte", validation.SeverityError},
		{"fields.ghost", "parameter", validation.SeverityWarning},
		{"fields.size.valueOptions.1", "options", validation.SeverityError},
		{"fields.size.defaultValue", "defaultValue", validation.SeverityWarning},
		{"fields.status.id", "id", validation.SeverityWarning},
		{"fields.status.valueOptions", "options", validation.SeverityWarning},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}

	for _, issue := range result.Issues {
		if issue.Path == "fields.colour.inputType" && !strings.Contains(issue.Message, `"colour-picker"`) {
			t.Fatalf("expected offending value in message, got %q", issue.Message)
		}
	}
}
