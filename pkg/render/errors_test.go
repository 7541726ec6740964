package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-actionform/pkg/model"
	"github.com/goliatone/go-actionform/pkg/render"
	"github.com/goliatone/go-actionform/pkg/validation"
)

func sampleForm() model.Form {
	return model.Form{
		ActionID: "1",
		Fields: []model.FormField{
			{Name: "email", Type: model.WidgetText},
			{Name: "age", Type: model.WidgetNumber},
			{Name: "a/b", Type: model.WidgetText},
		},
	}
}

func TestMapErrorPayload(t *testing.T) {
	payload := map[string][]string{
		"email":                 {"is required", " is required "},
		"/parameters/age":       {"must be a number"},
		"body.parameters[a~1b]": {"bad"},
		"#/data/0/email":        {"taken"},
		"unknown":               {"server rejected"},
		"__all__":               {"try again", ""},
	}

	mapping := render.MapErrorPayload(sampleForm(), payload)

	wantFields := map[string][]string{
		"email": {"is required", "taken"},
		"age":   {"must be a number"},
		"a/b":   {"bad"},
	}
	sortStrings := cmp.Transformer("sort", func(in []string) []string {
		out := append([]string(nil), in...)
		for i := 1; i < len(out); i++ {
			for j := i; j > 0 && out[j] < out[j-1]; j-- {
				out[j], out[j-1] = out[j-1], out[j]
			}
		}
		return out
	})
	if diff := cmp.Diff(wantFields, mapping.Fields, sortStrings); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"server rejected", "try again"}, mapping.Form, sortStrings); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMapErrorPayloadEmpty(t *testing.T) {
	mapping := render.MapErrorPayload(sampleForm(), nil)
	if mapping.Fields != nil || mapping.Form != nil {
		t.Fatalf("expected empty mapping, got %#v", mapping)
	}
	if got := mapping.AsOptionErrors(); got != nil {
		t.Fatalf("expected nil option errors, got %#v", got)
	}
}

func TestMapIssues(t *testing.T) {
	issues := []validation.Issue{
		{Field: "email", Path: "email", Rule: "required", Severity: validation.SeverityError, Message: "This field is required"},
		{Field: "age", Path: "age", Rule: "type", Severity: validation.SeverityWarning, Message: "ignored"},
		{Path: "hidden_param", Severity: validation.SeverityError, Message: "not editable"},
	}

	mapping := render.MapIssues(sampleForm(), issues)

	want := map[string][]string{
		"email": {"This field is required"},
		"":      {"not editable"},
	}
	if diff := cmp.Diff(want, mapping.AsOptionErrors()); diff != "" {
		t.Fatalf("option errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeFormErrors(t *testing.T) {
	existing := []string{"First", "  ", "Second"}
	merged := render.MergeFormErrors(existing, "Second", " Third ", "")

	want := []string{"First", "Second", "Third"}
	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged errors mismatch (-want +got):\n%s", diff)
	}
}
