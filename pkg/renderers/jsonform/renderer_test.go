package jsonform_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-actionform/pkg/model"
	"github.com/goliatone/go-actionform/pkg/render"
	"github.com/goliatone/go-actionform/pkg/renderers/jsonform"
	"github.com/goliatone/go-actionform/pkg/schema"
	"github.com/goliatone/go-actionform/pkg/testsupport"
)

func TestRenderer_EmitsFormAndSchema(t *testing.T) {
	def := testsupport.SampleDefinition()
	form := model.NewBuilder().Build(def.Parameters, def.Fields)
	rules := schema.Build(def.Parameters, def.Fields)

	out, err := jsonform.New().Render(context.Background(), form, rules, render.RenderOptions{
		Errors: map[string][]string{"name": {"This field is required"}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var doc jsonform.Document
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}

	var names []string
	for _, field := range doc.Form.Fields {
		names = append(names, field.Name)
	}
	want := []string{"name", "email", "age", "birthday", "vip", "tier", "notes"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("form field mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, doc.Schema.Names()); diff != "" {
		t.Fatalf("schema field mismatch (-want +got):\n%s", diff)
	}

	rule, ok := doc.Schema.Rule("name")
	if !ok || !rule.Required || rule.RequiredMessage != "This field is required" {
		t.Fatalf("unexpected decoded rule %#v", rule)
	}
	if diff := cmp.Diff(map[string][]string{"name": {"This field is required"}}, doc.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_Indent(t *testing.T) {
	out, err := jsonform.New(jsonform.WithIndent("  ")).Render(context.Background(), model.Form{}, nil, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), "\n  \"form\"") {
		t.Fatalf("expected indented output, got %s", out)
	}
	if strings.Contains(string(out), "schema") {
		t.Fatalf("expected nil schema to be omitted, got %s", out)
	}
}

func TestRenderer_RespectsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := jsonform.New().Render(ctx, model.Form{}, nil, render.RenderOptions{}); err == nil {
		t.Fatal("expected context error")
	}
}
