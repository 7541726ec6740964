package tui

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-actionform/pkg/model"
	"github.com/goliatone/go-actionform/pkg/render"
	"github.com/goliatone/go-actionform/pkg/schema"
	"github.com/goliatone/go-actionform/pkg/testsupport"
)

type stubDriver struct {
	inputs    []string
	selectIdx []int
	confirm   []bool
	textAreas []string

	inputPos   int
	selectPos  int
	confirmPos int
	textPos    int

	inputDefaults  []string
	selectDefaults []int
	infoMessages   []string
	errorMessages  []string
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	s.inputDefaults = append(s.inputDefaults, cfg.Default)
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	s.selectDefaults = append(s.selectDefaults, cfg.DefaultIndex)
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func (s *stubDriver) Error(_ context.Context, msg string) error {
	s.errorMessages = append(s.errorMessages, msg)
	return nil
}

func sampleForm() (model.Form, *schema.Schema) {
	def := testsupport.SampleDefinition()
	return model.NewBuilder().Build(def.Parameters, def.Fields), schema.Build(def.Parameters, def.Fields)
}

func TestRender_CollectsAndCastsAnswers(t *testing.T) {
	driver := &stubDriver{
		// name, email, age, birthday
		inputs:    []string{"Ada", "", "36", "1815-12-10"},
		confirm:   []bool{true},
		selectIdx: []int{2},
		textAreas: []string{"first programmer"},
	}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	form, rules := sampleForm()
	out, err := r.Render(context.Background(), form, rules, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	want := map[string]any{
		"name":     "Ada",
		"email":    "",
		"age":      36.0,
		"birthday": "1815-12-10",
		"vip":      true,
		"tier":     "silver",
		"notes":    "first programmer",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	// the age default comes from the configured default value
	if diff := cmp.Diff([]string{"", "", "30", ""}, driver.inputDefaults); diff != "" {
		t.Fatalf("input defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_ReasksUntilValid(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"", "Ada", "", "many", "", ""},
		confirm:   []bool{false},
		selectIdx: []int{0},
		textAreas: []string{""},
	}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	form, rules := sampleForm()
	out, err := r.Render(context.Background(), form, rules, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := []string{
		"✗ Full name: This field is required",
		"✗ Age: must be a number",
	}
	if diff := cmp.Diff(want, driver.errorMessages); diff != "" {
		t.Fatalf("error messages mismatch (-want +got):\n%s", diff)
	}

	var got map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if got["age"] != nil || got["tier"] != nil || got["birthday"] != nil {
		t.Fatalf("expected skipped optional fields to be null, got %#v", got)
	}
}

func TestRender_PrefillAndServerErrors(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ada", "ada@example.com", "40", ""},
		confirm:   []bool{false},
		selectIdx: []int{1},
		textAreas: []string{""},
	}
	r, err := New(WithPromptDriver(driver), WithOutputFormat(OutputFormatPrettyText))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	form, rules := sampleForm()
	out, err := r.Render(context.Background(), form, rules, render.RenderOptions{
		Values: map[string]any{"name": "Ad", "tier": "silver"},
		Errors: map[string][]string{
			"email": {"already taken"},
			"":      {"action failed"},
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if diff := cmp.Diff([]string{"✗ action failed", "✗ Email: already taken"}, driver.errorMessages); diff != "" {
		t.Fatalf("error messages mismatch (-want +got):\n%s", diff)
	}
	if driver.inputDefaults[0] != "Ad" {
		t.Fatalf("expected prefilled default, got %q", driver.inputDefaults[0])
	}
	// (none), gold, silver
	if diff := cmp.Diff([]int{2}, driver.selectDefaults); diff != "" {
		t.Fatalf("select defaults mismatch (-want +got):\n%s", diff)
	}

	wantText := strings.Join([]string{
		"name=Ada",
		"email=ada@example.com",
		"age=40",
		"birthday=",
		"vip=false",
		"tier=gold",
		"notes=",
	}, "\n") + "\n"
	if string(out) != wantText {
		t.Fatalf("pretty output mismatch\nwant: %q\n got: %q", wantText, string(out))
	}
}

func TestRender_SubmitTransformerAndFormEncoding(t *testing.T) {
	driver := &stubDriver{
		inputs: []string{"Ada"},
	}
	r, err := New(
		WithPromptDriver(driver),
		WithOutputFormat(OutputFormatFormURLEncoded),
		WithSubmitTransformer(func(values map[string]any) (map[string]any, error) {
			values["source"] = "cli"
			return values, nil
		}),
	)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	form := model.Form{Fields: []model.FormField{{Name: "name", Type: model.WidgetText, Title: "Name"}}}
	out, err := r.Render(context.Background(), form, nil, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got, want := string(out), "name=Ada&source=cli"; got != want {
		t.Fatalf("form output mismatch: want %q got %q", want, got)
	}
	if r.ContentType() != "application/x-www-form-urlencoded" {
		t.Fatalf("unexpected content type %q", r.ContentType())
	}
}

func TestRender_PropagatesDriverErrors(t *testing.T) {
	r, err := New(WithPromptDriver(&stubDriver{}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	form, rules := sampleForm()
	if _, err := r.Render(context.Background(), form, rules, render.RenderOptions{}); err == nil {
		t.Fatal("expected driver error")
	}
}

func TestNew_RejectsUnknownFormat(t *testing.T) {
	if _, err := New(WithOutputFormat("xml")); err == nil {
		t.Fatal("expected unsupported format error")
	}
}

func TestPromptHelpStripsMarkup(t *testing.T) {
	help := promptHelp(model.FormField{Description: "<b>Work</b> &amp; home"})
	if help != "Work & home" {
		t.Fatalf("unexpected help %q", help)
	}
	if got := promptHelp(model.FormField{Placeholder: "Jane"}); got != "Jane" {
		t.Fatalf("expected placeholder fallback, got %q", got)
	}
}
