package vanilla_test

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-actionform/pkg/model"
	"github.com/goliatone/go-actionform/pkg/render"
	"github.com/goliatone/go-actionform/pkg/renderers/vanilla"
	"github.com/goliatone/go-actionform/pkg/schema"
	"github.com/goliatone/go-actionform/pkg/testsupport"
)

func sampleFormAndSchema(t *testing.T) (model.Form, *schema.Schema) {
	t.Helper()

	def := testsupport.SampleDefinition()
	form := model.NewBuilder().Build(def.Parameters, def.Fields)
	form.ActionID = def.ID
	form.Name = def.Name
	return form, schema.Build(def.Parameters, def.Fields)
}

func renderSample(t *testing.T, options render.RenderOptions, opts ...vanilla.Option) string {
	t.Helper()

	renderer, err := vanilla.New(opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	form, rules := sampleFormAndSchema(t)
	out, err := renderer.Render(context.Background(), form, rules, options)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func TestRenderer_RendersEveryEditableField(t *testing.T) {
	html := renderSample(t, render.RenderOptions{Action: "/actions/update_contact"})

	for _, snippet := range []string{
		`<form class="af-form" method="post" action="/actions/update_contact" data-action-id="update_contact" novalidate>`,
		`<input type="text" id="af-name" name="name" value="" placeholder="Jane Doe" required>`,
		`<input type="number" id="af-age" name="age" value="30" step="any">`,
		`<input type="date" id="af-birthday" name="birthday" value="">`,
		`<input type="checkbox" id="af-vip" name="vip" value="true">`,
		`<textarea id="af-notes" name="notes"></textarea>`,
		`<option value="gold">gold</option>`,
		`<input type="hidden" name="_action_id" value="update_contact">`,
		`<button type="submit">Submit</button>`,
	} {
		if !strings.Contains(html, snippet) {
			t.Fatalf("expected output to contain %q\n%s", snippet, html)
		}
	}

	for _, omitted := range []string{`name="legacy"`, `name="created_at"`} {
		if strings.Contains(html, omitted) {
			t.Fatalf("expected non-editable field %q to be omitted", omitted)
		}
	}
}

func TestRenderer_OrdersFieldsBySettings(t *testing.T) {
	html := renderSample(t, render.RenderOptions{})

	last := -1
	for _, name := range []string{"name", "email", "age", "birthday", "vip", "tier", "notes"} {
		idx := strings.Index(html, `data-field="`+name+`"`)
		if idx < 0 {
			t.Fatalf("field %q missing", name)
		}
		if idx < last {
			t.Fatalf("field %q rendered out of order", name)
		}
		last = idx
	}
}

func TestRenderer_SanitisesDescriptions(t *testing.T) {
	html := renderSample(t, render.RenderOptions{})

	if strings.Contains(html, "<script>") {
		t.Fatalf("script tag leaked into output:\n%s", html)
	}
	if !strings.Contains(html, "<b>Work</b> address") {
		t.Fatalf("expected safe markup to survive sanitising:\n%s", html)
	}
}

func TestRenderer_ValuesErrorsAndHidden(t *testing.T) {
	html := renderSample(t, render.RenderOptions{
		Method: "PUT",
		Values: map[string]any{
			"name": `Ada "Countess" Lovelace`,
			"age":  36.0,
			"vip":  true,
			"tier": "silver",
		},
		Errors: map[string][]string{
			"name": {"This field is required"},
			"":     {"Action failed"},
		},
		Hidden: map[string]string{
			"_csrf":                    "tok",
			render.IdempotencyKeyField: "fixed-key",
		},
		SubmitLabel: "Save",
	})

	for _, snippet := range []string{
		`method="put"`,
		`value="Ada &quot;Countess&quot; Lovelace"`,
		`name="age" value="36"`,
		`name="vip" value="true" checked>`,
		`<option value="silver" selected>silver</option>`,
		`<p class="af-field__error">This field is required</p>`,
		`<li>Action failed</li>`,
		`<input type="hidden" name="_csrf" value="tok">`,
		`<input type="hidden" name="_idempotency_key" value="fixed-key">`,
		`<button type="submit">Save</button>`,
	} {
		if !strings.Contains(html, snippet) {
			t.Fatalf("expected output to contain %q\n%s", snippet, html)
		}
	}
}

func TestRenderer_IdempotencyKeyToggle(t *testing.T) {
	withKey := renderSample(t, render.RenderOptions{})
	if !strings.Contains(withKey, `name="_idempotency_key"`) {
		t.Fatalf("expected idempotency key by default")
	}

	withoutKey := renderSample(t, render.RenderOptions{}, vanilla.WithIdempotencyKey(false))
	if strings.Contains(withoutKey, `name="_idempotency_key"`) {
		t.Fatalf("expected idempotency key to be disabled")
	}
}

func TestRenderer_CustomTemplates(t *testing.T) {
	files := fstest.MapFS{
		"templates/form.tpl": {Data: []byte(`{% for field in form.fields %}{{ field.name }};{% endfor %}`)},
	}

	out := renderSample(t, render.RenderOptions{}, vanilla.WithTemplatesFS(files))
	if want := "name;email;age;birthday;vip;tier;notes;"; out != want {
		t.Fatalf("custom template output mismatch\nwant: %q\n got: %q", want, out)
	}
}

func TestRenderer_Metadata(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if renderer.Name() != "vanilla" {
		t.Fatalf("unexpected name %q", renderer.Name())
	}
	if renderer.ContentType() != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type %q", renderer.ContentType())
	}
}
