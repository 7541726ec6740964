package pongo_test

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-actionform/pkg/render/template"
	"github.com/goliatone/go-actionform/pkg/render/template/pongo"
	"github.com/goliatone/go-actionform/pkg/testsupport"
)

var _ template.TemplateRenderer = (*pongo.Engine)(nil)

type greeting struct {
	FirstName string `json:"first_name"`
	Tags      []string
}

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})

	want := "Hello Ada\n"
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestEngine_StructsUseJSONNames(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("struct.tpl", map[string]any{
		"person": greeting{FirstName: "Ada", Tags: []string{"a", "b"}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "Ada:a,b,\n"; result != want {
		t.Fatalf("render mismatch\nwant: %q\n got: %q", want, result)
	}
}

func TestEngine_Errors(t *testing.T) {
	if _, err := pongo.New(); err == nil {
		t.Fatal("expected error without a template filesystem")
	}

	engine := newEngine(t)
	_, err := engine.RenderTemplate("missing", nil)
	if err == nil || !strings.Contains(err.Error(), "missing.tpl") {
		t.Fatalf("expected load error naming the template, got %v", err)
	}

	var nilEngine *pongo.Engine
	if _, err := nilEngine.RenderTemplate("hello", nil); err == nil {
		t.Fatal("expected nil engine error")
	}
}

func TestEngine_ConcurrentRenders(t *testing.T) {
	engine := newEngine(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var buf bytes.Buffer
			if _, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, &buf); err != nil {
				t.Errorf("render: %v", err)
			}
		}()
	}
	wg.Wait()
}

func newEngine(t *testing.T) *pongo.Engine {
	t.Helper()

	files := fstest.MapFS{
		"hello.tpl":  {Data: []byte("Hello {{ name }}\n")},
		"struct.tpl": {Data: []byte("{{ person.first_name }}:{% for tag in person.Tags %}{{ tag }},{% endfor %}\n")},
	}

	engine, err := pongo.New(pongo.WithFS(files), pongo.WithName("test"))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
