package loader_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-actionform/pkg/loader"
	"github.com/goliatone/go-actionform/pkg/model"
)

const contactYAML = `
id: " update_contact "
name: Update contact
parameters:
  - id: name
    name: Name
    type: string
    required: true
  - id: age
    type: number
fields:
  name:
    title: Full name
    inputType: string
    required: true
  " age ":
    inputType: number
    order: 1
    defaultValue: 30
`

const listJSON = `{
  "actions": [
    {"id": "archive", "parameters": [{"id": "reason"}]},
    {"id": "restore", "parameters": [{"id": "note"}], "fields": {"note": {"inputType": "text"}}}
  ]
}`

func TestParse_SingleYAMLAction(t *testing.T) {
	defs, err := loader.Parse([]byte(contactYAML), "contact.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(defs) != 1 {
		t.Fatalf("expected one action, got %d", len(defs))
	}

	def := defs[0]
	if def.ID != "update_contact" || def.Source != "contact.yaml" {
		t.Fatalf("unexpected definition header %q %q", def.ID, def.Source)
	}
	wantParams := []model.Parameter{
		{ID: "name", Name: "Name", Type: model.FieldTypeString, Required: true},
		{ID: "age", Type: model.FieldTypeNumber},
	}
	if diff := cmp.Diff(wantParams, def.Parameters); diff != "" {
		t.Fatalf("parameters mismatch (-want +got):\n%s", diff)
	}

	age, ok := def.Fields["age"]
	if !ok {
		t.Fatalf("expected trimmed settings key, got %v", def.Fields)
	}
	if age.ID != "age" || age.Order != 1 || age.DefaultValue != 30 {
		t.Fatalf("unexpected age settings %#v", age)
	}
	if def.Fields["name"].ID != "name" {
		t.Fatalf("expected settings id to default to the key")
	}
}

func TestParse_ActionListJSON(t *testing.T) {
	defs, err := loader.Parse([]byte(listJSON), "actions.json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	var ids []string
	for _, def := range defs {
		ids = append(ids, def.ID)
	}
	if diff := cmp.Diff([]string{"archive", "restore"}, ids); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	if defs[1].Fields["note"].InputType != model.InputTypeText {
		t.Fatalf("unexpected restore fields %#v", defs[1].Fields)
	}
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":              "   ",
		"malformed":          "id: [unterminated",
		"no actions":         "name: nothing here",
		"missing id":         "parameters:\n  - id: a\n",
		"blank parameter id": "id: x\nparameters:\n  - id: ' '\n",
		"duplicate param":    "id: x\nparameters:\n  - id: a\n  - id: a\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := loader.Parse([]byte(doc), "doc.yaml"); err == nil {
				t.Fatalf("expected error for %q", doc)
			}
		})
	}
}

func TestLoadFS(t *testing.T) {
	files := fstest.MapFS{
		"contact.yaml":        {Data: []byte(contactYAML)},
		"nested/actions.json": {Data: []byte(listJSON)},
		"README.md":           {Data: []byte("not a definition")},
	}

	store, err := loader.LoadFS(files)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"archive", "restore", "update_contact"}, store.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	def, ok := store.Action(" archive ")
	if !ok || def.Source != "nested/actions.json" {
		t.Fatalf("unexpected archive lookup %#v %v", def, ok)
	}
	if _, ok := store.Action("missing"); ok {
		t.Fatal("expected missing action lookup to fail")
	}
}

func TestLoadFS_DuplicateIDs(t *testing.T) {
	files := fstest.MapFS{
		"a.yaml": {Data: []byte("id: dup\nparameters: []\n")},
		"b.yaml": {Data: []byte("id: dup\nparameters: []\n")},
	}

	_, err := loader.LoadFS(files)
	if err == nil || !strings.Contains(err.Error(), `duplicate action "dup"`) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestStore_Empty(t *testing.T) {
	var nilStore *loader.Store
	if !nilStore.Empty() || nilStore.IDs() != nil {
		t.Fatal("nil store should be empty")
	}

	store, err := loader.LoadFS(nil)
	if err != nil {
		t.Fatalf("load nil fs: %v", err)
	}
	if !store.Empty() {
		t.Fatal("expected empty store")
	}

	if _, err := loader.NewStore(loader.Definition{ID: " "}); err == nil {
		t.Fatal("expected blank id error")
	}
}

func TestSources(t *testing.T) {
	if src := loader.SourceFromFile("defs/../defs/a.yaml"); src.Kind() != loader.SourceKindFile || src.Location() != "defs/a.yaml" {
		t.Fatalf("unexpected file source %v %q", src.Kind(), src.Location())
	}
	if src := loader.SourceFromFS("a.yaml"); src.Kind() != loader.SourceKindFS {
		t.Fatalf("unexpected fs source kind %v", src.Kind())
	}
	if src := loader.SourceFromURL("https://example.com/a.yaml"); src.Kind() != loader.SourceKindURL {
		t.Fatalf("unexpected url source kind %v", src.Kind())
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for invalid url")
		}
	}()
	loader.SourceFromURL("::not a url")
}
