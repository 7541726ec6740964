package loader

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-actionform/pkg/model"
)

// Definition is a single writeback action: its parameters plus the field
// settings authored for them.
type Definition struct {
	ID          string                 `json:"id" yaml:"id"`
	Name        string                 `json:"name,omitempty" yaml:"name,omitempty"`
	Description string                 `json:"description,omitempty" yaml:"description,omitempty"`
	Parameters  []model.Parameter      `json:"parameters" yaml:"parameters"`
	Fields      model.FieldSettingsMap `json:"fields,omitempty" yaml:"fields,omitempty"`
	Source      string                 `json:"-" yaml:"-"`
}

type documentFile struct {
	Actions    []Definition `json:"actions" yaml:"actions"`
	Definition `yaml:",inline"`
}

// Parse decodes a JSON or YAML document holding either a single action at the
// top level or a list under "actions". source is only used in error messages.
func Parse(data []byte, source string) ([]Definition, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("loader: document %s is empty", source)
	}

	doc, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("loader: parse %s: invalid JSON or YAML", source)
	}

	defs := doc.Actions
	if len(defs) == 0 && (doc.ID != "" || len(doc.Parameters) > 0) {
		defs = []Definition{doc.Definition}
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("loader: document %s defines no actions", source)
	}

	out := make([]Definition, 0, len(defs))
	for idx, def := range defs {
		normalised, err := normaliseDefinition(def, source)
		if err != nil {
			return nil, fmt.Errorf("loader: %s action %d: %w", source, idx, err)
		}
		out = append(out, normalised)
	}
	return out, nil
}

func decode(data []byte) (documentFile, error) {
	var doc documentFile
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, err
	}
	return doc, nil
}

func normaliseDefinition(def Definition, source string) (Definition, error) {
	def.ID = strings.TrimSpace(def.ID)
	if def.ID == "" {
		return Definition{}, fmt.Errorf("action id is required")
	}
	def.Source = source

	seen := make(map[string]struct{}, len(def.Parameters))
	params := make([]model.Parameter, 0, len(def.Parameters))
	for idx, param := range def.Parameters {
		param.ID = strings.TrimSpace(param.ID)
		if param.ID == "" {
			return Definition{}, fmt.Errorf("action %q parameter %d has an empty id", def.ID, idx)
		}
		if _, dup := seen[param.ID]; dup {
			return Definition{}, fmt.Errorf("action %q defines duplicate parameter %q", def.ID, param.ID)
		}
		seen[param.ID] = struct{}{}
		params = append(params, param)
	}
	def.Parameters = params

	if len(def.Fields) > 0 {
		fields := make(model.FieldSettingsMap, len(def.Fields))
		for key, cfg := range def.Fields {
			trimmed := strings.TrimSpace(key)
			if trimmed == "" {
				return Definition{}, fmt.Errorf("action %q field settings key is empty", def.ID)
			}
			if cfg.ID == "" {
				cfg.ID = trimmed
			}
			cfg.ValueOptions = append([]any(nil), cfg.ValueOptions...)
			fields[trimmed] = cfg
		}
		def.Fields = fields
	}
	return def, nil
}
