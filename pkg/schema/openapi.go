package schema

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-actionform/pkg/model"
)

// OpenAPI exports the schema as an OpenAPI 3 object schema describing the
// request body a writeback endpoint accepts. Optional fields are nullable;
// required strings must be non-empty.
func (s *Schema) OpenAPI() *openapi3.Schema {
	out := openapi3.NewObjectSchema()
	if s == nil {
		return out
	}
	for _, rule := range s.Fields {
		out.WithProperty(rule.Name, rule.OpenAPI())
		if rule.Required {
			out.Required = append(out.Required, rule.Name)
		}
	}
	return out
}

// OpenAPI converts a single rule into its property schema.
func (r Rule) OpenAPI() *openapi3.Schema {
	var prop *openapi3.Schema
	switch r.Kind {
	case KindNumber:
		prop = openapi3.NewFloat64Schema()
	case KindBoolean:
		prop = openapi3.NewBoolSchema()
	case KindTemporal:
		prop = openapi3.NewStringSchema().WithFormat(temporalFormat(r.InputType))
	default:
		prop = openapi3.NewStringSchema()
		if r.Required {
			prop.WithMinLength(1)
		}
	}

	prop.Title = r.Title
	prop.Description = r.Description
	if r.Nullable {
		prop.Nullable = true
	}
	if r.HasDefault {
		prop.Default = r.Default
	}
	return prop
}

func temporalFormat(input model.InputType) string {
	switch input {
	case model.InputTypeDate:
		return "date"
	case model.InputTypeTime:
		return "time"
	default:
		return "date-time"
	}
}
