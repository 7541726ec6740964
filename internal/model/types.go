package model

// InputType is the input kind configured for a parameter in the action editor.
type InputType string

const (
	InputTypeString   InputType = "string"
	InputTypeText     InputType = "text"
	InputTypeDate     InputType = "date"
	InputTypeDateTime InputType = "datetime"
	InputTypeTime     InputType = "time"
	InputTypeNumber   InputType = "number"
	InputTypeBoolean  InputType = "boolean"
	InputTypeCategory InputType = "category"
	InputTypeSelect   InputType = "select"
	InputTypeRadio    InputType = "radio"
)

// WidgetType is the render-ready input component a form field maps to.
type WidgetType string

const (
	WidgetText          WidgetType = "text"
	WidgetTextArea      WidgetType = "textarea"
	WidgetDate          WidgetType = "date"
	WidgetDateTimeLocal WidgetType = "datetime-local"
	WidgetTime          WidgetType = "time"
	WidgetNumber        WidgetType = "number"
	WidgetBoolean       WidgetType = "boolean"
	WidgetCategory      WidgetType = "category"
	WidgetSelect        WidgetType = "select"
	WidgetRadio         WidgetType = "radio"
)

// FieldType is the coarse value type of a parameter ("string", "number",
// "date", "category", ...).
type FieldType string

const (
	FieldTypeString   FieldType = "string"
	FieldTypeNumber   FieldType = "number"
	FieldTypeDate     FieldType = "date"
	FieldTypeBoolean  FieldType = "boolean"
	FieldTypeCategory FieldType = "category"
)

// Parameter describes a single writeback action parameter.
type Parameter struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name,omitempty" yaml:"name,omitempty"`
	DisplayName string    `json:"display-name,omitempty" yaml:"display-name,omitempty"`
	Type        FieldType `json:"type,omitempty" yaml:"type,omitempty"`
	Required    bool      `json:"required,omitempty" yaml:"required,omitempty"`
	Target      string    `json:"target,omitempty" yaml:"target,omitempty"`
}

// Field is the database column backing a parameter. Custom (virtual) fields
// carry a zero ID.
type Field struct {
	ID                      int64  `json:"id,omitempty" yaml:"id,omitempty"`
	Name                    string `json:"name,omitempty" yaml:"name,omitempty"`
	DisplayName             string `json:"display_name,omitempty" yaml:"display_name,omitempty"`
	BaseType                string `json:"base_type,omitempty" yaml:"base_type,omitempty"`
	SemanticType            string `json:"semantic_type,omitempty" yaml:"semantic_type,omitempty"`
	VisibilityType          string `json:"visibility_type,omitempty" yaml:"visibility_type,omitempty"`
	DatabaseIsAutoIncrement bool   `json:"database_is_auto_increment,omitempty" yaml:"database_is_auto_increment,omitempty"`
	DatabaseIsGenerated     bool   `json:"database_is_generated,omitempty" yaml:"database_is_generated,omitempty"`
	DatabaseRequired        bool   `json:"database_required,omitempty" yaml:"database_required,omitempty"`
}

// IsReal reports whether the field maps to a physical column.
func (f Field) IsReal() bool {
	return f.ID > 0
}

// FieldSettings holds the per-parameter UI configuration authored in the
// action editor.
type FieldSettings struct {
	ID           string    `json:"id" yaml:"id"`
	Name         string    `json:"name,omitempty" yaml:"name,omitempty"`
	Title        string    `json:"title,omitempty" yaml:"title,omitempty"`
	Description  string    `json:"description,omitempty" yaml:"description,omitempty"`
	Placeholder  string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Order        int       `json:"order" yaml:"order"`
	FieldType    FieldType `json:"fieldType,omitempty" yaml:"fieldType,omitempty"`
	InputType    InputType `json:"inputType,omitempty" yaml:"inputType,omitempty"`
	Required     bool      `json:"required" yaml:"required"`
	DefaultValue any       `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	ValueOptions []any     `json:"valueOptions,omitempty" yaml:"valueOptions,omitempty"`
	Hidden       bool      `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Width        string    `json:"width,omitempty" yaml:"width,omitempty"`
	Field        *Field    `json:"field,omitempty" yaml:"field,omitempty"`
}

// FieldSettingsMap indexes field settings by parameter id.
type FieldSettingsMap map[string]FieldSettings

// Option is a single choice rendered by select/radio widgets.
type Option struct {
	Name  any `json:"name"`
	Value any `json:"value"`
}

// FormField is the render-ready descriptor for one action parameter.
type FormField struct {
	Name        string     `json:"name"`
	Type        WidgetType `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Placeholder string     `json:"placeholder,omitempty"`
	Optional    bool       `json:"optional"`
	Options     []Option   `json:"options,omitempty"`
	Field       *Field     `json:"field,omitempty"`
}

// Form is the ordered list of descriptors rendered for an action.
type Form struct {
	ActionID    string      `json:"actionId,omitempty"`
	Name        string      `json:"name,omitempty"`
	Description string      `json:"description,omitempty"`
	Fields      []FormField `json:"fields"`
}
