package model

import internalmodel "github.com/goliatone/go-actionform/internal/model"

// InputType re-exports the internal InputType enumeration.
type InputType = internalmodel.InputType

const (
	InputTypeString   = internalmodel.InputTypeString
	InputTypeText     = internalmodel.InputTypeText
	InputTypeDate     = internalmodel.InputTypeDate
	InputTypeDateTime = internalmodel.InputTypeDateTime
	InputTypeTime     = internalmodel.InputTypeTime
	InputTypeNumber   = internalmodel.InputTypeNumber
	InputTypeBoolean  = internalmodel.InputTypeBoolean
	InputTypeCategory = internalmodel.InputTypeCategory
	InputTypeSelect   = internalmodel.InputTypeSelect
	InputTypeRadio    = internalmodel.InputTypeRadio
)

// WidgetType re-exports the internal WidgetType enumeration.
type WidgetType = internalmodel.WidgetType

const (
	WidgetText          = internalmodel.WidgetText
	WidgetTextArea      = internalmodel.WidgetTextArea
	WidgetDate          = internalmodel.WidgetDate
	WidgetDateTimeLocal = internalmodel.WidgetDateTimeLocal
	WidgetTime          = internalmodel.WidgetTime
	WidgetNumber        = internalmodel.WidgetNumber
	WidgetBoolean       = internalmodel.WidgetBoolean
	WidgetCategory      = internalmodel.WidgetCategory
	WidgetSelect        = internalmodel.WidgetSelect
	WidgetRadio         = internalmodel.WidgetRadio
)

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeString   = internalmodel.FieldTypeString
	FieldTypeNumber   = internalmodel.FieldTypeNumber
	FieldTypeDate     = internalmodel.FieldTypeDate
	FieldTypeBoolean  = internalmodel.FieldTypeBoolean
	FieldTypeCategory = internalmodel.FieldTypeCategory
)

type Parameter = internalmodel.Parameter
type Field = internalmodel.Field
type FieldSettings = internalmodel.FieldSettings
type FieldSettingsMap = internalmodel.FieldSettingsMap
type Option = internalmodel.Option
type FormField = internalmodel.FormField
type Form = internalmodel.Form

type EditablePredicate = internalmodel.EditablePredicate
type LessFunc = internalmodel.LessFunc

// WidgetFor maps an input type onto the widget rendered for it.
func WidgetFor(input InputType) WidgetType {
	return internalmodel.WidgetFor(input)
}

// KnownInputType reports whether input has an entry in the widget table.
func KnownInputType(input InputType) bool {
	return internalmodel.KnownInputType(input)
}

// InputTypeHasOptions reports whether the input type renders a list of choices.
func InputTypeHasOptions(input InputType) bool {
	return internalmodel.InputTypeHasOptions(input)
}

// IsTemporal reports whether the input type carries a date and/or time.
func IsTemporal(input InputType) bool {
	return internalmodel.IsTemporal(input)
}

// DefaultEditable is the editability rule used when none is configured.
func DefaultEditable(field Field, param Parameter) bool {
	return internalmodel.DefaultEditable(field, param)
}

// SortParameters returns params sorted by less (settings order by default)
// without mutating the input.
func SortParameters(params []Parameter, settings FieldSettingsMap, less LessFunc) []Parameter {
	return internalmodel.SortParameters(params, settings, less)
}
