package model

var widgetByInputType = map[InputType]WidgetType{
	InputTypeString:   WidgetText,
	InputTypeText:     WidgetTextArea,
	InputTypeDate:     WidgetDate,
	InputTypeDateTime: WidgetDateTimeLocal,
	InputTypeTime:     WidgetTime,
	InputTypeNumber:   WidgetNumber,
	InputTypeBoolean:  WidgetBoolean,
	InputTypeCategory: WidgetCategory,
	InputTypeSelect:   WidgetSelect,
	InputTypeRadio:    WidgetRadio,
}

// WidgetFor maps an input type onto its widget. Unknown or empty input types
// render as plain text.
func WidgetFor(input InputType) WidgetType {
	if widget, ok := widgetByInputType[input]; ok {
		return widget
	}
	return WidgetText
}

// KnownInputType reports whether input is part of the widget table.
func KnownInputType(input InputType) bool {
	_, ok := widgetByInputType[input]
	return ok
}

// InputTypeHasOptions reports whether the input type renders a fixed list of
// choices.
func InputTypeHasOptions(input InputType) bool {
	return input == InputTypeSelect || input == InputTypeRadio
}

// IsTemporal reports whether the input type carries a date and/or time.
func IsTemporal(input InputType) bool {
	switch input {
	case InputTypeDate, InputTypeDateTime, InputTypeTime:
		return true
	default:
		return false
	}
}
