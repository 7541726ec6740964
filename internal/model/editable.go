package model

import "strings"

const visibilityRetired = "retired"

// DefaultEditable is the editability rule applied when callers do not supply
// their own. Custom fields are always writable. Columns whose values the
// database produces itself are not, except auto-increment keys that the
// action explicitly requires (update/delete actions addressing a row).
func DefaultEditable(field Field, param Parameter) bool {
	if !field.IsReal() {
		return true
	}
	if strings.EqualFold(strings.TrimSpace(field.VisibilityType), visibilityRetired) {
		return false
	}
	if field.DatabaseIsGenerated {
		return false
	}
	if field.DatabaseIsAutoIncrement {
		return param.Required
	}
	return true
}
