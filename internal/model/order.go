package model

import "sort"

// OrderLess sorts parameters by the order configured in their field
// settings. Parameters without settings sort as order 0.
func OrderLess(a, b Parameter, settings FieldSettingsMap) bool {
	return settings[a.ID].Order < settings[b.ID].Order
}

// SortParameters returns a stably sorted copy of params. The input slice is
// left untouched.
func SortParameters(params []Parameter, settings FieldSettingsMap, less LessFunc) []Parameter {
	if len(params) == 0 {
		return nil
	}
	if less == nil {
		less = OrderLess
	}
	sorted := append([]Parameter(nil), params...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j], settings)
	})
	return sorted
}
