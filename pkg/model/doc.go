// Package model defines the writeback action form model consumed by renderers.
// Builders reside in internal/model but return the types defined here.
//
// A Form is derived on every call from the action's parameters and the field
// settings authored in the editor: parameters are ordered by their configured
// order, each one is mapped onto a FormField whose Type names the widget to
// render (text, textarea, date, datetime-local, time, number, boolean,
// category, select, radio), and parameters whose backing database column is
// not editable are left out. Select and radio fields always carry options;
// sample options are substituted when none were configured.
package model
