// Package schema builds the validation schema paired with an action form and
// validates submitted values against it.
//
// One Rule is derived per configured field whose parameter is present. The
// rule kind follows the input type: number inputs coerce to float64, boolean
// inputs accept true/false/1/0, date, datetime and time inputs turn blank
// strings into null, and everything else validates as a string. Required rules
// reject missing, null and empty values with a fixed message; optional rules
// are nullable. A configured, non-empty default is applied when a value is
// absent.
package schema
