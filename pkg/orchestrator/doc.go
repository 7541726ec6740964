// Package orchestrator wires the definition store, form builder, schema builder
// and renderer registry into a single entry point: Prepare builds the form and
// its rules, Generate renders them and Submit validates posted values.
package orchestrator
