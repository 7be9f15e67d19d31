// Package model defines the input schema vocabulary used to describe what
// should be extracted from unstructured text. A schema is a tree of immutable
// values: extraction inputs (text, number, numeric range, date), autocomplete
// inputs, selections backed by options, and forms that aggregate any of them.
//
// Values are built through the New* constructors, which check identifiers and
// aggregate invariants (unique ids within a form or selection) and report
// problems as *MissingFieldError or *InvalidFieldError. Once built, a value is
// never mutated; accessors hand out copies of slices so callers cannot alter
// shared state. Rendering, parsing, and validation of extraction results live
// in sibling packages that consume these types read-only.
package model
