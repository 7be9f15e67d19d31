// Package openapi describes the value an extraction run is expected to
// produce for an input tree, expressed as kin-openapi schemas. The generated
// schemas double as JSON Schema for validating model output and can be
// published as components of an OpenAPI document.
package openapi
