// Package blueprint reads generation parameters from a YAML blueprint
// file, so a project definition can be committed and replayed instead of
// answered interactively. Blueprints are validated against an embedded
// JSON Schema before any field is trusted.
package blueprint
