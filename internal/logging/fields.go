// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError  = "error"
	FieldPath   = "path"
	FieldPaths  = "paths"
	FieldInput  = "input"
	FieldOutput = "output"

	// Translation fields.
	FieldBytesIn  = "bytes_in"
	FieldBytesOut = "bytes_out"
	FieldRefs     = "refs"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
