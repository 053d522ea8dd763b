package logging

// Structured field names used by the CLI.
const (
	FieldError  = "error"
	FieldPath   = "path"
	FieldInput  = "input"
	FieldOutput = "output"
	FieldBytes  = "bytes"

	FieldCommand = "command"
	FieldFormat  = "format"
	FieldWritten = "written"
	FieldNodes   = "nodes"

	// Configuration.
	FieldConfigSource = "config_source"
	FieldWarning      = "warning"

	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
