package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldCommand    = "command"

	// Configuration fields.
	FieldFlavor     = "flavor"
	FieldFormat     = "format"
	FieldConfigFile = "config_file"
	FieldColor      = "color"

	// Tree fields.
	FieldNodes    = "nodes"
	FieldTokens   = "tokens"
	FieldRecords  = "records"
	FieldDistinct = "distinct"
	FieldDepth    = "depth"
	FieldTextLen  = "text_len"
	FieldBytes    = "bytes"

	// Comparison fields.
	FieldEqual    = "equal"
	FieldOrder    = "order"
	FieldDiffPath = "diff_path"

	// Allocation fields.
	FieldAllocated = "allocated"
	FieldFreed     = "freed"
	FieldLive      = "live"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
