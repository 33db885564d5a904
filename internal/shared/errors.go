package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Store errors
	ErrSourceUnavailable = fmt.Errorf("legacy store unavailable")
	ErrTargetUnavailable = fmt.Errorf("target store unavailable")
	ErrDocumentNotFound  = fmt.Errorf("document not found")
	ErrUnknownTable      = fmt.Errorf("unknown target table")

	// Migration errors
	ErrMigrationFailed = fmt.Errorf("migration failed")
	ErrManifestEmpty   = fmt.Errorf("manifest contains no inserts")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
