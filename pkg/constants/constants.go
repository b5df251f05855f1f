// Package constants provides shared constants used throughout the fabricsync
// codebase: timeouts, file permissions, and reconciliation defaults.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to the
	// controller API.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultTimeout is the standard timeout for general operations.
	DefaultTimeout = 10 * time.Second

	// FetchTimeout bounds one connectivity fetch-and-merge invocation.
	FetchTimeout = 2 * time.Minute

	// CommandTimeout is the default timeout for CLI commands.
	CommandTimeout = 10 * time.Minute
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644

	// SecureFilePermissions is for sensitive files like credentials (rw-------)
	SecureFilePermissions = 0600
)

// Reconciliation defaults
const (
	// LagModeActive is the LACP-active lag mode literal used by both input
	// rows and the controller.
	LagModeActive = "lacp_active"

	// LagGroupPrefix prefixes auto-assigned link group names.
	LagGroupPrefix = "ae"

	// CTNameSeparator joins connectivity-template name lists in flat rows.
	CTNameSeparator = ","
)
