// Package settings provides the library-wide circulation settings to the command and query
// handlers. Handlers ask for the settings on every operation, so a changed configuration
// applies to the next operation without a restart.
package settings
