// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown command, bad number).
	UserError = 1

	// AuthError indicates the password gate denied access or login failed.
	AuthError = 2

	// StoreError indicates the local task file could not be read or written.
	StoreError = 3
)
