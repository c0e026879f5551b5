// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"todosync/internal/config"
	"todosync/internal/prompt"
	"todosync/internal/todo"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsTasks returns true if the command reads or writes tasks.
	// Such commands run only after the access gate grants entry.
	// Commands like help, version, login, logout return false.
	NeedsTasks() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, paths).
	// todos is nil if NeedsTasks() returns false.
	// in reads interactive answers.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, todos *todo.Manager, args []string, in *prompt.Reader, out, errOut io.Writer) int
}
