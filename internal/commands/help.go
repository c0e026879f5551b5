package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todosync/internal/config"
	"todosync/internal/exitcode"
	"todosync/internal/prompt"
	"todosync/internal/todo"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "todosync help" }
func (c *HelpCmd) NeedsTasks() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, todos *todo.Manager, args []string, in *prompt.Reader, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  todosync                                  Interactive menu
  todosync menu [common flags]              Interactive menu
  todosync add [common flags] <text...>     Add a todo
  todosync list [common flags]              List todos
  todosync done [common flags] <number>     Mark a todo done
  todosync sync [common flags]              Load todos from remote storage
  todosync login [common flags]             Authenticate with Google Cloud Storage
  todosync logout [common flags]            Remove stored credentials
  todosync help
  todosync version

Commands that read or change todos ask for the password first.

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
