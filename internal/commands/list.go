package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todosync/internal/config"
	"todosync/internal/exitcode"
	"todosync/internal/output"
	"todosync/internal/prompt"
	"todosync/internal/todo"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
type ListCmd struct{}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List todos" }
func (c *ListCmd) Usage() string     { return "todosync list" }
func (c *ListCmd) NeedsTasks() bool  { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, todos *todo.Manager, args []string, in *prompt.Reader, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	tasks, err := todos.List()
	if err != nil {
		return storeError(errOut, err)
	}

	// Quiet suppresses only the empty-list notice
	if len(tasks) == 0 && cfg.Quiet {
		return exitcode.Success
	}
	output.FormatTasks(out, tasks)
	return exitcode.Success
}
