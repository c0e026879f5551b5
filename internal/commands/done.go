package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"todosync/internal/config"
	"todosync/internal/exitcode"
	"todosync/internal/prompt"
	"todosync/internal/todo"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return nil }
func (c *DoneCmd) Synopsis() string  { return "Mark a todo done" }
func (c *DoneCmd) Usage() string     { return "todosync done <number>" }
func (c *DoneCmd) NeedsTasks() bool  { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, todos *todo.Manager, args []string, in *prompt.Reader, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: task number required")
		return exitcode.UserError
	}
	if len(args) > 1 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[1])
		return exitcode.UserError
	}

	num, err := todo.ParseNumber(args[0])
	if err != nil {
		fmt.Fprintf(errOut, "error: invalid task number: %s\n", args[0])
		return exitcode.UserError
	}

	if err := todos.MarkDone(ctx, num); err != nil {
		if errors.Is(err, todo.ErrInvalidNumber) {
			fmt.Fprintf(errOut, "error: task number out of range: %d\n", num)
			return exitcode.UserError
		}
		return storeError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "Marked as done!")
	}
	return exitcode.Success
}
