package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"todosync/internal/config"
	"todosync/internal/exitcode"
	"todosync/internal/menu"
	"todosync/internal/prompt"
	"todosync/internal/todo"
)

func init() {
	Register(&MenuCmd{})
}

// MenuCmd runs the interactive menu. It is the default command.
type MenuCmd struct{}

func (c *MenuCmd) Name() string      { return "menu" }
func (c *MenuCmd) Aliases() []string { return nil }
func (c *MenuCmd) Synopsis() string  { return "Interactive menu" }
func (c *MenuCmd) Usage() string     { return "todosync [menu]" }
func (c *MenuCmd) NeedsTasks() bool  { return true }

func (c *MenuCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *MenuCmd) Run(ctx context.Context, cfg *config.Config, todos *todo.Manager, args []string, in *prompt.Reader, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	m := menu.New(todos, in, out)
	m.SetQuiet(cfg.Quiet)

	err := m.Run(ctx)
	switch {
	case err == nil:
		return exitcode.Success
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(errOut, "error: cancelled")
		return exitcode.UserError
	default:
		return storeError(errOut, err)
	}
}
