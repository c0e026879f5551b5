package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todosync/internal/config"
	"todosync/internal/exitcode"
	"todosync/internal/prompt"
	"todosync/internal/todo"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Add a todo" }
func (c *AddCmd) Usage() string     { return "todosync add <text...>" }
func (c *AddCmd) NeedsTasks() bool  { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, todos *todo.Manager, args []string, in *prompt.Reader, out, errOut io.Writer) int {
	text := strings.Join(args, " ")
	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(errOut, "error: todo text required")
		return exitcode.UserError
	}

	if err := todos.Add(ctx, text); err != nil {
		return storeError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "Todo added!")
	}
	return exitcode.Success
}

// storeError reports a local persistence failure.
func storeError(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: local store: %v\n", err)
	return exitcode.StoreError
}
