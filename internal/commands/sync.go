package commands

import (
	"context"
	"flag"
	"io"

	"todosync/internal/config"
	"todosync/internal/exitcode"
	"todosync/internal/prompt"
	"todosync/internal/todo"
)

func init() {
	Register(&SyncCmd{})
}

// SyncCmd implements the sync command.
// Remote failures are warnings; the exit code is non-zero only for local errors.
type SyncCmd struct{}

func (c *SyncCmd) Name() string      { return "sync" }
func (c *SyncCmd) Aliases() []string { return []string{"pull"} }
func (c *SyncCmd) Synopsis() string  { return "Load todos from remote storage" }
func (c *SyncCmd) Usage() string     { return "todosync sync" }
func (c *SyncCmd) NeedsTasks() bool  { return true }

func (c *SyncCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *SyncCmd) Run(ctx context.Context, cfg *config.Config, todos *todo.Manager, args []string, in *prompt.Reader, out, errOut io.Writer) int {
	if _, err := todos.Sync(ctx); err != nil {
		return storeError(errOut, err)
	}
	return exitcode.Success
}
