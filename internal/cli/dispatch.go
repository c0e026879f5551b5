package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todosync/internal/commands"
	"todosync/internal/config"
	"todosync/internal/exitcode"
	"todosync/internal/gate"
	"todosync/internal/logger"
	"todosync/internal/prompt"
	"todosync/internal/service"
	"todosync/internal/store"
	"todosync/internal/todo"
)

// MirrorFactory creates the remote mirror from config.
// Used to inject the backend during dispatch.
type MirrorFactory func(ctx context.Context, cfg *config.Config) (service.Mirror, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  MirrorFactory
}

// NewDispatcher creates a new dispatcher with the given registry and mirror factory.
func NewDispatcher(registry *commands.Registry, factory MirrorFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Interactive input is read from in. Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	// No args -> interactive menu
	if len(args) == 0 {
		return d.dispatch(ctx, "menu", nil, in, out, errOut)
	}

	cmdName := args[0]

	// If first token starts with -, it's an error (flags require a command)
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatchCommand(ctx, cmd, args[1:], in, out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, in io.Reader, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, in, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, in io.Reader, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var configDir string
	var quiet bool
	var debug bool

	fs.StringVar(&configDir, "config", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return flagError(errOut, err)
	}

	// Check if first positional arg starts with - (should have been parsed as flag)
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	logger.Setup(errOut, debug, quiet)

	cfg, err := config.New(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug

	// The gate and the command share one reader so buffered input is not lost.
	reader := prompt.NewReader(in, out)

	var todos *todo.Manager
	if cmd.NeedsTasks() {
		g := gate.New(gate.Password(cfg.Password), gate.DefaultAttempts)
		if !gate.Run(g, reader, out) {
			return exitcode.AuthError
		}
		todos = d.newManager(ctx, cfg, out)
	}

	return cmd.Run(ctx, cfg, todos, positionalArgs, reader, out, errOut)
}

// newManager wires the local store and the remote mirror.
// A mirror that cannot be built is replaced by one that always fails,
// so task commands still work against the local file.
func (d *Dispatcher) newManager(ctx context.Context, cfg *config.Config, out io.Writer) *todo.Manager {
	var mirror service.Mirror = service.Unavailable{Err: fmt.Errorf("no remote backend configured")}
	if d.factory != nil {
		m, err := d.factory(ctx, cfg)
		if err != nil {
			logger.Log.WithField("bucket", cfg.Remote.Bucket).Warnf("remote storage unavailable: %v", err)
			mirror = service.Unavailable{Err: err}
		} else {
			mirror = m
		}
	}

	todos := todo.NewManager(store.New(cfg.TodoFile), mirror, out)
	todos.SetQuiet(cfg.Quiet)
	return todos
}

func flagError(errOut io.Writer, err error) int {
	errStr := err.Error()

	// Check for missing flag value
	if strings.Contains(errStr, "needs a value") || strings.Contains(errStr, "flag needs an argument") {
		parts := strings.Split(errStr, ":")
		flagPart := strings.TrimSpace(parts[0])
		flagPart = strings.TrimPrefix(flagPart, "flag ")
		if len(parts) > 1 {
			flagPart = strings.TrimSpace(parts[1])
		}
		fmt.Fprintf(errOut, "error: flag needs an argument: %s\n", flagPart)
		return exitcode.UserError
	}

	// Check for unknown flag
	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		flagName := strings.TrimPrefix(errStr, "flag provided but not defined: ")
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", flagName)
		return exitcode.UserError
	}

	fmt.Fprintf(errOut, "error: %s\n", errStr)
	return exitcode.UserError
}
