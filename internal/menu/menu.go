// Package menu runs the interactive numbered menu.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"todosync/internal/output"
	"todosync/internal/prompt"
	"todosync/internal/todo"
)

// Prompt is printed after the options.
const Prompt = "Choose (1-5): "

// Action handles one menu choice. It returns quit=true to end the loop.
// A returned error ends the loop and is fatal.
type Action func(ctx context.Context) (quit bool, err error)

// Entry is a menu option bound to its action.
type Entry struct {
	Key    string
	Label  string
	Action Action
}

// Menu reads choices and dispatches them until quit.
type Menu struct {
	entries []Entry
	in      *prompt.Reader
	out     io.Writer
	quiet   bool
}

// New creates the standard five-option menu over todos.
func New(todos *todo.Manager, in *prompt.Reader, out io.Writer) *Menu {
	m := &Menu{in: in, out: out}
	m.entries = []Entry{
		{Key: "1", Label: "Add todo", Action: m.add(todos)},
		{Key: "2", Label: "View todos", Action: m.view(todos)},
		{Key: "3", Label: "Mark done", Action: m.markDone(todos)},
		{Key: "4", Label: "Sync from remote", Action: m.sync(todos)},
		{Key: "5", Label: "Quit", Action: m.quit},
	}
	return m
}

// SetQuiet suppresses the confirmation after a successful add or mark done.
// Prompts, listings and error notices are still printed.
func (m *Menu) SetQuiet(quiet bool) {
	m.quiet = quiet
}

// Entries returns the options in display order.
func (m *Menu) Entries() []Entry {
	return m.entries
}

// Run loops until the quit option is chosen or input ends.
// Local store errors and context cancellation are returned.
func (m *Menu) Run(ctx context.Context) error {
	options := make([]output.MenuOption, len(m.entries))
	for i, e := range m.entries {
		options[i] = output.MenuOption{Key: e.Key, Label: e.Label}
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		output.FormatMenu(m.out, options)
		choice, err := m.in.Line(Prompt)
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(m.out)
				return nil
			}
			return err
		}

		entry, ok := m.find(strings.TrimSpace(choice))
		if !ok {
			fmt.Fprintln(m.out, "Invalid choice!")
			continue
		}

		quit, err := entry.Action(ctx)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

func (m *Menu) find(key string) (Entry, bool) {
	for _, e := range m.entries {
		if e.Key == key {
			return e, true
		}
	}
	return Entry{}, false
}

func (m *Menu) add(todos *todo.Manager) Action {
	return func(ctx context.Context) (bool, error) {
		text, err := m.in.Line("Enter your todo: ")
		if err != nil {
			return eofQuits(err)
		}
		if err := todos.Add(ctx, text); err != nil {
			return false, err
		}
		m.confirm("Todo added!")
		return false, nil
	}
}

func (m *Menu) view(todos *todo.Manager) Action {
	return func(ctx context.Context) (bool, error) {
		tasks, err := todos.List()
		if err != nil {
			return false, err
		}
		output.FormatTasks(m.out, tasks)
		return false, nil
	}
}

func (m *Menu) markDone(todos *todo.Manager) Action {
	return func(ctx context.Context) (bool, error) {
		tasks, err := todos.List()
		if err != nil {
			return false, err
		}
		output.FormatTasks(m.out, tasks)

		answer, err := m.in.Line("Enter todo number to mark done: ")
		if err != nil {
			return eofQuits(err)
		}

		num, err := todo.ParseNumber(answer)
		if err != nil {
			fmt.Fprintln(m.out, "Please enter a valid number!")
			return false, nil
		}

		err = todos.MarkDone(ctx, num)
		switch {
		case errors.Is(err, todo.ErrInvalidNumber):
			fmt.Fprintln(m.out, "Invalid number!")
		case err != nil:
			return false, err
		default:
			m.confirm("Marked as done!")
		}
		return false, nil
	}
}

func (m *Menu) sync(todos *todo.Manager) Action {
	return func(ctx context.Context) (bool, error) {
		_, err := todos.Sync(ctx)
		return false, err
	}
}

func (m *Menu) confirm(msg string) {
	if !m.quiet {
		fmt.Fprintln(m.out, msg)
	}
}

func (m *Menu) quit(ctx context.Context) (bool, error) {
	fmt.Fprintln(m.out, "Goodbye!")
	return true, nil
}

// eofQuits ends the loop quietly when input runs out mid-prompt.
func eofQuits(err error) (bool, error) {
	if errors.Is(err, io.EOF) {
		return true, nil
	}
	return false, err
}
