// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todosync/internal/service"
)

const (
	// MenuTitle is the header printed above the menu options.
	MenuTitle = "=== SIMPLE TODO LIST ==="

	// NoTasks is printed when the list is empty.
	NoTasks = "No todos yet!"
)

// FormatTask formats a task line.
// Format: "{N}. [{MARK}] {TEXT}\n"
func FormatTask(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "%d. [%s] %s\n", num, task.Mark(), normalizeText(task.Task))
}

// FormatTasks prints every task numbered from 1, or NoTasks when empty.
func FormatTasks(w io.Writer, tasks []service.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, NoTasks)
		return
	}
	for i, task := range tasks {
		FormatTask(w, i+1, task)
	}
}

// MenuOption is one numbered line of the menu.
type MenuOption struct {
	Key   string
	Label string
}

// FormatMenu prints a blank line, the title, then one line per option.
func FormatMenu(w io.Writer, options []MenuOption) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, MenuTitle)
	for _, o := range options {
		fmt.Fprintf(w, "%s. %s\n", o.Key, o.Label)
	}
}

// normalizeText replaces line breaks with spaces so one task is one line.
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	return strings.ReplaceAll(text, "\n", " ")
}
