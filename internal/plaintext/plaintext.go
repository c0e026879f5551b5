// Package plaintext encodes task lists in the line format kept in remote storage.
//
// Each task is one line: "[<mark>] <text>", where mark is "✓" for done
// tasks and a space otherwise.
package plaintext

import (
	"strings"
	"unicode/utf8"

	"todosync/internal/service"
)

const (
	donePrefix = "[" + service.DoneMark + "]"
	openPrefix = "[" + service.OpenMark + "]"
)

// Encode renders tasks one per line, joined by newlines, with no trailing newline.
func Encode(tasks []service.Task) string {
	lines := make([]string, 0, len(tasks))
	for _, t := range tasks {
		lines = append(lines, FormatLine(t))
	}
	return strings.Join(lines, "\n")
}

// FormatLine renders a single task as "[<mark>] <text>".
func FormatLine(t service.Task) string {
	return "[" + t.Mark() + "] " + t.Task
}

// Decode parses a body produced by Encode.
// Whitespace-only lines are skipped. Invalid UTF-8 fails with the
// offending line number. A line without a recognized mark
// becomes an open task holding the whole line.
func Decode(body string) ([]service.Task, error) {
	tasks := []service.Task{}
	for i, line := range strings.Split(body, "\n") {
		if !utf8.ValidString(line) {
			return nil, &service.DecodeError{Line: i + 1, Reason: "invalid UTF-8"}
		}
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		tasks = append(tasks, ParseLine(line))
	}
	return tasks, nil
}

// ParseLine parses one non-empty line.
func ParseLine(line string) service.Task {
	if rest, ok := strings.CutPrefix(line, donePrefix); ok {
		return service.Task{Task: strings.TrimPrefix(rest, " "), Done: true}
	}
	if rest, ok := strings.CutPrefix(line, openPrefix); ok {
		return service.Task{Task: strings.TrimPrefix(rest, " ")}
	}
	return service.Task{Task: line}
}
