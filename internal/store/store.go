// Package store persists the task list as a JSON file on local disk.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/sirupsen/logrus"

	"todosync/internal/logger"
	"todosync/internal/service"
)

const schemaURL = "todosync://todos.schema.json"

// schemaJSON describes the file: an array of {task, done} objects.
const schemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["task", "done"],
    "properties": {
      "task": {"type": "string"},
      "done": {"type": "boolean"}
    }
  }
}`

var schema = jsonschema.MustCompileString(schemaURL, schemaJSON)

// CorruptError reports a task file that exists but cannot be decoded.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupt task file %s: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

// Store reads and writes the task file at Path.
// Writes are not atomic; a crash mid-write can leave a truncated file.
type Store struct {
	path string
}

// New returns a Store for the file at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the file location.
func (s *Store) Path() string {
	return s.path
}

// Load returns the stored tasks, or an empty list if the file does not exist.
func (s *Store) Load() ([]service.Task, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Log.WithField("path", s.path).Debug("task file not found, starting empty")
		return []service.Task{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read task file: %w", err)
	}

	if err := validate(data); err != nil {
		return nil, &CorruptError{Path: s.path, Err: err}
	}

	tasks := []service.Task{}
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, &CorruptError{Path: s.path, Err: err}
	}

	logger.Log.WithFields(logrus.Fields{"path": s.path, "count": len(tasks)}).Debug("loaded tasks")
	return tasks, nil
}

// Save overwrites the file with tasks, 2-space indented, with a trailing newline.
func (s *Store) Save(tasks []service.Task) error {
	if tasks == nil {
		tasks = []service.Task{}
	}

	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create task file dir: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write task file: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{"path": s.path, "count": len(tasks), "bytes": len(data)}).Debug("saved tasks")
	return nil
}

func validate(data []byte) error {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return fmt.Errorf("%s", firstCause(ve))
		}
		return err
	}
	return nil
}

// firstCause returns the deepest first validation failure, which names
// the offending task.
func firstCause(ve *jsonschema.ValidationError) string {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	loc := ve.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return fmt.Sprintf("%s: %s", loc, ve.Message)
}
