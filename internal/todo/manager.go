// Package todo implements the task operations on top of the local store
// and the remote mirror.
//
// The local file is the source of truth. Every mutation is saved locally
// first and then uploaded; upload failures are reported as warnings and
// never roll back the local save.
package todo

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"todosync/internal/logger"
	"todosync/internal/service"
)

// ErrInvalidNumber is returned by MarkDone for a number outside the list.
var ErrInvalidNumber = errors.New("invalid task number")

// Store is the local persistence used by Manager.
type Store interface {
	Load() ([]service.Task, error)
	Save(tasks []service.Task) error
}

// Manager runs the task operations.
type Manager struct {
	store  Store
	mirror service.Mirror
	out    io.Writer
	quiet  bool
}

// NewManager creates a Manager. Persistence status messages go to out.
func NewManager(store Store, mirror service.Mirror, out io.Writer) *Manager {
	return &Manager{store: store, mirror: mirror, out: out}
}

// SetQuiet suppresses success messages. Warnings are always printed.
func (m *Manager) SetQuiet(quiet bool) {
	m.quiet = quiet
}

// List returns the current tasks.
func (m *Manager) List() ([]service.Task, error) {
	return m.store.Load()
}

// Add appends an open task with text and persists the list.
func (m *Manager) Add(ctx context.Context, text string) error {
	tasks, err := m.store.Load()
	if err != nil {
		return err
	}
	tasks = append(tasks, service.Task{Task: text})
	return m.persist(ctx, tasks)
}

// MarkDone marks the task at the 1-based number as done and persists the list.
// Returns ErrInvalidNumber without changing anything if number is out of range.
func (m *Manager) MarkDone(ctx context.Context, number int) error {
	tasks, err := m.store.Load()
	if err != nil {
		return err
	}

	idx := number - 1
	if idx < 0 || idx >= len(tasks) {
		return fmt.Errorf("%w: %d", ErrInvalidNumber, number)
	}

	tasks[idx].Done = true
	return m.persist(ctx, tasks)
}

// Sync replaces the local list with the remote copy.
// If the remote copy cannot be fetched or decoded, a warning is printed
// and the local list is returned unchanged.
func (m *Manager) Sync(ctx context.Context) ([]service.Task, error) {
	tasks, err := m.mirror.Download(ctx)
	if err != nil {
		m.logRemoteError("download", err)
		fmt.Fprintf(m.out, "⚠️  Failed to load from remote storage: %v\n", err)
		return m.store.Load()
	}

	if err := m.store.Save(tasks); err != nil {
		return nil, err
	}
	if !m.quiet {
		fmt.Fprintln(m.out, "✅ Loaded todos from remote storage!")
	}
	return tasks, nil
}

// persist saves locally, then uploads. Only local errors are returned.
func (m *Manager) persist(ctx context.Context, tasks []service.Task) error {
	if err := m.store.Save(tasks); err != nil {
		return err
	}

	if err := m.mirror.Upload(ctx, tasks); err != nil {
		m.logRemoteError("upload", err)
		fmt.Fprintf(m.out, "⚠️  Saved locally, but remote upload failed: %v\n", err)
		return nil
	}

	if !m.quiet {
		fmt.Fprintln(m.out, "✅ Tasks saved locally and to remote storage!")
	}
	return nil
}

func (m *Manager) logRemoteError(op string, err error) {
	kind := "other"
	switch {
	case service.IsUnavailable(err):
		kind = "unavailable"
	case service.IsDecode(err):
		kind = "decode"
	}
	logger.Log.WithFields(logrus.Fields{"op": op, "kind": kind}).Debugf("remote %s failed: %v", op, err)
}
