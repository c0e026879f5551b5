// Package service defines the backend-agnostic types for todo storage.
package service

import "context"

// Mirror defines the interface for the remote copy of the task list.
// Commands never import a cloud SDK directly.
type Mirror interface {
	// Upload replaces the remote copy with tasks.
	Upload(ctx context.Context, tasks []Task) error

	// Download fetches and decodes the remote copy.
	Download(ctx context.Context) ([]Task, error)
}

// Unavailable is a Mirror that fails every call.
// Used when no remote backend could be constructed.
type Unavailable struct {
	Err error
}

// Upload implements Mirror.
func (u Unavailable) Upload(ctx context.Context, tasks []Task) error {
	return &RemoteError{Op: "upload", Err: u.Err}
}

// Download implements Mirror.
func (u Unavailable) Download(ctx context.Context) ([]Task, error) {
	return nil, &RemoteError{Op: "download", Err: u.Err}
}
