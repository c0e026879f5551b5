// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"sync"

	"todosync/internal/plaintext"
	"todosync/internal/service"
)

// ErrNetwork simulates a connectivity failure.
var ErrNetwork = errors.New("simulated network error")

// FakeMirror is an in-memory implementation of service.Mirror for testing.
// The remote copy is kept in the same text form the real backend stores.
type FakeMirror struct {
	mu      sync.RWMutex
	body    string
	present bool

	// Uploads counts successful Upload calls.
	Uploads int

	// Error injection for testing
	UploadErr   error
	DownloadErr error
}

// NewFakeMirror creates an empty FakeMirror with no remote object.
func NewFakeMirror() *FakeMirror {
	return &FakeMirror{}
}

// SetBody sets the raw remote object content.
func (f *FakeMirror) SetBody(body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.body = body
	f.present = true
}

// Body returns the raw remote object content and whether it exists.
func (f *FakeMirror) Body() (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.body, f.present
}

// Upload implements service.Mirror.
func (f *FakeMirror) Upload(ctx context.Context, tasks []service.Task) error {
	if f.UploadErr != nil {
		return &service.RemoteError{Op: "upload", Err: f.UploadErr}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.body = plaintext.Encode(tasks)
	f.present = true
	f.Uploads++
	return nil
}

// Download implements service.Mirror.
func (f *FakeMirror) Download(ctx context.Context) ([]service.Task, error) {
	if f.DownloadErr != nil {
		return nil, &service.RemoteError{Op: "download", Err: f.DownloadErr}
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if !f.present {
		return nil, &service.RemoteError{Op: "download", Err: errors.New("not found")}
	}
	return plaintext.Decode(f.body)
}
