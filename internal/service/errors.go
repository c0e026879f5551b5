package service

import (
	"errors"
	"fmt"
)

// ErrRemoteUnavailable matches every RemoteError under errors.Is.
var ErrRemoteUnavailable = errors.New("remote storage unavailable")

// RemoteError reports a failed call to the remote backend
// (auth, network, permissions, missing object).
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, ErrRemoteUnavailable)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// Is reports true for ErrRemoteUnavailable.
func (e *RemoteError) Is(target error) bool {
	return target == ErrRemoteUnavailable
}

// DecodeError reports a remote body that could not be parsed into tasks.
// It does not match ErrRemoteUnavailable.
type DecodeError struct {
	Line   int // 1-based, 0 if not line specific
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("decode remote tasks: line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("decode remote tasks: %s", e.Reason)
}

// IsUnavailable reports whether err is a remote availability failure.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrRemoteUnavailable)
}

// IsDecode reports whether err is a decode failure.
func IsDecode(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}
