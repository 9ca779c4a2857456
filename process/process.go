// Package process provides the portable types shared by the procfs reader
// and the pty resolver.
package process

import "errors"

var (
	// ErrProcessNotFound is returned when the stat record of a process cannot be opened,
	// either because the process is gone or because the caller may not read it.
	ErrProcessNotFound = errors.New("process not found")

	// ErrMalformedRecord is returned when a stat record does not have the expected layout.
	ErrMalformedRecord = errors.New("malformed process record")
)
