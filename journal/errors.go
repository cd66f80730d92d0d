package journal

import "errors"

var (
	// ErrInvalidEvent indicates a stored event record is malformed.
	ErrInvalidEvent = errors.New("journal: invalid event record")

	// ErrStoreClosed indicates an operation on a closed store.
	ErrStoreClosed = errors.New("journal: store is closed")
)
