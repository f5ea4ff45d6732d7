package models

import "errors"

// Tree operation errors. All are recoverable: callers degrade to a
// no-op plus a user-visible message, never to process termination.
var (
	ErrNodeNotFound   = errors.New("node not found")
	ErrParentNotFound = errors.New("parent not found")
	ErrCycleDetected  = errors.New("move would create a cycle")
)
