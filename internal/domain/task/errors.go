package task

import "errors"

var (
	// ErrTaskNotFound indicates the task doesn't exist.
	ErrTaskNotFound = errors.New("task not found")
	// ErrUpdateNotFound indicates the weekly update doesn't exist.
	ErrUpdateNotFound = errors.New("weekly update not found")
	// ErrInvalidInput indicates invalid task or weekly update input.
	ErrInvalidInput = errors.New("invalid task input")
)
