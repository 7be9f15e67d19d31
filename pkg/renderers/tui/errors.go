package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrInvalidResult is returned by Render when the collected values do not
	// satisfy the form schema.
	ErrInvalidResult = errors.New("tui: collected values are invalid")
)
