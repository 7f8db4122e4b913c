package flow

import "errors"

var (
	// ErrNotFlowing is returned by EndAnimation when no continuous
	// flow is running.
	ErrNotFlowing = errors.New("flow: no animation running")

	// ErrAlreadyFlowing is returned by StartAnimation while a
	// continuous flow is running.
	ErrAlreadyFlowing = errors.New("flow: animation already running")
)
