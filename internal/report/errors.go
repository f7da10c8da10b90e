package report

import "errors"

var (
	// ErrNotPending: the report is already in a terminal state and cannot
	// take items or be finished.
	ErrNotPending = errors.New("report is not pending")
	// ErrCancelled: the report was cancelled; cancellation is absorbing.
	ErrCancelled = errors.New("report is already cancelled")
	// ErrInvalidTare: tare must be positive and strictly below gross weight.
	ErrInvalidTare = errors.New("tare weight must be greater than zero and below the gross weight")
)
