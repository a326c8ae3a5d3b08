package store

import "errors"

var (
	// ErrNotFound signals expected absence: the requested report id has no
	// live record. Callers treat it as "nothing to show", not a failure.
	ErrNotFound = errors.New("report not found")

	// ErrCorrupt signals that a record file exists but could not be parsed.
	// Direct access surfaces it; bulk listing skips the record instead.
	ErrCorrupt = errors.New("report record corrupt")
)
