package source

import "errors"

// Sentinel kinds for data-loading errors. Callers distinguish the two with
// errors.Is.
var (
	// ErrLoad marks a resource that was unreachable, missing, or answered
	// with a non-OK status.
	ErrLoad = errors.New("resource load failed")

	// ErrParse marks a resource that was fetched but held malformed JSON.
	ErrParse = errors.New("resource parse failed")
)
