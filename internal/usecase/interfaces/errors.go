package interfaces

import "errors"

var (
	// ErrStaleJobRequest is returned when a conditional write finds a job
	// request version other than the one the writer read.
	ErrStaleJobRequest = errors.New("job request was modified concurrently")
	// ErrStaleQuote is returned when a conditional write finds a quote in a
	// status other than the expected one.
	ErrStaleQuote = errors.New("quote was modified concurrently")
	// ErrStaleUser is returned when a role change finds a different current role.
	ErrStaleUser = errors.New("user was modified concurrently")
	// ErrActiveQuoteExists is returned when a professional already holds a
	// pending or accepted quote on the job request.
	ErrActiveQuoteExists = errors.New("professional already has an active quote on the job request")
	// ErrAlreadyExists is returned when an insert collides with an existing document.
	ErrAlreadyExists = errors.New("document already exists")
	// ErrConditionFailed is returned when a single-use record was already consumed.
	ErrConditionFailed = errors.New("conditional write failed")
)
