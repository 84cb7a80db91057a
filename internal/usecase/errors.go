package usecase

import "errors"

// Not found.
var (
	ErrJobRequestNotFound = errors.New("job request not found")
	ErrQuoteNotFound      = errors.New("quote not found")
	ErrUserNotFound       = errors.New("user not found")
)

// Invalid state for the requested transition.
var (
	ErrInvalidJobRequestState = errors.New("operation not allowed in current job request status")
	ErrInvalidQuoteState      = errors.New("operation not allowed in current quote status")
)

var ErrQuoteExpired = errors.New("quote has expired")

// Conflicts.
var (
	ErrDuplicateQuote               = errors.New("professional already has an active quote on this job request")
	ErrMaxQuotesReached             = errors.New("job request has reached its maximum number of quotes")
	ErrJobRequestNotAcceptingQuotes = errors.New("job request is not accepting quotes")
	ErrJobRequestAlreadySettled     = errors.New("job request has already been settled")
	ErrConcurrentModification       = errors.New("resource was modified concurrently, retry the request")
	ErrEmailAlreadyRegistered       = errors.New("email already registered")
)

// Validation.
var (
	ErrInvalidJobRequestID = errors.New("invalid job request id")
	ErrInvalidQuoteID      = errors.New("invalid quote id")
	ErrInvalidJobRequest   = errors.New("invalid job request")
	ErrInvalidQuote        = errors.New("invalid quote")
	ErrInvalidQuery        = errors.New("invalid query")
	ErrImmutableField      = errors.New("field cannot be changed")
	ErrInvalidRegistration = errors.New("invalid registration")
	ErrInvalidRoleChange   = errors.New("role change not allowed")
	ErrInvalidEmail        = errors.New("invalid email")
)

// Authentication.
var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrInvalidSession       = errors.New("invalid or expired session")
	ErrInvalidLoginCode     = errors.New("invalid or expired login code")
	ErrLoginCodeRateLimited = errors.New("too many login code requests")
)
