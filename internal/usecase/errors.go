package usecase

import crerr "github.com/cockroachdb/errors"

// Callers classify failures with errors.Is against these; the wrapped text
// carries the detail.
var (
	// ErrInvalidInput rejects bad season labels, categories or requests.
	ErrInvalidInput = crerr.New("invalid input")
	// ErrNotFound is returned when a stored table or season is absent.
	ErrNotFound = crerr.New("not found")
	// ErrDependencyUnavailable covers an upstream that stayed down after
	// retries or is behind an open circuit breaker.
	ErrDependencyUnavailable = crerr.New("dependency unavailable")
)
