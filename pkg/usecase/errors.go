package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Input errors
	ErrValidation = errors.New("validation failed")

	// Not found errors
	ErrActionNotFound = errors.New("action not found")
	ErrUserNotFound   = errors.New("user not found")

	// Access control errors
	ErrNotAuthorized = errors.New("not authorized")

	// Sampling errors
	ErrNoApprovedActions     = errors.New("no approved actions")
	ErrSamplePoolUnavailable = errors.New("sample pool unavailable")

	// Other errors
	ErrDeleteFailed = errors.New("delete failed")
)

// Context keys for error values
const (
	ActionIDKey = "action_id"
	UserIDKey   = "user_id"
)
