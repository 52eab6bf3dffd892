package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrConflict indicates a state conflict reported by the backend (HTTP 409).
var ErrConflict = errors.New("conflict")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrUnauthorized indicates a missing or expired session token.
var ErrUnauthorized = errors.New("unauthorized")

// ErrUpstream wraps transport and 5xx failures of the remote backend.
var ErrUpstream = errors.New("backend unavailable")

// ErrReasonRequired is returned when a refusal carries a blank reason.
var ErrReasonRequired = errors.New("refusal reason required")

// ErrSelectionRequired is returned when a courier selection is missing on confirm.
var ErrSelectionRequired = errors.New("courier selection required")

// ErrFinalCourierRequired is returned when an inter-city quote is requested
// before the final-leg courier is chosen.
var ErrFinalCourierRequired = errors.New("final courier required first")

// ErrCourierUnavailable is returned when a selected courier went offline
// between the availability poll and the confirmation.
var ErrCourierUnavailable = errors.New("courier no longer available")

// ErrStaleState is returned when the order is no longer in the status the caller expected.
var ErrStaleState = errors.New("order state changed")

// ErrTransition is returned when an action is not legal from the current status.
var ErrTransition = errors.New("transition not allowed")

// ErrInFlight is returned when the same action is already running.
var ErrInFlight = errors.New("action already in progress")
