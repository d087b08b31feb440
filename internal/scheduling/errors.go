package scheduling

import (
	"errors"
)

// Kind is the category of a failed operation. Transports map it to their
// own status codes.
type Kind int

const (
	KindPersistence Kind = iota
	KindNotFound
	KindForbidden
	KindConflict
	KindValidationFailed
	KindUnauthenticated
	KindInvalidArgument
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindConflict:
		return "conflict"
	case KindValidationFailed:
		return "validation_failed"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindInvalidArgument:
		return "invalid_argument"
	}
	return "persistence_error"
}

// Error is the outcome of a failed operation. Message is safe to show to the
// caller; it never carries store detail.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func newError(k Kind, msg string) *Error { return &Error{Kind: k, Message: msg} }

// KindOf classifies err. Errors outside the taxonomy count as persistence
// failures.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindPersistence
}

// Message returns the caller-safe message of err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return msgPersistence
}

func NotFound(msg string) error         { return newError(KindNotFound, msg) }
func Forbidden(msg string) error        { return newError(KindForbidden, msg) }
func Unauthenticated(msg string) error  { return newError(KindUnauthenticated, msg) }
func InvalidArgument(msg string) error  { return newError(KindInvalidArgument, msg) }
func ValidationFailed(msg string) error { return newError(KindValidationFailed, msg) }
func Conflict(msg string) error         { return newError(KindConflict, msg) }
func Persistence(msg string) error      { return newError(KindPersistence, msg) }

const (
	msgPersistence      = "A technical error occurred while processing the request."
	msgBookFailed       = "Failed to book the appointment."
	msgUpdateNotFound   = "Update failed: No appointment exists with the provided ID."
	msgUpdateForbidden  = "You cannot update an appointment belonging to another patient."
	msgDoctorMissing    = "Validation failed: The specified doctor does not exist."
	msgSlotTaken        = "Slot unavailable: The doctor is already booked at this time."
	msgUpdateFailed     = "A technical error occurred while saving the update."
	msgCancelNotFound   = "Cancellation failed: No appointment found with the provided ID."
	msgCancelForbidden  = "Unauthorized: You do not have permission to cancel this appointment."
	msgCancelFailed     = "An error occurred while processing the cancellation."
	msgStatusFailed     = "Failed to update the appointment status."
	msgQueryFailed      = "Failed to load appointments."
	msgAvailabilityFail = "Failed to check doctor availability."
)
