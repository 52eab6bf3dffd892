package kafka

import "errors"

type permanentError struct {
	err error
}

func (e permanentError) Error() string { return "permanent: " + e.err.Error() }

func (e permanentError) Unwrap() error { return e.err }

// Permanent marks a handler failure that redelivery cannot fix: the consumer
// commits the message and moves on. Permanent(nil) is nil.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanentError{err: err}
}

// IsPermanent reports whether err, or anything it wraps, came from Permanent.
func IsPermanent(err error) bool {
	var p permanentError
	return errors.As(err, &p)
}
