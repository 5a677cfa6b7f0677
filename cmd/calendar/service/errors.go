package service

import "errors"

var (
	ErrValidation       = errors.New("validation failed")
	ErrConflict         = errors.New("event conflicts with an existing event")
	ErrNotFound         = errors.New("not found")
	ErrCapacityExceeded = errors.New("member limit reached")
	ErrAlreadyMember    = errors.New("user is already a member")
)

// UserMessage is the text shown to the caller for an operation error. Errors
// that are not one of the sentinels above fall back to err.Error().
func UserMessage(err error) string {
	var msgErr *messageError
	if errors.As(err, &msgErr) {
		return msgErr.msg
	}
	return err.Error()
}

type messageError struct {
	kind error
	msg  string
}

func (e *messageError) Error() string {
	return e.kind.Error() + ": " + e.msg
}

func (e *messageError) Unwrap() error {
	return e.kind
}

func newError(kind error, msg string) error {
	return &messageError{kind: kind, msg: msg}
}
