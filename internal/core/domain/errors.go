package domain

import "errors"

// The five error kinds every operation reports through. Services wrap one of
// these with fmt.Errorf("%w: ...") so handlers can map the kind to a status
// with errors.Is while still matching the specific sentinel for the message.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrInternal        = errors.New("internal error")
)
