package market

import (
	"errors"
	"fmt"
)

var (
	// ErrNullArgument is returned when a required argument is absent.
	ErrNullArgument = errors.New("null argument")
	// ErrInvalidArgument is returned when arguments violate a structural invariant.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ArgumentError reports a rejected constructor or builder argument.
//
// Kind is ErrNullArgument or ErrInvalidArgument, so callers can match with errors.Is.
type ArgumentError struct {
	Kind  error
	Field string
	Msg   string
}

func (e *ArgumentError) Error() string {
	switch {
	case e.Field != "" && e.Msg != "":
		return fmt.Sprintf("%v: %s: %s", e.Kind, e.Field, e.Msg)
	case e.Field != "":
		return fmt.Sprintf("%v: %s", e.Kind, e.Field)
	default:
		return fmt.Sprintf("%v: %s", e.Kind, e.Msg)
	}
}

func (e *ArgumentError) Unwrap() error {
	return e.Kind
}

// NullArgument returns an ErrNullArgument error naming the missing field.
func NullArgument(field string) error {
	return &ArgumentError{Kind: ErrNullArgument, Field: field}
}

// InvalidArgument returns an ErrInvalidArgument error with the given message.
func InvalidArgument(msg string) error {
	return &ArgumentError{Kind: ErrInvalidArgument, Msg: msg}
}
