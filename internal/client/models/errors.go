package models

import (
	"errors"
	"fmt"
)

// ErrDecode matches every *DecodeError with errors.Is.
var ErrDecode = errors.New("decode error")

// DecodeErrorKind classifies a DecodeError.
type DecodeErrorKind int

const (
	// MissingOrInvalidField: a required field is absent or null, or a field
	// has the wrong JSON type or format.
	MissingOrInvalidField DecodeErrorKind = iota + 1
	// InvalidBoolean: an integer-encoded boolean is neither 0 nor 1.
	InvalidBoolean
	// Malformed: the payload is not valid JSON.
	Malformed
)

func (k DecodeErrorKind) String() string {
	switch k {
	case MissingOrInvalidField:
		return "missing or invalid field"
	case InvalidBoolean:
		return "invalid boolean"
	case Malformed:
		return "malformed json"
	default:
		return "unknown"
	}
}

// DecodeError reports why a payload could not be turned into a model value.
type DecodeError struct {
	Kind  DecodeErrorKind
	Field string
	// Raw is the offending wire value, set for InvalidBoolean.
	Raw string
	Err error
}

func (e *DecodeError) Error() string {
	msg := e.Kind.String()
	if e.Field != "" {
		msg = fmt.Sprintf("%s %q", msg, e.Field)
	}
	if e.Raw != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Raw)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrDecode) true for any DecodeError.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

func missingOrInvalid(field string, err error) *DecodeError {
	return &DecodeError{Kind: MissingOrInvalidField, Field: field, Err: err}
}

func invalidBoolean(field, raw string) *DecodeError {
	return &DecodeError{Kind: InvalidBoolean, Field: field, Raw: raw}
}
