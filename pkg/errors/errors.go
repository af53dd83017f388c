package errors

import (
	"errors"
	"fmt"
)

// Error is a message with an optional machine-readable code and cause.
// Codes classify failures for callers that count or report them.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(message string) error {
	return &Error{Message: message}
}

func NewWithCode(code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap returns nil for a nil err.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Message: message, Err: err}
}

// WrapWithCode returns nil for a nil err.
func WrapWithCode(err error, code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Err: err}
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

// GetCode returns the outermost code in the chain, skipping uncoded
// wrappers.
func GetCode(err error) string {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return ""
		}
		if e.Code != "" {
			return e.Code
		}
		err = e.Err
	}
	return ""
}

func HasCode(err error, code string) bool {
	return code != "" && GetCode(err) == code
}
