package errors

import (
	"errors"
)

type Error struct {
	Err         error
	Reason      Reason
	Description string
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	msg := e.Reason.String()
	if e.Description != "" {
		msg += ": " + e.Description
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// ExitCode is the process exit status for this error.
func (e *Error) ExitCode() int {
	switch e.Reason {
	case InvalidConfig, InvalidArguments:
		return 2
	default:
		return 1
	}
}

func New(reason Reason, description string, err error) *Error {
	return &Error{
		Err:         err,
		Reason:      reason,
		Description: description,
	}
}

// ExitCode returns the exit status for any error: 0 for nil, the code of the first *Error in the chain, or 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var e *Error
	if errors.As(err, &e) {
		return e.ExitCode()
	}
	return 1
}
