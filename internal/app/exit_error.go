package app

import (
	"errors"

	"github.com/mattabott/beyblade-x-collection/internal/domain"
)

// Exit codes.
const (
	codeOK      = 0
	codeFailure = 1
	codeUsage   = 2
)

type ExitError struct {
	Code int
	Err  error
}

func (e ExitError) Error() string {
	if e.Err == nil {
		return "exit"
	}
	return e.Err.Error()
}

func (e ExitError) Unwrap() error {
	return e.Err
}

func Exit(code int) error {
	return ExitError{Code: code}
}

func ExitWithError(code int, err error) error {
	return ExitError{Code: code, Err: err}
}

func asExitError(err error) (ExitError, bool) {
	var ee ExitError
	if err == nil || !errors.As(err, &ee) {
		return ExitError{}, false
	}
	return ee, true
}

// exitCode maps an error returned by a command to the process exit code.
// Bad user input (category, slot, combo) counts as a usage error.
func exitCode(err error) int {
	if err == nil {
		return codeOK
	}
	if ee, ok := asExitError(err); ok {
		return ee.Code
	}
	switch {
	case errors.Is(err, domain.ErrInvalidCategory),
		errors.Is(err, domain.ErrInvalidSlot),
		errors.Is(err, domain.ErrUnknownCombo):
		return codeUsage
	}
	return codeFailure
}
