// Package cli provides shared configuration and utilities for the rdbpaging CLI.
package cli

import (
	"github.com/friendsofgo/errors"
)

// Process exit codes. Anything not marked with Exit leaves with ExitGeneral.
const (
	ExitSuccess     = 0
	ExitGeneral     = 1
	ExitConfig      = 2
	ExitSchemaParse = 3
	ExitDBConnect   = 4
)

// ExitError marks an error with the code the process should exit with.
type ExitError struct {
	Code int
	Err  error
}

// Exit annotates err with msg and marks it with code. A nil err yields an
// error reading just msg.
func Exit(code int, msg string, err error) *ExitError {
	if err == nil {
		return &ExitError{Code: code, Err: errors.New(msg)}
	}
	return &ExitError{Code: code, Err: errors.Wrap(err, msg)}
}

// GeneralError is Exit with ExitGeneral.
func GeneralError(msg string, err error) *ExitError {
	return Exit(ExitGeneral, msg, err)
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode returns the code of the outermost *ExitError in err's chain,
// ExitSuccess for nil and ExitGeneral for anything unmarked.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitGeneral
}
