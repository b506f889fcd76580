// Package cli implements the swagger2retrofit command and maps its failures
// onto exit codes.
package cli

import "errors"

// ErrUsage marks failures caused by the invocation or its input document
// rather than by the environment. main exits with status 2 for them and 1 for
// everything else.
var ErrUsage = errors.New("cli usage error")

// usageError matches ErrUsage and optionally carries the error that caused
// it, so callers can still reach a *spec.SpecError or an fs error.
type usageError struct {
	msg   string
	cause error
}

func newUsageError(msg string) error {
	return usageError{msg: msg}
}

func wrapUsageError(cause error, msg string) error {
	return usageError{msg: msg, cause: cause}
}

func (e usageError) Error() string {
	return e.msg
}

func (e usageError) Is(target error) bool {
	return target == ErrUsage
}

func (e usageError) Unwrap() error {
	return e.cause
}
