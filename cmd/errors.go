package cmd

import (
	"github.com/pkg/errors"

	"github.com/oakwood-commons/gridnav/pkg/grid"
)

// Exit codes: 1 for runtime failures, 2 for invalid input or usage.
const (
	exitFailure = 1
	exitUsage   = 2
)

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func usageError(err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: exitUsage, err: err}
}

// inputError classifies grid input failures: badly shaped records and
// missing dimensions are usage errors, I/O is not.
func inputError(err error) error {
	if err == nil {
		return nil
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return err
	}
	if errors.Is(err, errNoInput) || errors.Is(err, grid.ErrInvalidRecordShape) || errors.Is(err, grid.ErrInvalidDimensions) {
		return usageError(err)
	}
	return err
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitFailure
}
