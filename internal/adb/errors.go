package adb

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotInstalled means the executable was not on disk when a call was made.
	ErrNotInstalled = errors.New("executable not installed")
	// ErrConnectFailed means adb ran but reported that it could not connect.
	ErrConnectFailed = errors.New("connect failed")
)

// SpawnError means the process could not be started at all.
type SpawnError struct {
	Path string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to execute %s: %v", e.Path, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// ExitError means the process ran and exited non-zero.
type ExitError struct {
	Args   []string
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		msg = fmt.Sprintf("exit status %d", e.Code)
	}
	return fmt.Sprintf("command failed: %s", msg)
}

// TimeoutError means the process was killed after running too long.
type TimeoutError struct {
	Args  []string
	After time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %s", strings.Join(e.Args, " "), e.After)
}

// IsSpawnError reports whether err is, or wraps, a *SpawnError.
func IsSpawnError(err error) bool {
	var se *SpawnError
	return errors.As(err, &se)
}

// IsExitError reports whether err is, or wraps, an *ExitError.
func IsExitError(err error) bool {
	var ee *ExitError
	return errors.As(err, &ee)
}
