package installer

import (
	"errors"
	"fmt"
)

// Kind classifies an install failure.
type Kind int

const (
	ResourceNotFound Kind = iota + 1
	ArchiveRead
	FilesystemWrite
)

func (k Kind) String() string {
	switch k {
	case ResourceNotFound:
		return "resource not found"
	case ArchiveRead:
		return "archive unreadable"
	case FilesystemWrite:
		return "filesystem write failed"
	default:
		return "unknown install error"
	}
}

var (
	ErrResourceNotFound = errors.New("platform-tools archive not found")
	ErrArchiveRead      = errors.New("platform-tools archive unreadable")
	ErrFilesystemWrite  = errors.New("cannot write platform-tools")
)

// InstallError is returned by every failing install step.
type InstallError struct {
	Kind Kind
	Path string
	Err  error
}

func (e *InstallError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Path)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *InstallError) Unwrap() error {
	return e.Err
}

// Is matches the package sentinels by kind.
func (e *InstallError) Is(target error) bool {
	switch target {
	case ErrResourceNotFound:
		return e.Kind == ResourceNotFound
	case ErrArchiveRead:
		return e.Kind == ArchiveRead
	case ErrFilesystemWrite:
		return e.Kind == FilesystemWrite
	}
	return false
}

func installErr(kind Kind, path string, err error) *InstallError {
	return &InstallError{Kind: kind, Path: path, Err: err}
}
