package apw

import (
	"errors"
	"fmt"
)

var (
	// ErrFileNotFound is returned when the workspace file does not exist.
	ErrFileNotFound = errors.New("file does not exist")

	// ErrInvalidFormat is returned when the file is not a NetLinx workspace.
	ErrInvalidFormat = errors.New("not a NetLinx workspace file")

	// ErrMissingIdentifier is returned when the workspace has no identifier.
	ErrMissingIdentifier = errors.New("no workspace identifier found")
)

// LoadError wraps any failure that occurs while loading a workspace so that
// callers see a single error surface regardless of which step failed.
type LoadError struct {
	Err error
}

func (le *LoadError) Error() string {
	return fmt.Sprintf("Failed to load workspace file: %s", le.Err)
}

func (le *LoadError) Unwrap() error {
	return le.Err
}

// ScanReadError is returned when a referenced file could not be read during
// the implicit dependency scan.
type ScanReadError struct {
	// Path is the absolute path to the file that failed to read.
	Path string

	Err error
}

func (se *ScanReadError) Error() string {
	return fmt.Sprintf("failed to scan %s: %s", se.Path, se.Err)
}

func (se *ScanReadError) Unwrap() error {
	return se.Err
}
