// Package apperr defines the error kinds shared across draftkit. Callers
// classify failures with errors.Is against the sentinel values and map them
// to their own surface (exit code, tool error, human message).
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks an unknown pattern id, preset name, component id,
	// or taxonomy entry.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput marks a malformed parameter such as an unknown
	// framework, mode, or style preference.
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidation marks a data file that parses but violates an
	// invariant. Loaders log these and skip the file.
	ErrValidation = errors.New("validation failure")

	// ErrState marks missing or expired authentication when a source
	// fetch is required.
	ErrState = errors.New("state violation")

	// ErrTransient marks HTTP or local I/O failures below the core.
	ErrTransient = errors.New("transient failure")
)

func NotFoundf(format string, args ...any) error {
	return wrapf(ErrNotFound, format, args...)
}

func InvalidInputf(format string, args ...any) error {
	return wrapf(ErrInvalidInput, format, args...)
}

func Validationf(format string, args ...any) error {
	return wrapf(ErrValidation, format, args...)
}

func Statef(format string, args ...any) error {
	return wrapf(ErrState, format, args...)
}

func Transientf(format string, args ...any) error {
	return wrapf(ErrTransient, format, args...)
}

func wrapf(kind error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), kind)
}

func IsNotFound(err error) bool     { return errors.Is(err, ErrNotFound) }
func IsInvalidInput(err error) bool { return errors.Is(err, ErrInvalidInput) }
func IsValidation(err error) bool   { return errors.Is(err, ErrValidation) }
func IsState(err error) bool        { return errors.Is(err, ErrState) }
func IsTransient(err error) bool    { return errors.Is(err, ErrTransient) }
