// Package apperr defines the error kinds shared by the repository layers.
//
// Errors are wrapped with fmt.Errorf("%w: ...") so callers can match the kind
// with errors.Is while the message still names the offending key or path.
package apperr

import "errors"

var (
	// ErrNotFound is returned when a citekey or number does not resolve to a paper.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateCitekey is returned when adding a paper whose citekey is taken.
	ErrDuplicateCitekey = errors.New("citekey already exists")

	// ErrInvalidCitekey is returned for empty or malformed citekeys.
	ErrInvalidCitekey = errors.New("invalid citekey")

	// ErrCorruptIndex is returned when the index file cannot be read or parsed.
	ErrCorruptIndex = errors.New("corrupt index")

	// ErrAlreadyInitialized is returned when initializing over an existing layout.
	ErrAlreadyInitialized = errors.New("repository already initialized")

	// ErrStorage wraps filesystem failures while writing paper or index files.
	ErrStorage = errors.New("storage failure")
)
