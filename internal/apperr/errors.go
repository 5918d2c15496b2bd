// Package apperr defines sentinel errors shared across packages.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrInvalidPath = errors.New("invalid path")

	// ErrUnknownRecord marks a lookup of a name the loaded records lack.
	// It wraps ErrNotFound; a missing storage file wraps ErrNotFound only.
	ErrUnknownRecord = fmt.Errorf("unknown record: %w", ErrNotFound)
)
