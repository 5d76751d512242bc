package errors

// Package errors provides sentinel errors for index page link
// verification.

import "errors"

var (
	// ErrBrokenLinks indicates the verified page references targets that
	// do not exist on disk.
	ErrBrokenLinks = errors.New("broken links")
)
