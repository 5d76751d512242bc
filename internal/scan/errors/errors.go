package errors

// Package errors provides sentinel errors for report tree scanning.
// These enable consistent classification while keeping user-facing
// messages descriptive via wrapping.

import "errors"

var (
	// ErrRootNotFound indicates the scan root directory does not exist.
	ErrRootNotFound = errors.New("scan root not found")

	// ErrRootNotDirectory indicates the scan root exists but is not a directory.
	ErrRootNotDirectory = errors.New("scan root is not a directory")

	// ErrWalkFailed indicates filesystem traversal of the scan root failed.
	ErrWalkFailed = errors.New("scan root walk failed")

	// ErrInvalidRelativePath indicates calculating a path relative to the scan root failed.
	ErrInvalidRelativePath = errors.New("invalid relative path calculation")
)
