package errors

// Package errors provides sentinel errors for index page rendering.
// These enable consistent classification while keeping user-facing
// messages descriptive via wrapping.

import "errors"

var (
	// ErrTemplateParse indicates parsing an embedded page template failed.
	ErrTemplateParse = errors.New("index template parse failed")

	// ErrTemplateExecute indicates executing a page template failed.
	ErrTemplateExecute = errors.New("index template execute failed")

	// ErrOutputWrite indicates persisting the rendered document failed.
	ErrOutputWrite = errors.New("index output write failed")
)
