package services

import "errors"

// Common service-level errors
var (
	// Note errors
	ErrNoteNotFound      = errors.New("note not found")
	ErrNoteAlreadyExists = errors.New("note already exists")

	// Tag errors
	ErrTagNotFound      = errors.New("tag not found")
	ErrTagAlreadyExists = errors.New("tag already exists")
)
