package domain

import "errors"

var (
	ErrCelebrityNotFound = errors.New("celebrity not found")
	ErrRenderFailed      = errors.New("failed to generate PDF")
)
