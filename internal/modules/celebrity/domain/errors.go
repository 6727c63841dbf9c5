package domain

import "errors"

var (
	ErrCelebrityNotFound  = errors.New("celebrity not found")
	ErrCelebrityNameTaken = errors.New("a celebrity with this name already exists")
	ErrInvalidCelebrity   = errors.New("invalid celebrity")
)
