package domain

import "errors"

var (
	ErrAlreadyFollowing  = errors.New("you are already following this celebrity")
	ErrFollowNotFound    = errors.New("follow relationship not found")
	ErrCelebrityNotFound = errors.New("celebrity not found")
)
