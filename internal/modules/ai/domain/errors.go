package domain

import "errors"

var (
	// ErrUpstreamUnavailable covers transport failures and a missing API key.
	ErrUpstreamUnavailable = errors.New("AI service is unavailable")
	// ErrMalformedResponse is valid JSON of the wrong shape.
	ErrMalformedResponse = errors.New("AI service returned an unexpected response")
	ErrEmptyQuery        = errors.New("query is required")
)
