package llm

import "errors"

var (
	// ErrMissingAPIKey indicates the client was constructed without
	// credentials.
	ErrMissingAPIKey = errors.New("llm: api key not configured")

	// ErrUpstream indicates the reasoning service answered with a
	// non-success status.
	ErrUpstream = errors.New("llm: upstream error")

	// ErrEmptyResponse indicates a well-formed response carrying no
	// choices.
	ErrEmptyResponse = errors.New("llm: response contained no choices")
)
