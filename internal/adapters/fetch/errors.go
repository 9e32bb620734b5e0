package fetch

import "errors"

var (
	// ErrInvalidURL indicates the submitted URL has no scheme or host.
	ErrInvalidURL = errors.New("fetch: invalid url")

	// ErrBadStatus indicates the page or renderer answered with an
	// error status.
	ErrBadStatus = errors.New("fetch: bad status")
)
